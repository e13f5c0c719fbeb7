// Package assembler_context carries the process-wide assembly state defined
// in the specification's data model: the active bits-mode, the current
// source line, the queue of contextual prefixes awaiting the next
// instruction, and the diagnostics log. A Context is constructed once per
// run and threaded by reference through every parser and emitter; nothing
// else holds mutable assembler state.
package assembler_context

import (
	"strconv"

	"github.com/keurnel/aus/internal/diagnostics"
)

// BitsMode is the declared execution mode that selects default operand and
// address widths. INVALID never occurs in a running Context; it exists so
// the zero value is distinguishable from a real mode.
type BitsMode int

const (
	Invalid BitsMode = iota
	M16
	M32
	M64
)

func (b BitsMode) String() string {
	switch b {
	case M16:
		return "16"
	case M32:
		return "32"
	case M64:
		return "64"
	default:
		return "invalid"
	}
}

// Context is the single mutable state object threaded through the
// assembler. The zero value is not ready for use; construct one with New.
type Context struct {
	BMode   BitsMode
	LineNo  int
	Log     diagnostics.Log
	onError bool

	// ContextualPrefixes are legacy prefix bytes queued by a prior
	// construct and flushed at the start of the next instruction's
	// encoding, ahead of any override or mandatory prefix. The assembler's Non-goals exclude user-facing prefix
	// directives (segment overrides, LOCK/REP), so in practice this queue
	// stays empty across a normal run; it exists so the zero-operand and
	// format engines honour spec.md §4.4/§4.5's "flush contextual
	// prefixes" rule generically rather than special-casing "always
	// empty".
	ContextualPrefixes []byte
}

// New returns a Context initialised per spec.md §3: bits-mode M16, line 1,
// no queued prefixes, no errors.
func New() *Context {
	return &Context{
		BMode:  M16,
		LineNo: 1,
	}
}

// OnError reports the sticky error flag: once any error is recorded it
// remains set for the rest of the run (spec.md §3, §7).
func (c *Context) OnError() bool {
	return c.onError || c.Log.HasErrors()
}

// Errorf records an error diagnostic at the current line and raises the
// sticky error flag.
func (c *Context) Errorf(format string, args ...any) {
	c.Log.Error(c.LineNo, format, args...)
	c.onError = true
}

// Warnf records a warning diagnostic at the current line. Warnings never
// raise the sticky error flag (spec.md §7).
func (c *Context) Warnf(format string, args ...any) {
	c.Log.Warning(c.LineNo, format, args...)
}

// ChangeBitsMode implements the BITS directive (spec.md §6, §8 scenario 10).
// Only "16", "32" and "64" are accepted; any other value leaves BMode
// unchanged and raises an error, matching original_source/context.cpp.
func (c *Context) ChangeBitsMode(s string) {
	bits, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		c.Errorf("invalid mode '%s' for BITS directive (accepted widths are 16, 32 and 64)", s)
		return
	}

	switch bits {
	case 16:
		c.BMode = M16
	case 32:
		c.BMode = M32
	case 64:
		c.BMode = M64
	default:
		c.Errorf("invalid mode '%s' for BITS directive (accepted widths are 16, 32 and 64)", s)
	}
}

// FlushContextualPrefixes returns the queued contextual prefixes and clears
// the queue. Called once at the start of every instruction emission
// (spec.md §4.4, §4.5).
func (c *Context) FlushContextualPrefixes() []byte {
	flushed := c.ContextualPrefixes
	c.ContextualPrefixes = nil
	return flushed
}

// HasContextualPrefix reports whether p is currently queued, used by the ZO
// family's forbidden-prefix check (spec.md §4.5).
func (c *Context) HasContextualPrefix(p byte) bool {
	for _, q := range c.ContextualPrefixes {
		if q == p {
			return true
		}
	}
	return false
}
