package asm

import "regexp"

// LineCharacteristics describes the shape of a single input line ahead of
// dispatch. Adapted from the teacher's GAS-directive-oriented classifier:
// this assembler has no directives beyond BITS, so IsDirective becomes
// IsBitsDirective and the comment markers match spec.md §6 (`//`, `;`, `#`)
// instead of GAS's `;`-only convention.
type LineCharacteristics struct {
	IsEmpty         bool
	IsComment       bool
	IsBitsDirective bool
}

var (
	emptyLineRe = regexp.MustCompile(`^\s*$`)
	commentRe   = regexp.MustCompile(`^(//|;|#)`)
	bitsLineRe  = regexp.MustCompile(`^\[?BITS\s`)
)

// LineAnalyze analyzes an already-trimmed, already-uppercased line (per
// spec.md §6's "trimmed of leading/trailing whitespace and upcased" rule)
// and returns its characteristics.
func LineAnalyze(line string) LineCharacteristics {
	return LineCharacteristics{
		IsEmpty:         IsEmptyLine(line),
		IsComment:       IsCommentLine(line),
		IsBitsDirective: IsBitsDirectiveLine(line),
	}
}

// IsEmptyLine reports whether a line is empty or contains only whitespace.
func IsEmptyLine(line string) bool {
	return emptyLineRe.MatchString(line)
}

// IsCommentLine reports whether a line begins with one of the comment
// markers recognised by spec.md §6: `//`, `;`, or `#`.
func IsCommentLine(line string) bool {
	return commentRe.MatchString(line)
}

// IsBitsDirectiveLine reports whether a line is a `BITS <n>` or
// `[BITS <n>]` directive, per spec.md §6.
func IsBitsDirectiveLine(line string) bool {
	return bitsLineRe.MatchString(line)
}
