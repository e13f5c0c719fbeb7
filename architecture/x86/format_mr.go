package x86

import "github.com/keurnel/aus/internal/assembler_context"

// FormatMR is the memory/register bidirectional form (a register operand
// paired with a memory operand, in either direction — the caller chooses
// the opcode and DefaultRegV to select which). Transcribed from
// original_source/src/genformats.cpp's x86_format_mr. The original's
// generate_mr helper has a parameter-binding bug (its `other_prefixes`
// argument is emitted via a misspelled field name and silently never
// fires); this implementation emits the logically intended sequence
// instead: computed address/operand-size overrides (minus ExPrefixes),
// then the opcode, or the caller-supplied Prefixes in place of the
// opcode when any are given — matching the prose
// description of the encoding rather than the original's dead branch.
type FormatMR struct {
	Mem          MemoryOperandDescriptor
	SizeOverride int
	RegWidth     int
	DefaultRegV  byte
	R8RM8Op      byte
	RRMDefOp     byte

	// Prefixes, when non-empty, are emitted instead of the opcode.
	// ExPrefixes suppresses a subset of the computed override bytes.
	// ALU call sites never populate either; they exist for format
	// families layered on top of MR that this assembler's scope does
	// not otherwise need.
	Prefixes   []byte
	ExPrefixes []byte
}

// EmitFormatMR encodes f.
func EmitFormatMR(ctx *assembler_context.Context, f FormatMR) []byte {
	mop, ok := MakeModRMSIB(ctx, f.Mem, f.DefaultRegV)
	if !ok {
		return nil
	}

	if f.SizeOverride != 0 && f.SizeOverride != f.RegWidth {
		ctx.Errorf("mismatched operand sizes")
		return nil
	}

	var computed []byte
	switch {
	case mop.Size == 16 && ctx.BMode == assembler_context.M16:
	case mop.Size == 16 && ctx.BMode == assembler_context.M32:
		computed = append(computed, 0x67)
	case mop.Size == 32 && ctx.BMode == assembler_context.M16:
		computed = append(computed, 0x67)
	case mop.Size == 32 && ctx.BMode == assembler_context.M32:
	default:
		ctx.Errorf("unsupported addressing mode")
		return nil
	}

	switch f.RegWidth {
	case 16:
		if ctx.BMode == assembler_context.M32 {
			computed = append(computed, 0x66)
		}
	case 32:
		if ctx.BMode == assembler_context.M16 {
			computed = append(computed, 0x66)
		}
	case 8:
	default:
		ctx.Errorf("unsupported format/size")
		return nil
	}

	out := flushPrefixes(ctx)
	for _, p := range computed {
		if !containsByte(f.ExPrefixes, p) {
			out = append(out, p)
		}
	}

	if len(f.Prefixes) > 0 {
		out = append(out, f.Prefixes...)
	} else {
		op := f.RRMDefOp
		if f.RegWidth == 8 {
			op = f.R8RM8Op
		}
		out = append(out, op)
	}

	return appendModRMSIB(out, mop)
}

func containsByte(haystack []byte, b byte) bool {
	for _, h := range haystack {
		if h == b {
			return true
		}
	}
	return false
}
