package x86

import "github.com/keurnel/aus/internal/assembler_context"

// FormatI is the accumulator-immediate short form (AL/AX/EAX plus an
// immediate that fits the accumulator's width). Transcribed from
// original_source/src/genformats.cpp's x86_format_i.
type FormatI struct {
	Reg    Register
	Imm    uint64
	OpImm8 byte
	OpImmDef byte
}

// EmitFormatI attempts the accumulator short form; it returns ok=false
// (with no bytes emitted and no error raised) when the accumulator/
// immediate pairing does not fit, so the ALU family can fall through to
// FormatRI. Each branch is guarded the way
// original_source/src/genformats.cpp's x86_format_i guards it with
// test_number<intN_t>(imm): only an immediate that actually fits the
// accumulator's width takes the short form, otherwise FormatRI is the one
// that truncates (with a warning).
func EmitFormatI(ctx *assembler_context.Context, f FormatI) ([]byte, bool) {
	switch f.Reg {
	case AL:
		if f.Imm > 0xFF {
			return nil, false
		}
		return append(flushPrefixes(ctx), f.OpImm8, byte(f.Imm)), true
	case AX:
		if f.Imm > 0xFFFF {
			return nil, false
		}
		out := flushPrefixes(ctx)
		if ctx.BMode == assembler_context.M32 {
			out = append(out, 0x66)
		}
		out = append(out, f.OpImmDef)
		out = append(out, byte(f.Imm), byte(f.Imm>>8))
		return out, true
	case EAX:
		if f.Imm > 0xFFFFFFFF {
			return nil, false
		}
		out := flushPrefixes(ctx)
		if ctx.BMode == assembler_context.M16 {
			out = append(out, 0x66)
		}
		out = append(out, f.OpImmDef)
		out = append(out, byte(f.Imm), byte(f.Imm>>8), byte(f.Imm>>16), byte(f.Imm>>24))
		return out, true
	default:
		return nil, false
	}
}

func flushPrefixes(ctx *assembler_context.Context) []byte {
	p := ctx.FlushContextualPrefixes()
	out := make([]byte, len(p))
	copy(out, p)
	return out
}
