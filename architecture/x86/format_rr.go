package x86

import "github.com/keurnel/aus/internal/assembler_context"

// FormatRR is the register-register form. Transcribed from
// original_source/src/genformats.cpp's x86_format_rr: the destination
// register occupies ModR/M's rm field, the source occupies reg.
type FormatRR struct {
	Source      Register
	SourceWidth int
	Dest        Register
	DestWidth   int
	R8Op        byte
	RDefOp      byte
}

// EmitFormatRR encodes f.
func EmitFormatRR(ctx *assembler_context.Context, f FormatRR) []byte {
	if f.SourceWidth != f.DestWidth {
		ctx.Errorf("mismatched operand sizes")
		return nil
	}

	modrm := BuildModRMCore(regEncoding(f.Dest), regEncoding(f.Source), 0b11)
	out := flushPrefixes(ctx)

	switch f.DestWidth {
	case 8:
		return append(out, f.R8Op, modrm)
	case 16:
		if ctx.BMode == assembler_context.M32 {
			out = append(out, 0x66)
		}
		return append(out, f.RDefOp, modrm)
	case 32:
		if ctx.BMode == assembler_context.M16 {
			out = append(out, 0x66)
		}
		return append(out, f.RDefOp, modrm)
	default:
		ctx.Errorf("unsupported format/size")
		return nil
	}
}
