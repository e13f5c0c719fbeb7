package x86

import "github.com/keurnel/aus/internal/assembler_context"

// FormatRI is the general register-immediate form, used when FormatI
// doesn't apply (wrong register, or an immediate too wide for the
// accumulator short form). Transcribed from
// original_source/src/genformats.cpp's x86_format_ri.
type FormatRI struct {
	Reg         Register
	RegWidth    int
	Imm         uint64
	DefaultRegV byte
	R8Imm8Op    byte
	RDefImm8Op  byte
	RImmDefOp   byte
}

// EmitFormatRI encodes f, warning and truncating when the immediate
// overflows the destination width, and preferring the imm8 short form
// (opcode 0x83-style) whenever the immediate fits in a signed byte.
func EmitFormatRI(ctx *assembler_context.Context, f FormatRI) []byte {
	modrm := BuildModRMCore(regEncoding(f.Reg), f.DefaultRegV, 0b11)

	switch f.RegWidth {
	case 8:
		if f.Imm > 0xFF {
			ctx.Warnf("immediate value too large to fit in 8 bits, truncating")
		}
		out := flushPrefixes(ctx)
		return append(out, f.R8Imm8Op, modrm, byte(f.Imm))

	case 16:
		out := flushPrefixes(ctx)
		if ctx.BMode == assembler_context.M32 {
			out = append(out, 0x66)
		}
		signed := int64(int16(f.Imm))
		if signed >= -128 && signed <= 127 {
			return append(out, f.RDefImm8Op, modrm, byte(signed))
		}
		if f.Imm > 0xFFFF {
			ctx.Warnf("immediate value too large to fit in 16 bits, truncating")
		}
		out = append(out, f.RImmDefOp, modrm)
		return append(out, byte(f.Imm), byte(f.Imm>>8))

	case 32:
		out := flushPrefixes(ctx)
		if ctx.BMode == assembler_context.M16 {
			out = append(out, 0x66)
		}
		signed := int64(int32(f.Imm))
		if signed >= -128 && signed <= 127 {
			return append(out, f.RDefImm8Op, modrm, byte(signed))
		}
		if f.Imm > 0xFFFFFFFF {
			ctx.Warnf("immediate value too large to fit in 32 bits, truncating")
		}
		out = append(out, f.RImmDefOp, modrm)
		return append(out, byte(f.Imm), byte(f.Imm>>8), byte(f.Imm>>16), byte(f.Imm>>24))

	default:
		ctx.Errorf("invalid register used as argument")
		return nil
	}
}
