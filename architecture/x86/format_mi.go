package x86

import "github.com/keurnel/aus/internal/assembler_context"

// FormatMI is the memory-immediate form. Transcribed from
// original_source/src/genformats.cpp's x86_format_mi; the C++ template
// parameters (immediate width, displacement mode) are resolved at run
// time inside emitMIBody from SizeOverride and the bits-mode, and
// emitMIBody's trailing int argument is unused.
type FormatMI struct {
	Mem         MemoryOperandDescriptor
	SizeOverride int
	Imm         uint64
	DefaultRegV byte
	R8Imm8Op    byte
	RImmDefOp   byte
	RDefImm8Op  byte
}

// EmitFormatMI resolves the memory operand and dispatches on its
// addressing width, the active bits-mode, and the operand's size
// override, per spec.md §4.4's MI prefix matrix.
func EmitFormatMI(ctx *assembler_context.Context, f FormatMI) []byte {
	mop, ok := MakeModRMSIB(ctx, f.Mem, f.DefaultRegV)
	if !ok {
		return nil
	}

	switch {
	case mop.Size == 16 && ctx.BMode == assembler_context.M16:
		return emitMIBody(ctx, mop, f, nil, 0)
	case mop.Size == 16 && ctx.BMode == assembler_context.M32:
		return emitMIBody(ctx, mop, f, []byte{0x67}, 0)
	case mop.Size == 32 && ctx.BMode == assembler_context.M16:
		return emitMIBody(ctx, mop, f, []byte{0x67}, 0)
	case mop.Size == 32 && ctx.BMode == assembler_context.M32:
		return emitMIBody(ctx, mop, f, nil, 0)
	default:
		ctx.Errorf("unsupported addressing mode")
		return nil
	}
}

// emitMIBody appends the address-size override, picks the opcode/
// immediate-width combination implied by f.SizeOverride (0 means the
// operand takes the bits-mode's default word size — 16 under M16, 32
// under M32 — regardless of the memory operand's addressing width),
// then emits ModR/M, SIB and displacement.
func emitMIBody(ctx *assembler_context.Context, mop MemoryOperand, f FormatMI, addrPrefix []byte, _ int) []byte {
	out := flushPrefixes(ctx)
	out = append(out, addrPrefix...)

	width := f.SizeOverride
	if width == 0 {
		if ctx.BMode == assembler_context.M32 {
			width = 32
		} else {
			width = 16
		}
	}

	switch width {
	case 8:
		out = append(out, f.R8Imm8Op)
		out = appendModRMSIB(out, mop)
		return append(out, byte(f.Imm))

	case 16:
		if ctx.BMode == assembler_context.M32 {
			out = append(out, 0x66)
		}
		signed := int64(int16(f.Imm))
		if signed >= -128 && signed <= 127 {
			out = append(out, f.RDefImm8Op)
			out = appendModRMSIB(out, mop)
			return append(out, byte(signed))
		}
		out = append(out, f.RImmDefOp)
		out = appendModRMSIB(out, mop)
		return append(out, byte(f.Imm), byte(f.Imm>>8))

	case 32:
		if ctx.BMode == assembler_context.M16 {
			out = append(out, 0x66)
		}
		signed := int64(int32(f.Imm))
		if signed >= -128 && signed <= 127 {
			out = append(out, f.RDefImm8Op)
			out = appendModRMSIB(out, mop)
			return append(out, byte(signed))
		}
		out = append(out, f.RImmDefOp)
		out = appendModRMSIB(out, mop)
		return append(out, byte(f.Imm), byte(f.Imm>>8), byte(f.Imm>>16), byte(f.Imm>>24))

	default:
		ctx.Errorf("a memory operand's size must be given with %%BYTE, %%WORD or %%DWORD")
		return nil
	}
}

func appendModRMSIB(out []byte, mop MemoryOperand) []byte {
	out = append(out, mop.ModRM)
	if mop.HasSIB {
		out = append(out, mop.SIB)
	}
	return append(out, mop.DispBytes()...)
}
