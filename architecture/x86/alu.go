package x86

import "github.com/keurnel/aus/internal/assembler_context"

// ALUInstruction carries the 3-bit reg-field that parameterises all nine
// opcodes of a two-operand ALU mnemonic. Transcribed from
// original_source/include/formats.hpp's ALUInstruction and
// original_source/src/formats/alu.cpp's ALUTable; the field values are
// not alphabetical and must stay exactly as the processor defines them.
type ALUInstruction struct {
	RegField byte
}

// ALUTable maps each two-operand ALU mnemonic to its reg field.
var ALUTable = map[string]ALUInstruction{
	"ADC": {2},
	"ADD": {0},
	"AND": {4},
	"CMP": {7},
	"OR":  {1},
	"SBB": {3},
	"SUB": {5},
	"XOR": {6},
}

// AssembleALU encodes one ALU instruction from its two parsed operands,
// computing the nine ALU opcodes and dispatching on the operand-type pair
// exactly as original_source/src/formats/alu.cpp's assemble_alu.
func AssembleALU(ctx *assembler_context.Context, mnemonic string, dst, src OperandArg) []byte {
	alu, ok := ALUTable[mnemonic]
	if !ok {
		return nil
	}
	f := alu.RegField * 8

	opImm8 := 0x04 + f
	opImmDef := 0x05 + f
	opRM8Imm8 := byte(0x80)
	opRMImm := byte(0x81)
	opRMImm8 := byte(0x83)
	opRM8R8 := 0x00 + f
	opRMR := 0x01 + f
	opR8RM8 := 0x02 + f
	opRRM := 0x03 + f

	switch {
	case dst.IsRegister && src.IsImmediate:
		if out, ok := EmitFormatI(ctx, FormatI{
			Reg: dst.Reg, Imm: src.Imm, OpImm8: opImm8, OpImmDef: opImmDef,
		}); ok {
			return out
		}
		return EmitFormatRI(ctx, FormatRI{
			Reg: dst.Reg, RegWidth: dst.RegWidth, Imm: src.Imm,
			DefaultRegV: alu.RegField,
			R8Imm8Op:    opRM8Imm8, RDefImm8Op: opRMImm8, RImmDefOp: opRMImm,
		})

	case dst.IsMemory && src.IsImmediate:
		return EmitFormatMI(ctx, FormatMI{
			Mem: dst.Mem, SizeOverride: dst.SizeOverride, Imm: src.Imm,
			DefaultRegV: alu.RegField,
			R8Imm8Op:    opRM8Imm8, RImmDefOp: opRMImm, RDefImm8Op: opRMImm8,
		})

	case dst.IsRegister && src.IsRegister:
		return EmitFormatRR(ctx, FormatRR{
			Source: src.Reg, SourceWidth: src.RegWidth,
			Dest: dst.Reg, DestWidth: dst.RegWidth,
			R8Op: opRM8R8, RDefOp: opRMR,
		})

	case dst.IsMemory && src.IsRegister:
		return EmitFormatMR(ctx, FormatMR{
			Mem: dst.Mem, SizeOverride: dst.SizeOverride, RegWidth: src.RegWidth,
			DefaultRegV: regEncoding(src.Reg),
			R8RM8Op:     opRM8R8, RRMDefOp: opRMR,
		})

	case dst.IsRegister && src.IsMemory:
		return EmitFormatMR(ctx, FormatMR{
			Mem: src.Mem, SizeOverride: src.SizeOverride, RegWidth: dst.RegWidth,
			DefaultRegV: regEncoding(dst.Reg),
			R8RM8Op:     opR8RM8, RRMDefOp: opRRM,
		})

	default:
		ctx.Errorf("wrong destination operand type for %s: expected a register or memory operand", mnemonic)
		return nil
	}
}
