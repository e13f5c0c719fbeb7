// Package x86 implements the 16/32-bit x86 instruction encoder: memory
// operand parsing, ModR/M and SIB synthesis, the five addressing-mode
// format engines, and the zero-operand and ALU instruction families.
// 64-bit operands and REX encoding are not supported: the register
// catalogue has no 64-bit registers, and a %QWORD memory operand is an
// error in the memory-operand formats.
package x86

import (
	"github.com/keurnel/aus/internal/asm"
	"github.com/keurnel/aus/internal/assembler_context"
)

// MemoryOperandDescriptor is the intermediate representation produced by
// ParseMemoryOperand: a bag of the registers, scale and displacement found
// inside a `[...]` operand, not yet reduced to a ModR/M/SIB encoding.
// Transcribed from original_source/include/memory.hpp.
type MemoryOperandDescriptor struct {
	Size int // 0 (undetermined), 16 or 32

	// 16-bit register-pair addressing flags.
	BX, BP, SI, DI bool

	Disp int64

	// 32-bit base/index/scale addressing. Index/Base hold 0xFF when absent.
	Index byte
	Scale byte
	Base  byte
}

const noReg = 0xFF

// ParseMemoryOperand parses the contents of a `[...]` memory operand
// (spaces already insignificant), transcribing
// original_source/src/memory.cpp's parse_memory atom-walking algorithm.
func ParseMemoryOperand(ctx *assembler_context.Context, text string) (MemoryOperandDescriptor, bool) {
	desc := MemoryOperandDescriptor{Index: noReg, Base: noReg}

	stripped := stripSpaces(text)
	if stripped == "" {
		ctx.Errorf("empty memory operand")
		return desc, false
	}

	isAdding := true
	atom := ""

	flush := func() bool {
		if atom == "" {
			return true
		}
		ok := applyAtom(ctx, &desc, atom, isAdding)
		atom = ""
		return ok
	}

	for i := 0; i < len(stripped); i++ {
		c := stripped[i]
		switch c {
		case '+', '-':
			if !flush() {
				return desc, false
			}
			isAdding = c == '+'
		default:
			atom += string(c)
		}
	}
	if !flush() {
		return desc, false
	}

	switch desc.Scale {
	case 0, 1, 2, 4, 8:
	default:
		ctx.Errorf("invalid scale factor: valid values are 1,2,4,8")
		return desc, false
	}

	return desc, true
}

func stripSpaces(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func applyAtom(ctx *assembler_context.Context, desc *MemoryOperandDescriptor, atom string, isAdding bool) bool {
	upper := upperASCII(atom)

	if idx := indexByte(upper, '*'); idx >= 0 {
		return applyScaledIndex(ctx, desc, upper, isAdding)
	}

	if info, ok := asm.LookupRegister(upper); ok {
		return applyRegisterAtom(ctx, desc, info, isAdding)
	}

	n, ok := asm.ParseNumber(atom)
	if !ok {
		ctx.Errorf("invalid %s literal `%s`", asm.BaseName(atom), atom)
		return false
	}

	signed := int64(n)
	if !asm.FitsInt32(signed) {
		ctx.Warnf("displacement too large, truncating to 32 bits")
		signed = int64(int32(n))
	}
	if isAdding {
		desc.Disp += signed
	} else {
		desc.Disp -= signed
	}
	return true
}

func applyRegisterAtom(ctx *assembler_context.Context, desc *MemoryOperandDescriptor, info asm.RegisterInfo, isAdding bool) bool {
	if info.Width == 8 {
		ctx.Errorf("cannot use an 8-bit register in a memory operand")
		return false
	}

	if info.Width == 16 {
		if desc.Size == 32 {
			ctx.Errorf("cannot mix 16-bit and 32-bit registers in a memory operand")
			return false
		}
		desc.Size = 16
		return applyRegisterPair16(ctx, desc, info.Reg)
	}

	if info.Width != 32 {
		ctx.Errorf("register not usable in a memory operand")
		return false
	}

	// 32-bit general-purpose register.
	if desc.Size == 16 {
		ctx.Errorf("cannot mix 16-bit and 32-bit registers in a memory operand")
		return false
	}
	desc.Size = 32

	enc := asm.RegisterEncoding[info.Reg]
	switch {
	case desc.Base == noReg:
		desc.Base = enc
	case desc.Index == noReg:
		desc.Index = enc
		desc.Scale = 1
	case desc.Base == enc:
		if desc.Index != noReg && desc.Scale != 1 {
			ctx.Errorf("use [scale*index+base+disp]")
			return false
		}
		desc.Index = desc.Base
		desc.Base = enc
		desc.Scale = 2
	case desc.Index == enc:
		if isAdding {
			desc.Scale++
		} else {
			desc.Scale--
		}
	default:
		ctx.Errorf("invalid use of third 32-bit register")
		return false
	}
	return true
}

func applyRegisterPair16(ctx *assembler_context.Context, desc *MemoryOperandDescriptor, r asm.Register) bool {
	switch r {
	case asm.BX:
		if desc.BX {
			ctx.Errorf("invalid 16-bit addressing: BX used twice")
			return false
		}
		if desc.BP {
			ctx.Errorf("invalid 16-bit addressing: cannot combine BX and BP")
			return false
		}
		desc.BX = true
	case asm.BP:
		if desc.BP {
			ctx.Errorf("invalid 16-bit addressing: BP used twice")
			return false
		}
		if desc.BX {
			ctx.Errorf("invalid 16-bit addressing: cannot combine BX and BP")
			return false
		}
		desc.BP = true
	case asm.SI:
		if desc.SI {
			ctx.Errorf("invalid 16-bit addressing: SI used twice")
			return false
		}
		if desc.DI {
			ctx.Errorf("invalid 16-bit addressing: cannot combine SI and DI")
			return false
		}
		desc.SI = true
	case asm.DI:
		if desc.DI {
			ctx.Errorf("invalid 16-bit addressing: DI used twice")
			return false
		}
		if desc.SI {
			ctx.Errorf("invalid 16-bit addressing: cannot combine SI and DI")
			return false
		}
		desc.DI = true
	default:
		ctx.Errorf("register not usable in 16-bit addressing")
		return false
	}
	return true
}

func applyScaledIndex(ctx *assembler_context.Context, desc *MemoryOperandDescriptor, atomUpper string, isAdding bool) bool {
	quarks := asm.SplitString(atomUpper, '*')
	if len(quarks) != 2 {
		ctx.Errorf("invalid scaled-index expression")
		return false
	}

	var regQuark, scaleQuark string
	if _, ok := asm.LookupRegister(quarks[0]); ok {
		regQuark, scaleQuark = quarks[0], quarks[1]
	} else {
		regQuark, scaleQuark = quarks[1], quarks[0]
	}

	info, ok := asm.LookupRegister(regQuark)
	if !ok || info.Width != 32 {
		ctx.Errorf("scaled-index requires a 32-bit register")
		return false
	}

	n, ok := asm.ParseNumber(scaleQuark)
	if !ok {
		ctx.Errorf("invalid scale factor `%s`", scaleQuark)
		return false
	}
	switch n {
	case 1, 2, 4, 8:
	default:
		ctx.Errorf("invalid scale factor: valid values are 1,2,4,8")
		return false
	}

	if desc.Size == 16 {
		ctx.Errorf("cannot mix 16-bit and 32-bit registers in a memory operand")
		return false
	}
	desc.Size = 32

	enc := asm.RegisterEncoding[info.Reg]
	scale := int8(n)
	if !isAdding {
		scale = -scale
	}

	switch {
	case desc.Index == noReg:
		desc.Index = enc
		desc.Scale = byte(scale)
	case desc.Index == enc:
		desc.Scale = byte(int8(desc.Scale) + scale)
	case desc.Base == enc:
		desc.Base = noReg
		desc.Scale = byte(scale)
		desc.Index = enc
	case desc.Base == noReg && desc.Scale == 1:
		desc.Base = desc.Index
		desc.Index = enc
		desc.Scale = byte(scale)
	default:
		ctx.Errorf("invalid use of third 32-bit register: use [scale*index + base + disp]")
		return false
	}
	return true
}

func upperASCII(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return string(out)
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
