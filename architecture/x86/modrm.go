package x86

import (
	"github.com/keurnel/aus/internal/asm"
	"github.com/keurnel/aus/internal/assembler_context"
)

// MemoryOperand is the fully-resolved encoding of a memory operand: the
// ModR/M byte, an optional SIB byte, and the displacement bytes to
// append. Transcribed from original_source/include/memory.hpp.
type MemoryOperand struct {
	Size    int
	ModRM   byte
	HasSIB  bool
	SIB     byte
	DispSize int // 0, 8, 16 or 32
	Disp    uint64
}

// DispBytes renders the operand's displacement in little-endian order.
func (m MemoryOperand) DispBytes() []byte {
	switch m.DispSize {
	case 8:
		return []byte{byte(m.Disp)}
	case 16:
		return []byte{byte(m.Disp), byte(m.Disp >> 8)}
	case 32:
		return []byte{byte(m.Disp), byte(m.Disp >> 8), byte(m.Disp >> 16), byte(m.Disp >> 24)}
	default:
		return nil
	}
}

// BuildModRMCore packs a ModR/M byte from its mod/reg/rm fields, transcribed
// from original_source/src/memory.cpp's build_modrm_core.
func BuildModRMCore(rm, reg, mod byte) byte {
	return (mod&3)<<6 | (reg&7)<<3 | (rm & 7)
}

func buildSIBCore(base, index, scale byte) byte {
	var sc byte
	switch scale {
	case 2:
		sc = 0b01
	case 4:
		sc = 0b10
	case 8:
		sc = 0b11
	default:
		sc = 0b00
	}
	return sc<<6 | (index&7)<<3 | (base & 7)
}

const esp = 0b100
const ebp = 0b101

// MakeModRMSIB reduces a parsed MemoryOperandDescriptor plus the reg field
// of the accompanying operand into a concrete ModR/M (and, for 32-bit
// addressing, possibly SIB) encoding. Transcribed from
// original_source/src/memory.cpp's make_modrm_sib, including its exact
// 16-bit register-pair table and 32-bit base/index/scale promotion rules.
func MakeModRMSIB(ctx *assembler_context.Context, desc MemoryOperandDescriptor, regV byte) (MemoryOperand, bool) {
	if desc.Size == 16 {
		return build16BitModRM(ctx, desc, regV)
	}
	return build32BitModRMSIB(ctx, desc, regV)
}

func build16BitModRM(ctx *assembler_context.Context, desc MemoryOperandDescriptor, regV byte) (MemoryOperand, bool) {
	var rm byte
	switch {
	case desc.BX && desc.SI:
		rm = 0b000
	case desc.BX && desc.DI:
		rm = 0b001
	case desc.BP && desc.SI:
		rm = 0b010
	case desc.BP && desc.DI:
		rm = 0b011
	case desc.SI:
		rm = 0b100
	case desc.DI:
		rm = 0b101
	case desc.BP:
		// BP-only has no mod00 form; zero displacement still emits disp8=0.
		if asm.FitsInt8(desc.Disp) {
			return MemoryOperand{
				Size: 16, ModRM: BuildModRMCore(0b110, regV, 0b01),
				DispSize: 8, Disp: uint64(uint8(int8(desc.Disp))),
			}, true
		}
		if asm.FitsInt16(desc.Disp) {
			return MemoryOperand{
				Size: 16, ModRM: BuildModRMCore(0b110, regV, 0b10),
				DispSize: 16, Disp: uint64(uint16(int16(desc.Disp))),
			}, true
		}
		ctx.Errorf("displacement too large for 16-bit addressing")
		return MemoryOperand{}, false
	default:
		// No registers at all: pure displacement, encoded as mod00/rm110
		// with a mandatory disp16.
		if !asm.FitsInt16(desc.Disp) {
			ctx.Errorf("displacement too large for 16-bit addressing")
			return MemoryOperand{}, false
		}
		return MemoryOperand{
			Size: 16, ModRM: BuildModRMCore(0b110, regV, 0b00),
			DispSize: 16, Disp: uint64(uint16(int16(desc.Disp))),
		}, true
	}

	switch {
	case desc.Disp == 0:
		return MemoryOperand{Size: 16, ModRM: BuildModRMCore(rm, regV, 0b00)}, true
	case asm.FitsInt8(desc.Disp):
		return MemoryOperand{
			Size: 16, ModRM: BuildModRMCore(rm, regV, 0b01),
			DispSize: 8, Disp: uint64(uint8(int8(desc.Disp))),
		}, true
	case asm.FitsInt16(desc.Disp):
		return MemoryOperand{
			Size: 16, ModRM: BuildModRMCore(rm, regV, 0b10),
			DispSize: 16, Disp: uint64(uint16(int16(desc.Disp))),
		}, true
	default:
		ctx.Errorf("displacement too large for 16-bit addressing")
		return MemoryOperand{}, false
	}
}

func build32BitModRMSIB(ctx *assembler_context.Context, desc MemoryOperandDescriptor, regV byte) (MemoryOperand, bool) {
	base, index, scale := desc.Base, desc.Index, desc.Scale

	// Using ESP as an index register has no encoding: swap base/index when
	// the parser assigned ESP to the index slot, which happens when ESP is
	// the second register of a pair (e.g. [EAX+ESP]) or carries an
	// explicit scale (e.g. [ESP*1]).
	if index == esp && base != esp {
		if scale != 1 {
			ctx.Errorf("cannot use ESP with a memory index")
			return MemoryOperand{}, false
		}
		base, index = index, base
	}

	if index == noReg {
		if base == noReg {
			return MemoryOperand{
				Size: 32, ModRM: BuildModRMCore(esp, regV, 0b00), HasSIB: true,
				SIB: buildSIBCore(0b101, 0b100, 1), DispSize: 32, Disp: uint64(uint32(desc.Disp)),
			}, true
		}

		// A lone base register whose encoding equals ESP's (0b100) must
		// still carry a SIB byte: rm==100 is the SIB-escape code at every
		// mod value, regardless of whether an index is semantically
		// present.
		if base == esp {
			var mod byte
			var dispSize int
			switch {
			case desc.Disp == 0:
				mod, dispSize = 0b00, 0
			case asm.FitsInt8(desc.Disp):
				mod, dispSize = 0b01, 8
			default:
				mod, dispSize = 0b10, 32
			}
			mo := MemoryOperand{
				Size: 32, ModRM: BuildModRMCore(esp, regV, mod), HasSIB: true,
				SIB: buildSIBCore(0b100, 0b100, 1), DispSize: dispSize,
			}
			mo.Disp = dispValue(desc.Disp, dispSize)
			return mo, true
		}

		if base != ebp {
			var mod byte
			var dispSize int
			switch {
			case desc.Disp == 0:
				mod, dispSize = 0b00, 0
			case asm.FitsInt8(desc.Disp):
				mod, dispSize = 0b01, 8
			default:
				mod, dispSize = 0b10, 32
			}
			mo := MemoryOperand{Size: 32, ModRM: BuildModRMCore(base, regV, mod), DispSize: dispSize}
			mo.Disp = dispValue(desc.Disp, dispSize)
			return mo, true
		}

		// base == EBP, no index: zero displacement still needs disp8=0,
		// since mod00/rm101 means "disp32 only, no base" on this rm value.
		if asm.FitsInt8(desc.Disp) {
			return MemoryOperand{
				Size: 32, ModRM: BuildModRMCore(ebp, regV, 0b01),
				DispSize: 8, Disp: uint64(uint8(int8(desc.Disp))),
			}, true
		}
		return MemoryOperand{
			Size: 32, ModRM: BuildModRMCore(ebp, regV, 0b10),
			DispSize: 32, Disp: uint64(uint32(desc.Disp)),
		}, true
	}

	// An index is present: a SIB byte is mandatory.
	sib := buildSIBCore(base, index, scale)
	switch {
	case base == noReg:
		return MemoryOperand{
			Size: 32, ModRM: BuildModRMCore(esp, regV, 0b00), HasSIB: true,
			SIB: buildSIBCore(0b101, index, scale), DispSize: 32, Disp: uint64(uint32(desc.Disp)),
		}, true
	case base == ebp:
		if desc.Disp == 0 {
			return MemoryOperand{
				Size: 32, ModRM: BuildModRMCore(esp, regV, 0b01), HasSIB: true,
				SIB: sib, DispSize: 8, Disp: 0,
			}, true
		}
		if asm.FitsInt8(desc.Disp) {
			return MemoryOperand{
				Size: 32, ModRM: BuildModRMCore(esp, regV, 0b01), HasSIB: true,
				SIB: sib, DispSize: 8, Disp: uint64(uint8(int8(desc.Disp))),
			}, true
		}
		return MemoryOperand{
			Size: 32, ModRM: BuildModRMCore(esp, regV, 0b10), HasSIB: true,
			SIB: sib, DispSize: 32, Disp: uint64(uint32(desc.Disp)),
		}, true
	case desc.Disp == 0:
		return MemoryOperand{
			Size: 32, ModRM: BuildModRMCore(esp, regV, 0b00), HasSIB: true,
			SIB: sib,
		}, true
	case asm.FitsInt8(desc.Disp):
		return MemoryOperand{
			Size: 32, ModRM: BuildModRMCore(esp, regV, 0b01), HasSIB: true,
			SIB: sib, DispSize: 8, Disp: uint64(uint8(int8(desc.Disp))),
		}, true
	default:
		return MemoryOperand{
			Size: 32, ModRM: BuildModRMCore(esp, regV, 0b10), HasSIB: true,
			SIB: sib, DispSize: 32, Disp: uint64(uint32(desc.Disp)),
		}, true
	}
}

func dispValue(disp int64, size int) uint64 {
	switch size {
	case 8:
		return uint64(uint8(int8(disp)))
	case 32:
		return uint64(uint32(disp))
	default:
		return 0
	}
}
