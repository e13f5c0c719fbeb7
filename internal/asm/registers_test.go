package asm_test

import (
	"testing"

	"github.com/keurnel/aus/internal/asm"
)

func TestLookupRegister(t *testing.T) {
	info, ok := asm.LookupRegister("EAX")
	if !ok {
		t.Fatal("expected EAX to be found")
	}
	if info.Reg != asm.EAX || info.Width != 32 {
		t.Errorf("unexpected info for EAX: %+v", info)
	}

	if _, ok := asm.LookupRegister("R8D"); ok {
		t.Error("R8D must not be recognised: 64-bit registers are out of scope")
	}
}

func TestRegisterEncodingSharedAcrossWidths(t *testing.T) {
	scenarios := []struct {
		name string
		regs []asm.Register
		want byte
	}{
		{"accumulator", []asm.Register{asm.AL, asm.AX, asm.EAX}, 0b000},
		{"counter", []asm.Register{asm.CL, asm.CX, asm.ECX}, 0b001},
		{"base", []asm.Register{asm.BL, asm.BX, asm.EBX}, 0b011},
	}
	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			for _, r := range s.regs {
				if got := asm.RegisterEncoding[r]; got != s.want {
					t.Errorf("encoding for %d = %b, want %b", r, got, s.want)
				}
			}
		})
	}
}

func TestIs16BitAddressingReg(t *testing.T) {
	for _, r := range []asm.Register{asm.BX, asm.BP, asm.SI, asm.DI} {
		if !asm.Is16BitAddressingReg(r) {
			t.Errorf("expected register %d to be usable in 16-bit addressing", r)
		}
	}
	if asm.Is16BitAddressingReg(asm.EAX) {
		t.Error("EAX must not be usable in 16-bit register-pair addressing")
	}
}
