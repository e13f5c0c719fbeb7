package asm_test

import (
	"testing"

	"github.com/keurnel/aus/internal/asm"
)

func TestParseOperand_Register(t *testing.T) {
	arg, ok := asm.ParseOperand("EAX")
	if !ok {
		t.Fatal("expected EAX to parse")
	}
	if arg.Type != asm.ArgRegister || arg.Reg != asm.EAX {
		t.Errorf("unexpected arg: %+v", arg)
	}
}

func TestParseOperand_Immediate(t *testing.T) {
	arg, ok := asm.ParseOperand("0x10")
	if !ok {
		t.Fatal("expected 0x10 to parse")
	}
	if arg.Type != asm.ArgImmediate || arg.Imm != 16 {
		t.Errorf("unexpected arg: %+v", arg)
	}
}

func TestParseOperand_Memory(t *testing.T) {
	arg, ok := asm.ParseOperand("[BX+SI+4]")
	if !ok {
		t.Fatal("expected memory operand to parse")
	}
	if arg.Type != asm.ArgMemory || arg.MemText != "BX+SI+4" {
		t.Errorf("unexpected arg: %+v", arg)
	}
}

func TestParseOperand_SizeOverride(t *testing.T) {
	arg, ok := asm.ParseOperand("%BYTE [EBP]")
	if !ok {
		t.Fatal("expected sized memory operand to parse")
	}
	if arg.Type != asm.ArgMemory || arg.SizeOverride != 8 || arg.MemText != "EBP" {
		t.Errorf("unexpected arg: %+v", arg)
	}
}

func TestParseOperand_Invalid(t *testing.T) {
	if _, ok := asm.ParseOperand("@@@"); ok {
		t.Error("expected garbage operand to fail to parse")
	}
}

func TestParseOperand_SizeOverrideOnRegisterIsError(t *testing.T) {
	if _, ok := asm.ParseOperand("%WORD AX"); ok {
		t.Error("a size keyword attached to a register must be rejected")
	}
}

func TestParseOperand_SizeOverrideOnImmediateIsError(t *testing.T) {
	if _, ok := asm.ParseOperand("%BYTE 5"); ok {
		t.Error("a size keyword attached to a bare immediate must be rejected")
	}
}

func TestSplitOperands(t *testing.T) {
	got := asm.SplitOperands("AL, 5")
	want := []string{"AL", "5"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("SplitOperands(\"AL, 5\") = %v, want %v", got, want)
	}
}

func TestSplitOperands_Empty(t *testing.T) {
	if got := asm.SplitOperands("   "); got != nil {
		t.Errorf("expected nil for an empty operand list, got %v", got)
	}
}

func TestExpectArguments(t *testing.T) {
	var lastMsg string
	errorf := func(format string, args ...any) { lastMsg = format }

	if !asm.ExpectArguments(errorf, "ADD", 2, 2) {
		t.Error("expected 2 args to satisfy an arity of 2")
	}
	if asm.ExpectArguments(errorf, "ADD", 1, 2) {
		t.Error("expected 1 arg to fail an arity of 2")
	}
	if lastMsg == "" {
		t.Error("expected an error message to be recorded on arity mismatch")
	}
}
