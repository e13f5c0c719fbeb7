package asm_test

import (
	"testing"

	"github.com/keurnel/aus/internal/asm"
)

func TestLineAnalyze(t *testing.T) {
	scenarios := []struct {
		name     string
		line     string
		expected asm.LineCharacteristics
	}{
		{"Empty line", "", asm.LineCharacteristics{IsEmpty: true}},
		{"Whitespace line", "   ", asm.LineCharacteristics{IsEmpty: true}},
		{"BITS directive", "BITS 32", asm.LineCharacteristics{IsBitsDirective: true}},
		{"Bracketed BITS directive", "[BITS 16]", asm.LineCharacteristics{IsBitsDirective: true}},
		{"Slash comment", "// a comment", asm.LineCharacteristics{IsComment: true}},
		{"Semicolon comment", "; a comment", asm.LineCharacteristics{IsComment: true}},
		{"Hash comment", "# a comment", asm.LineCharacteristics{IsComment: true}},
		{"Instruction line", "ADD AL,5", asm.LineCharacteristics{}},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			result := asm.LineAnalyze(scenario.line)
			if result != scenario.expected {
				t.Errorf("Expected LineAnalyze(%q) to be %+v, got %+v", scenario.line, scenario.expected, result)
			}
		})
	}
}

func TestIsEmptyLine(t *testing.T) {
	scenarios := []struct {
		name     string
		line     string
		expected bool
	}{
		{"Empty string", "", true},
		{"Spaces only", "   ", true},
		{"Tabs only", "\t\t", true},
		{"Non-empty", "HLT", false},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			if result := asm.IsEmptyLine(scenario.line); result != scenario.expected {
				t.Errorf("Expected IsEmptyLine(%q) to be %v, got %v", scenario.line, scenario.expected, result)
			}
		})
	}
}

func TestIsCommentLine(t *testing.T) {
	scenarios := []struct {
		name     string
		line     string
		expected bool
	}{
		{"Slash comment, no leading whitespace", "// comment", true},
		{"Semicolon comment", "; comment", true},
		{"Hash comment", "# comment", true},
		{"Leading whitespace before marker is not stripped here", "   ; comment", false},
		{"Marker mid-line is not a comment line", "ADD AL, 5 ; comment", false},
		{"Not a comment", "ADD AL, 5", false},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			if result := asm.IsCommentLine(scenario.line); result != scenario.expected {
				t.Errorf("Expected IsCommentLine(%q) to be %v, got %v", scenario.line, scenario.expected, result)
			}
		})
	}
}

func TestIsBitsDirectiveLine(t *testing.T) {
	scenarios := []struct {
		name     string
		line     string
		expected bool
	}{
		{"Plain BITS directive", "BITS 16", true},
		{"Bracketed BITS directive", "[BITS 32]", true},
		{"Missing the trailing space", "BITS16", false},
		{"Not a BITS directive", "ADD AL, 5", false},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			if result := asm.IsBitsDirectiveLine(scenario.line); result != scenario.expected {
				t.Errorf("Expected IsBitsDirectiveLine(%q) to be %v, got %v", scenario.line, scenario.expected, result)
			}
		})
	}
}
