package diagnostics

import "testing"

func TestLog_Empty(t *testing.T) {
	var l Log
	if l.HasErrors() {
		t.Error("expected no errors on a fresh Log")
	}
	if len(l.Entries()) != 0 {
		t.Error("expected no entries on a fresh Log")
	}
}

func TestLog_Error(t *testing.T) {
	var l Log
	l.Error(12, "unknown instruction `%s`", "MVO")

	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Severity != SeverityError {
		t.Errorf("expected severity error, got %s", entries[0].Severity)
	}
	if entries[0].Line != 12 {
		t.Errorf("expected line 12, got %d", entries[0].Line)
	}
	if entries[0].Message != "unknown instruction `MVO`" {
		t.Errorf("unexpected message: %s", entries[0].Message)
	}
	if !l.HasErrors() {
		t.Error("expected HasErrors to be true")
	}
}

func TestLog_Warning(t *testing.T) {
	var l Log
	l.Warning(3, "immediate value too large to fit in 8 bits, truncating")

	if l.HasErrors() {
		t.Error("a warning must not set HasErrors")
	}
	if len(l.Warnings()) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(l.Warnings()))
	}
}

func TestLog_FiltersBySeverity(t *testing.T) {
	var l Log
	l.Error(1, "bad literal")
	l.Warning(2, "truncated")
	l.Error(3, "bad register")

	if len(l.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %d", len(l.Errors()))
	}
	if len(l.Warnings()) != 1 {
		t.Errorf("expected 1 warning, got %d", len(l.Warnings()))
	}
	if len(l.Entries()) != 3 {
		t.Errorf("expected 3 entries total, got %d", len(l.Entries()))
	}
}

func TestEntry_String(t *testing.T) {
	e := Entry{Severity: SeverityError, Line: 10, Message: "bad mode"}
	if e.String() != "error on line 10: bad mode" {
		t.Errorf("unexpected String(): %s", e.String())
	}
}

func TestLog_EntriesReturnsCopy(t *testing.T) {
	var l Log
	l.Error(1, "original")

	entries := l.Entries()
	entries[0].Message = "mutated"

	if l.Entries()[0].Message != "original" {
		t.Error("Entries() must return a copy, not a reference to the internal slice")
	}
}
