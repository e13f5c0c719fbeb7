package x86

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/keurnel/aus/internal/asm"
	"github.com/keurnel/aus/internal/assembler_context"
	"github.com/keurnel/aus/internal/diagnostics"
)

// ArchitectureName identifies this encoder, following the teacher's
// per-architecture naming convention.
func ArchitectureName() string { return "x86" }

// OperandArg is a fully resolved instruction operand: a register, an
// immediate, or a memory operand whose bracketed text has already been
// parsed into a MemoryOperandDescriptor.
type OperandArg struct {
	IsRegister bool
	IsImmediate bool
	IsMemory   bool

	Reg      Register
	RegWidth int

	Imm uint64

	Mem          MemoryOperandDescriptor
	SizeOverride int
}

func resolveOperand(ctx *assembler_context.Context, raw string) (OperandArg, bool) {
	parsed, ok := asm.ParseOperand(raw)
	if !ok {
		ctx.Errorf("invalid operand `%s`", raw)
		return OperandArg{}, false
	}

	switch parsed.Type {
	case asm.ArgRegister:
		return OperandArg{IsRegister: true, Reg: parsed.Reg, RegWidth: parsed.RegWidth}, true
	case asm.ArgImmediate:
		return OperandArg{IsImmediate: true, Imm: parsed.Imm, SizeOverride: parsed.SizeOverride}, true
	case asm.ArgMemory:
		desc, ok := ParseMemoryOperand(ctx, parsed.MemText)
		if !ok {
			return OperandArg{}, false
		}
		return OperandArg{IsMemory: true, Mem: desc, SizeOverride: parsed.SizeOverride}, true
	default:
		ctx.Errorf("invalid operand `%s`", raw)
		return OperandArg{}, false
	}
}

// AssembleLine encodes one already-trimmed, already-uppercased source
// line, appending the resulting bytes to out. Blank lines, comment lines
// and BITS directives are handled by the caller (AssembleReader) before
// AssembleLine is reached; AssembleLine only ever sees instruction lines.
func AssembleLine(ctx *assembler_context.Context, line string) []byte {
	mnemonic, rest := splitMnemonic(line)

	if _, ok := ZOTable[mnemonic]; ok {
		return AssembleZO(ctx, mnemonic, rest)
	}

	if _, ok := ALUTable[mnemonic]; ok {
		args := asm.SplitOperands(rest)
		if !asm.ExpectArguments(ctx.Errorf, mnemonic, len(args), 2) {
			return nil
		}
		dst, ok1 := resolveOperand(ctx, args[0])
		src, ok2 := resolveOperand(ctx, args[1])
		if !ok1 || !ok2 {
			return nil
		}
		return AssembleALU(ctx, mnemonic, dst, src)
	}

	ctx.Errorf("unknown instruction `%s`", mnemonic)
	return nil
}

func splitMnemonic(line string) (mnemonic, rest string) {
	idx := strings.IndexAny(line, " \t")
	if idx < 0 {
		return line, ""
	}
	return line[:idx], asm.TrimString(line[idx+1:])
}

// AssembleReader reads assembly source from r line by line and writes the
// resulting machine code to w, following original_source/src/main.cpp's
// driver loop: BITS directives update bits-mode, comment and blank lines
// are skipped, and everything else is dispatched to AssembleLine. Errors
// abort only the current line (spec.md §7); the sticky error flag is
// still set afterward so the caller can refuse to trust the output.
func AssembleReader(ctx *assembler_context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		raw := scanner.Text()
		trimmed := asm.TrimString(strings.ToUpper(raw))

		if asm.IsEmptyLine(trimmed) || asm.IsCommentLine(trimmed) {
			ctx.LineNo++
			continue
		}

		if asm.IsBitsDirectiveLine(trimmed) {
			applyBitsDirective(ctx, trimmed)
			ctx.LineNo++
			continue
		}

		out := AssembleLine(ctx, trimmed)
		if len(out) > 0 {
			if _, err := w.Write(out); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
		}
		ctx.LineNo++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

func applyBitsDirective(ctx *assembler_context.Context, line string) {
	body := strings.TrimPrefix(line, "[")
	body = strings.TrimSuffix(body, "]")
	body = strings.TrimPrefix(body, "BITS")
	ctx.ChangeBitsMode(asm.TrimString(body))
}

// FormatDiagnostics renders a diagnostics log the way the reference
// implementation reports errors and warnings to stderr: one line per
// entry, errors and warnings interleaved in the order they were raised.
func FormatDiagnostics(log diagnostics.Log) string {
	var b strings.Builder
	for _, e := range log.Entries() {
		b.WriteString(e.String())
		b.WriteByte('\n')
	}
	return b.String()
}
