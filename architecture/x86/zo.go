package x86

import (
	"strings"

	"github.com/keurnel/aus/internal/assembler_context"
)

// ZOInstruction is a zero-operand instruction's static encoding.
// Transcribed from original_source/include/formats.hpp's ZOInstruction
// and original_source/src/formats/zo.cpp's ~80-entry table.
type ZOInstruction struct {
	Opcode byte

	// ForbiddenPrefixes makes the instruction error out if any of these
	// bytes are currently queued as a contextual prefix.
	ForbiddenPrefixes []byte

	// ModePrefix, when its Mode matches the active bits-mode, is emitted
	// before OtherPrefixes and the opcode (the CBW/CWDE-style 0x66
	// operand-size override pattern).
	ModePrefixMode assembler_context.BitsMode
	ModePrefixByte byte

	OtherPrefixes []byte

	HasOptionalImm8 bool
}

// ZOTable maps a mnemonic to its zero-operand encoding. String-keyed by
// design: SERIALIZE, LFENCE, XSUSLDTRK and SETSSBSY legitimately collide
// on opcode 0xE8 with different prefix bytes (and XRESLDTRK shares
// SETSSBSY's 0x0F 0x01 escape on opcode 0xE9), so each mnemonic gets its
// own entry rather than sharing one by opcode.
var ZOTable = map[string]ZOInstruction{
	"AAA": {Opcode: 0x37},
	"AAD": {Opcode: 0xD5, HasOptionalImm8: true},
	"AAM": {Opcode: 0xD4, HasOptionalImm8: true},
	"AAS": {Opcode: 0x3F},
	"CBW": {Opcode: 0x98, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"CWDE": {Opcode: 0x98, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"CWD": {Opcode: 0x99, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"CDQ": {Opcode: 0x99, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"CLAC": {Opcode: 0xCA, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0x01}},
	"CLC": {Opcode: 0xF8},
	"CLD": {Opcode: 0xFC},
	"CLI": {Opcode: 0xFA},
	"CLTS": {Opcode: 0x06, OtherPrefixes: []byte{0x0F}},
	"CMC": {Opcode: 0xF5},
	"CMPSB": {Opcode: 0xA6},
	"CMPSW": {Opcode: 0xA7, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"CMPSD": {Opcode: 0xA7, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"CPUID": {Opcode: 0xA2, OtherPrefixes: []byte{0x0F}},
	"DAA": {Opcode: 0x27},
	"DAS": {Opcode: 0x2F},
	"ENDBR32": {Opcode: 0xFB, OtherPrefixes: []byte{0xF3, 0x0F, 0x1E}},
	"ENDBR64": {Opcode: 0xFA, OtherPrefixes: []byte{0xF3, 0x0F, 0x1E}},
	"HLT": {Opcode: 0xF4},
	"INSB": {Opcode: 0x6C},
	"INSW": {Opcode: 0x6D, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"INSD": {Opcode: 0x6D, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"INT1": {Opcode: 0xF1},
	"INT3": {Opcode: 0xCC},
	"INTO": {Opcode: 0xCE},
	"INVD": {Opcode: 0x08, OtherPrefixes: []byte{0x0F}},
	"IRET": {Opcode: 0xCF},
	"IRETD": {Opcode: 0xCF, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"LAHF": {Opcode: 0x9F},
	"LEAVE": {Opcode: 0xC9},
	"LFENCE": {Opcode: 0xE8, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0xAE}},
	"LODSB": {Opcode: 0xAC},
	"LODSW": {Opcode: 0xAD, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"LODSD": {Opcode: 0xAD, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"MFENCE": {Opcode: 0xF0, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0xAE}},
	"MONITOR": {Opcode: 0xC8, OtherPrefixes: []byte{0x0F, 0x01}},
	"MOVSB": {Opcode: 0xA4},
	"MOVSW": {Opcode: 0xA5, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"MOVSD": {Opcode: 0xA5, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"MWAIT": {Opcode: 0xC9, OtherPrefixes: []byte{0x0F, 0x01}},
	"OUTSB": {Opcode: 0x6E},
	"OUTSW": {Opcode: 0x6F, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"OUTSD": {Opcode: 0x6F, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"PAUSE": {Opcode: 0x90, OtherPrefixes: []byte{0xF3}},
	"PCONFIG": {Opcode: 0xC5, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0x01}},
	"POPA": {Opcode: 0x61, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"POPAD": {Opcode: 0x61, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"POPF": {Opcode: 0x9D, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"POPFD": {Opcode: 0x9D, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"PUSHA": {Opcode: 0x60, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"PUSHAD": {Opcode: 0x60, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"PUSHF": {Opcode: 0x9C, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"PUSHFD": {Opcode: 0x9C, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"RDMSR": {Opcode: 0x32, OtherPrefixes: []byte{0x0F}},
	"RDPKRU": {Opcode: 0xEE, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0x01}},
	"RDPMC": {Opcode: 0x33, OtherPrefixes: []byte{0x0F}},
	"RDTSC": {Opcode: 0x31, OtherPrefixes: []byte{0x0F}},
	"RDTSCP": {Opcode: 0xF9, OtherPrefixes: []byte{0x0F, 0x01}},
	"RSM": {Opcode: 0xAA, OtherPrefixes: []byte{0x0F}},
	"SAHF": {Opcode: 0x9E},
	"SAVEPREVSSP": {Opcode: 0xEA, OtherPrefixes: []byte{0xF3, 0x0F, 0x01}},
	"SCASB": {Opcode: 0xAE},
	"SCASW": {Opcode: 0xAF, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"SCASD": {Opcode: 0xAF, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"SERIALIZE": {Opcode: 0xE8, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0x01}},
	"SETSSBSY": {Opcode: 0xE8, OtherPrefixes: []byte{0xF3, 0x0F, 0x01}},
	"SFENCE": {Opcode: 0xF8, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0xAE}},
	"STAC": {Opcode: 0xCB, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0x01}},
	"STC": {Opcode: 0xF9},
	"STD": {Opcode: 0xFD},
	"STI": {Opcode: 0xFB},
	"STOSB": {Opcode: 0xAA},
	"STOSW": {Opcode: 0xAB, ModePrefixMode: assembler_context.M32, ModePrefixByte: 0x66},
	"STOSD": {Opcode: 0xAB, ModePrefixMode: assembler_context.M16, ModePrefixByte: 0x66},
	"SYSENTER": {Opcode: 0x34, OtherPrefixes: []byte{0x0F}},
	"SYSEXIT": {Opcode: 0x35, OtherPrefixes: []byte{0x0F}},
	"UD2": {Opcode: 0x0B, OtherPrefixes: []byte{0x0F}},
	"WBINVD": {Opcode: 0x09, OtherPrefixes: []byte{0x0F}},
	"WBNOINVD": {Opcode: 0x09, OtherPrefixes: []byte{0xF3, 0x0F}},
	"WRMSR": {Opcode: 0x30, OtherPrefixes: []byte{0x0F}},
	"WRPKRU": {Opcode: 0xEF, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0x01}},
	"XGETBV": {Opcode: 0xD0, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0x01}},
	"XLATB": {Opcode: 0xD7},
	"XRESLDTRK": {Opcode: 0xE9, OtherPrefixes: []byte{0xF2, 0x0F, 0x01}},
	"XSETBV": {Opcode: 0xD1, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0x01}},
	"XSUSLDTRK": {Opcode: 0xE8, OtherPrefixes: []byte{0xF2, 0x0F, 0x01}},
	"XTEST": {Opcode: 0xD6, ForbiddenPrefixes: []byte{0x66, 0xF2, 0xF3}, OtherPrefixes: []byte{0x0F, 0x01}},
}

// AssembleZO encodes a zero-operand instruction. Any non-empty, non-comment
// trailing text after the mnemonic is an error, since this family takes no
// operands. Transcribed from original_source/src/formats/zo.cpp's
// assemble_zo.
func AssembleZO(ctx *assembler_context.Context, mnemonic, trailing string) []byte {
	zo, ok := ZOTable[mnemonic]
	if !ok {
		return nil
	}

	trailing = strings.TrimSpace(trailing)
	if trailing != "" && !strings.HasPrefix(trailing, "//") && !strings.HasPrefix(trailing, ";") && !strings.HasPrefix(trailing, "#") {
		ctx.Errorf("%s takes no operands", mnemonic)
		return nil
	}

	for _, forbidden := range zo.ForbiddenPrefixes {
		if ctx.HasContextualPrefix(forbidden) {
			ctx.Errorf("prefix 0x%02X is not allowed with %s", forbidden, mnemonic)
			return nil
		}
	}

	out := flushPrefixes(ctx)

	if zo.ModePrefixMode != assembler_context.Invalid && ctx.BMode == zo.ModePrefixMode {
		out = append(out, zo.ModePrefixByte)
	}

	out = append(out, zo.OtherPrefixes...)
	out = append(out, zo.Opcode)
	return out
}
