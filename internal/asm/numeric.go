package asm

import (
	"strconv"
	"strings"
)

// TrimString trims leading and trailing spaces and tabs, matching
// original_source/parsing_utils.cpp's trim_string.
func TrimString(s string) string {
	return strings.Trim(s, " \t")
}

// SplitString splits s on every occurrence of sep, matching
// original_source/parsing_utils.cpp's split_string. Unlike strings.Split it
// drops empty fields produced by consecutive separators, which is what the
// memory-operand and scaled-index parsers rely on.
func SplitString(s string, sep byte) []string {
	var out []string
	for _, part := range strings.Split(s, string(sep)) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseNumber parses a numeric literal using the base implied by its
// prefix: 0x/0X for hexadecimal, 0o/0O for octal, 0b/0B for binary, and
// plain digits for decimal, matching original_source/parsing_utils.cpp's
// parse_number. The literal must be consumed in full; any leftover
// character is a parse failure.
func ParseNumber(s string) (uint64, bool) {
	var base int
	digits := s

	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0O"):
		base, digits = 8, s[2:]
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		base, digits = 2, s[2:]
	default:
		base, digits = 10, s
	}

	if digits == "" {
		return 0, false
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// BaseName names the numeric base implied by a literal's prefix, used to
// compose parse-failure diagnostics ("invalid hexadecimal literal `...`").
func BaseName(s string) string {
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		return "hexadecimal"
	case strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0O"):
		return "octal"
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		return "binary"
	default:
		return "decimal"
	}
}

// FitsInt8 reports whether n is representable as a signed 8-bit integer,
// matching original_source's test_number<int8_t>.
func FitsInt8(n int64) bool { return n >= -128 && n <= 127 }

// FitsInt16 reports whether n is representable as a signed 16-bit integer,
// matching original_source's test_number<int16_t>.
func FitsInt16(n int64) bool { return n >= -32768 && n <= 32767 }

// FitsInt32 reports whether n is representable as a signed 32-bit integer,
// matching original_source's test_number<int32_t>.
func FitsInt32(n int64) bool { return n >= -2147483648 && n <= 2147483647 }
