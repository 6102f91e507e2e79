// Package token classifies the scalar leaves of an instruction tree.
package token

import (
	"strings"

	"github.com/risor-io/evmasm/errors"
	"github.com/risor-io/evmasm/op"
)

// Type describes the type of a token as a string.
type Type string

// Position points to a particular location in an input document.
type Position struct {
	Line   int    // 1-indexed line number
	Column int    // 1-indexed column number
	File   string // filename
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0
}

// Location converts the position for error reporting.
func (p Position) Location() errors.SourceLocation {
	return errors.SourceLocation{Filename: p.File, Line: p.Line, Column: p.Column}
}

func (p Position) String() string {
	return p.Location().String()
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Token types
const (
	ILLEGAL  Type = "ILLEGAL"
	NUMBER   Type = "NUMBER"
	MNEMONIC Type = "MNEMONIC"
	IDENT    Type = "IDENT"
)

// DataPrefix marks a label whose block is a raw data payload.
const DataPrefix = "bytes:"

// Suffixes of the derived data label references.
const (
	PtrSuffix  = ":ptr"
	SizeSuffix = ":size"
)

// Classify determines the token type of a scalar leaf. Numbers win over
// mnemonics, and mnemonics win over labels, so a label can never shadow an
// opcode. Any other non-empty string names a label.
func Classify(literal string) Type {
	switch {
	case literal == "":
		return ILLEGAL
	case LooksNumeric(literal):
		return NUMBER
	}
	if _, ok := op.Lookup(literal); ok {
		return MNEMONIC
	}
	return IDENT
}

// LooksNumeric reports whether the literal is spelled as a number: 0x, 0o or
// 0b followed by digits of that base, or a signed decimal with an optional
// fraction and exponent. It does not validate the value; "1.5" looks numeric
// but is rejected later. Strings such as "1st" or "0xzz" are labels.
func LooksNumeric(s string) bool {
	if len(s) > 2 && s[0] == '0' {
		var digit func(byte) bool
		switch s[1] {
		case 'x', 'X':
			digit = isHexDigit
		case 'o', 'O':
			digit = func(c byte) bool { return c >= '0' && c <= '7' }
		case 'b', 'B':
			digit = func(c byte) bool { return c == '0' || c == '1' }
		}
		if digit != nil {
			return allBytes(s[2:], digit)
		}
	}
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	mantissa, exponent, hasExp := strings.Cut(strings.ToLower(s), "e")
	if hasExp {
		if exponent != "" && (exponent[0] == '-' || exponent[0] == '+') {
			exponent = exponent[1:]
		}
		if !allBytes(exponent, isDigit) {
			return false
		}
	}
	whole, frac, _ := strings.Cut(mantissa, ".")
	if whole == "" && frac == "" {
		return false
	}
	return (whole == "" || allBytes(whole, isDigit)) && (frac == "" || allBytes(frac, isDigit))
}

// IsDataLabel reports whether the name carries the data label prefix.
func IsDataLabel(name string) bool {
	return strings.HasPrefix(name, DataPrefix) && len(name) > len(DataPrefix)
}

func allBytes(s string, pred func(byte) bool) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !pred(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
