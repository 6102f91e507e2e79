// Package bytesutil holds the byte-string primitives shared by the assembler,
// the parser and the disassembler.
package bytesutil

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// HasHexPrefix reports whether s starts with 0x or 0X.
func HasHexPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// StripHexPrefix removes a leading 0x or 0X, if present.
func StripHexPrefix(s string) string {
	if HasHexPrefix(s) {
		return s[2:]
	}
	return s
}

// AddHexPrefix encodes b as lowercase hex with a 0x prefix.
func AddHexPrefix(b []byte) string {
	return hexutil.Encode(b)
}

// DecodeHex decodes a hex string with or without the 0x prefix. An odd number
// of digits is left padded with a single zero so that "0xabc" decodes to
// 0x0abc.
func DecodeHex(s string) ([]byte, error) {
	digits := StripHexPrefix(strings.TrimSpace(s))
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	return hex.DecodeString(digits)
}

// LeftZeroPad returns b left padded with zeros to exactly n bytes. Inputs
// already n bytes or longer are returned as a copy, unchanged.
func LeftZeroPad(b []byte, n int) []byte {
	if len(b) >= n {
		out := make([]byte, len(b))
		copy(out, b)
		return out
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

// ByteLen returns the minimal number of bytes needed to represent v in big
// endian form. Zero needs zero bytes.
func ByteLen(v uint64) int {
	return uint256.NewInt(v).ByteLen()
}

// PutUint writes v big endian into exactly n bytes. It reports false if v
// does not fit.
func PutUint(v uint64, n int) ([]byte, bool) {
	if ByteLen(v) > n {
		return nil, false
	}
	return uint256.NewInt(v).PaddedBytes(n), true
}
