package errors

// ErrorCode represents a unique identifier for error types.
// Codes are organized by category:
//   - E1xxx: Decode errors (instruction tree shape)
//   - E2xxx: Assembly errors
type ErrorCode string

const (
	// Decode errors (E1xxx)
	E1001 ErrorCode = "E1001" // Unsupported node
	E1002 ErrorCode = "E1002" // Invalid number literal
	E1003 ErrorCode = "E1003" // Malformed data label
	E1004 ErrorCode = "E1004" // Empty token
	E1005 ErrorCode = "E1005" // Invalid document

	// Assembly errors (E2xxx)
	E2001 ErrorCode = "E2001" // Unknown opcode
	E2002 ErrorCode = "E2002" // Constant overflow
	E2003 ErrorCode = "E2003" // Unresolved reference
	E2004 ErrorCode = "E2004" // Duplicate label
	E2005 ErrorCode = "E2005" // Offset overflow
	E2006 ErrorCode = "E2006" // Invalid data payload
)

// Sentinels for use with errors.Is. Any *AssemblyError carrying the same
// code matches.
var (
	ErrUnsupportedNode     error = E1001
	ErrInvalidNumber       error = E1002
	ErrMalformedData       error = E1003
	ErrEmptyToken          error = E1004
	ErrInvalidDocument     error = E1005
	ErrUnknownOpcode       error = E2001
	ErrConstantOverflow    error = E2002
	ErrUnresolvedReference error = E2003
	ErrDuplicateLabel      error = E2004
	ErrOffsetOverflow      error = E2005
	ErrInvalidData         error = E2006
)

// codeDescriptions maps error codes to their short descriptions.
var codeDescriptions = map[ErrorCode]string{
	E1001: "unsupported node",
	E1002: "invalid number literal",
	E1003: "malformed data label",
	E1004: "empty token",
	E1005: "invalid document",

	E2001: "opcode not found",
	E2002: "constant integer overflow",
	E2003: "unresolved reference",
	E2004: "duplicate label",
	E2005: "offset overflow",
	E2006: "invalid data payload",
}

// Description returns the short description for an error code.
func (c ErrorCode) Description() string {
	if desc, ok := codeDescriptions[c]; ok {
		return desc
	}
	return "unknown error"
}

// String returns the error code as a string.
func (c ErrorCode) String() string {
	return string(c)
}

// Error lets a bare code act as a sentinel error.
func (c ErrorCode) Error() string {
	return c.Description()
}

// Category returns the error category based on the code prefix.
func (c ErrorCode) Category() string {
	if len(c) < 2 {
		return "unknown"
	}
	switch c[1] {
	case '1':
		return "decode"
	case '2':
		return "assemble"
	default:
		return "unknown"
	}
}
