// Package errors defines the error types reported while decoding and
// assembling instruction trees.
package errors

import (
	"fmt"
	"unicode/utf8"
)

// SourceLocation represents a position in the source document.
type SourceLocation struct {
	Filename string
	Line     int // 1-based line number
	Column   int // 1-based column number
}

// String returns a formatted string representation of the source location.
func (s SourceLocation) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero returns true if the location has not been set.
func (s SourceLocation) IsZero() bool {
	return s.Line == 0 && s.Column == 0
}

// FormattableError is an interface for errors that can be formatted with
// the enhanced error formatter (with colors, source context, etc).
type FormattableError interface {
	Error() string
	ToFormatted() *FormattedError
}

// AssemblyError is a structural failure found while decoding or assembling
// an instruction tree. None of them are recoverable.
type AssemblyError struct {
	Code     ErrorCode
	Message  string
	Token    string // offending token, label or literal
	Location SourceLocation
	Note     string
	Cause    error
}

// Error implements the error interface.
func (e *AssemblyError) Error() string {
	msg := fmt.Sprintf("%s error: %s", e.Code.Category(), e.Message)
	if !e.Location.IsZero() {
		msg = fmt.Sprintf("%s (%s)", msg, e.Location)
	} else if e.Location.Filename != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Location.Filename)
	}
	return msg
}

// Unwrap returns the underlying cause of the error.
func (e *AssemblyError) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel ErrorCode values.
func (e *AssemblyError) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

// ToFormatted converts to the FormattedError type for display.
func (e *AssemblyError) ToFormatted() *FormattedError {
	return &FormattedError{
		Code:     e.Code,
		Kind:     e.Code.Category() + " error",
		Message:  e.Message,
		Filename: e.Location.Filename,
		Line:     e.Location.Line,
		Column:   e.Location.Column,
		Width:    e.tokenWidth(),
		Note:     e.Note,
	}
}

// tokenWidth is the underline width for errors located at their token.
func (e *AssemblyError) tokenWidth() int {
	switch e.Code {
	case E1002, E2001, E2002, E2003:
		return utf8.RuneCountInString(e.Token)
	}
	return 0
}

// WithFilename returns a copy of the error with the location's filename set.
func (e *AssemblyError) WithFilename(filename string) *AssemblyError {
	cp := *e
	cp.Location.Filename = filename
	return &cp
}

// WithToken records the offending token and returns the error.
func (e *AssemblyError) WithToken(token string) *AssemblyError {
	e.Token = token
	return e
}

// New creates an AssemblyError with a formatted message.
func New(code ErrorCode, loc SourceLocation, format string, args ...any) *AssemblyError {
	return &AssemblyError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Location: loc,
	}
}

// UnknownOpcode reports a leaf that is neither a number, a label nor a
// mnemonic in the opcode table.
func UnknownOpcode(token string, loc SourceLocation) *AssemblyError {
	err := New(E2001, loc, "opcode not found: %s", token)
	err.Token = token
	return err
}

// ConstantOverflow reports a numeric literal wider than 32 bytes.
func ConstantOverflow(literal string, loc SourceLocation) *AssemblyError {
	err := New(E2002, loc, "constant integer overflow: %s", literal)
	err.Token = literal
	err.Note = "numeric literals are limited to 32 bytes"
	return err
}

// UnresolvedReference reports a placeholder naming a label that was never
// declared.
func UnresolvedReference(name string, loc SourceLocation) *AssemblyError {
	err := New(E2003, loc, "unresolved reference: %s", name)
	err.Token = name
	return err
}

// DuplicateLabel reports a label declared more than once.
func DuplicateLabel(name string, loc SourceLocation) *AssemblyError {
	err := New(E2004, loc, "label %q redeclared", name)
	err.Token = name
	return err
}

// OffsetOverflow reports an offset that does not fit the resolved operand
// width.
func OffsetOverflow(name string, offset, size int) *AssemblyError {
	err := New(E2005, SourceLocation{}, "offset %d of %s does not fit in %d byte(s)", offset, name, size)
	err.Token = name
	return err
}

// InvalidData reports a data label payload that is not valid hex.
func InvalidData(name string, cause error, loc SourceLocation) *AssemblyError {
	err := New(E2006, loc, "invalid payload for %s: %v", name, cause)
	err.Token = name
	err.Cause = cause
	return err
}
