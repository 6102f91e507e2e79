package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSourceLocation_String(t *testing.T) {
	tests := []struct {
		name     string
		loc      SourceLocation
		expected string
	}{
		{
			name:     "with filename",
			loc:      SourceLocation{Filename: "main.yaml", Line: 10, Column: 5},
			expected: "main.yaml:10:5",
		},
		{
			name:     "without filename",
			loc:      SourceLocation{Line: 10, Column: 5},
			expected: "10:5",
		},
		{
			name:     "zero location",
			loc:      SourceLocation{},
			expected: "0:0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.loc.String())
		})
	}
}

func TestErrorCodeCategory(t *testing.T) {
	require.Equal(t, "decode", E1002.Category())
	require.Equal(t, "assemble", E2001.Category())
	require.Equal(t, "unknown", ErrorCode("X").Category())
	require.Equal(t, "unresolved reference", E2003.Description())
	require.Equal(t, "unknown error", ErrorCode("E9999").Description())
}

func TestAssemblyErrorMessage(t *testing.T) {
	err := UnknownOpcode("frob", SourceLocation{Line: 3, Column: 7})
	require.Equal(t, "assemble error: opcode not found: frob (3:7)", err.Error())
	require.Equal(t, "frob", err.Token)

	err = ConstantOverflow("0x01", SourceLocation{})
	require.Equal(t, "assemble error: constant integer overflow: 0x01", err.Error())

	err = UnresolvedReference("loop", SourceLocation{}).WithFilename("prog.yaml")
	require.Equal(t, "assemble error: unresolved reference: loop (prog.yaml)", err.Error())
}

func TestAssemblyErrorIs(t *testing.T) {
	err := DuplicateLabel("main", SourceLocation{Line: 1, Column: 2})
	require.True(t, stderrors.Is(err, ErrDuplicateLabel))
	require.False(t, stderrors.Is(err, ErrUnknownOpcode))

	wrapped := fmt.Errorf("assembling: %w", err)
	require.True(t, stderrors.Is(wrapped, ErrDuplicateLabel))

	var target *AssemblyError
	require.True(t, stderrors.As(wrapped, &target))
	require.Equal(t, "main", target.Token)
}

func TestInvalidDataUnwrap(t *testing.T) {
	cause := stderrors.New("bad hex")
	err := InvalidData("bytes:x", cause, SourceLocation{})
	require.True(t, stderrors.Is(err, cause))
	require.True(t, stderrors.Is(err, ErrInvalidData))
}

func TestFormatter(t *testing.T) {
	err := UnknownOpcode("frob", SourceLocation{Filename: "prog.yaml", Line: 2, Column: 5})
	formatted := err.ToFormatted().WithSource("- main\n- [frob]\n")
	out := NewFormatter(false).Format(formatted)
	expected := strings.Join([]string{
		"assemble error[E2001]: opcode not found: frob",
		"  --> prog.yaml:2:5",
		"   |",
		" 2 | - [frob]",
		"   |     ^^^^",
		"",
	}, "\n")
	require.Equal(t, expected, out)
}

func TestFormatterNote(t *testing.T) {
	err := ConstantOverflow("0x1", SourceLocation{})
	out := NewFormatter(false).Format(err.ToFormatted())
	require.Contains(t, out, "assemble error[E2002]: constant integer overflow: 0x1")
	require.Contains(t, out, "= note: numeric literals are limited to 32 bytes")
}

func TestFormatMultiple(t *testing.T) {
	f := NewFormatter(false)
	require.Equal(t, "", f.FormatMultiple(nil))
	out := f.FormatMultiple([]*FormattedError{
		UnresolvedReference("a", SourceLocation{}).ToFormatted(),
		UnresolvedReference("b", SourceLocation{}).ToFormatted(),
	})
	require.Contains(t, out, "unresolved reference: a")
	require.Contains(t, out, "unresolved reference: b")
	require.Contains(t, out, "error[1/2]: unresolved reference: a")
	require.Contains(t, out, "error[2/2]: unresolved reference: b")
	require.Contains(t, out, "found 2 errors")
}

func TestFormatterColor(t *testing.T) {
	err := UnknownOpcode("frob", SourceLocation{Line: 1, Column: 3})
	out := NewFormatter(true).Format(err.ToFormatted().WithSource("- frob"))
	require.Contains(t, out, "opcode not found: frob")
	require.Contains(t, out, "- frob")
}

func TestWithSourceOutOfRange(t *testing.T) {
	formatted := UnknownOpcode("x", SourceLocation{Line: 9, Column: 1}).ToFormatted().WithSource("- x")
	require.Equal(t, "", formatted.SourceLine)
	out := NewFormatter(false).Format(formatted)
	require.Equal(t, "assemble error[E2001]: opcode not found: x\n  --> 9:1\n", out)
}
