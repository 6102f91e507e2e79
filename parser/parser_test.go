package parser

import (
	"context"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risor-io/evmasm/ast"
	"github.com/risor-io/evmasm/errors"
)

func parseString(t *testing.T, src string, opts ...Option) *ast.Program {
	t.Helper()
	program, err := Parse(context.Background(), []byte(src), opts...)
	require.NoError(t, err)
	return program
}

func TestParseClassification(t *testing.T) {
	program := parseString(t, `
- start
- jump
- 0x01
- [main, [1, "bytes:msg:size", stop]]
- ["bytes:msg", ["0xdeadbeef"]]
`)
	require.Equal(t,
		"[start, jump, 0x01, [main, [1, bytes:msg:size, stop]], [bytes:msg, [0xdeadbeef]]]",
		program.String())
	require.Len(t, program.Nodes, 5)

	require.IsType(t, &ast.LabelRef{}, program.Nodes[0])
	require.IsType(t, &ast.Op{}, program.Nodes[1])

	num, ok := program.Nodes[2].(*ast.Number)
	require.True(t, ok)
	require.Equal(t, int64(1), num.Value.Int64())

	block := program.Nodes[3].(*ast.Block)
	require.Len(t, block.Nodes, 1)
	label, ok := block.Nodes[0].(*ast.CodeLabel)
	require.True(t, ok)
	require.Equal(t, "main", label.Name)
	require.Len(t, label.Body.Nodes, 3)
	ref, ok := label.Body.Nodes[1].(*ast.DataRef)
	require.True(t, ok)
	require.Equal(t, "bytes:msg", ref.Label)
	require.Equal(t, ast.DataSize, ref.Field)

	data, ok := program.Nodes[4].(*ast.Block).Nodes[0].(*ast.DataLabel)
	require.True(t, ok)
	require.Equal(t, "bytes:msg", data.Name)
	require.Equal(t, "0xdeadbeef", data.Payload)
}

func TestParsePositions(t *testing.T) {
	program := parseString(t, "- start\n- jump\n- [main, [stop]]\n", WithFilename("prog.yaml"))
	pos := program.Nodes[0].Pos()
	require.Equal(t, 1, pos.Line)
	require.Equal(t, 3, pos.Column)
	require.Equal(t, "prog.yaml", pos.File)
	require.Equal(t, 2, program.Nodes[1].Pos().Line)

	label := program.Nodes[2].(*ast.Block).Nodes[0].(*ast.CodeLabel)
	require.Equal(t, 3, label.Pos().Line)
	require.Equal(t, 4, label.Pos().Column)
}

func TestParseJSON(t *testing.T) {
	program := parseString(t, `["label_a", ["label_a", "jump"]]`)
	require.Len(t, program.Nodes, 1)
	label, ok := program.Nodes[0].(*ast.CodeLabel)
	require.True(t, ok)
	require.Equal(t, "label_a", label.Name)
	require.IsType(t, &ast.LabelRef{}, label.Body.Nodes[0])
	require.IsType(t, &ast.Op{}, label.Body.Nodes[1])
}

func TestDeclarationOnlyAtScopeStart(t *testing.T) {
	// "a" is first but is followed by a leaf, "b" is followed by a sequence
	// but is not first. Neither declares anything.
	program := parseString(t, `[a, b, [x]]`)
	require.IsType(t, &ast.LabelRef{}, program.Nodes[0])
	require.IsType(t, &ast.LabelRef{}, program.Nodes[1])
	block := program.Nodes[2].(*ast.Block)
	require.IsType(t, &ast.LabelRef{}, block.Nodes[0])
}

func TestMnemonicNeverDeclares(t *testing.T) {
	program := parseString(t, `[stop, [jumpdest]]`)
	require.IsType(t, &ast.Op{}, program.Nodes[0])
	require.IsType(t, &ast.Block{}, program.Nodes[1])
}

func TestLeafClassification(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"JUMP", &ast.Op{}},
		{"Push1", &ast.Op{}},
		{"frob", &ast.LabelRef{}},
		{"frob!", &ast.LabelRef{}},
		{"1st", &ast.LabelRef{}},
		{"0xzz", &ast.LabelRef{}},
		{"push33", &ast.LabelRef{}},
		{"bytes:msg:ptr", &ast.DataRef{}},
		{"bytes:msg", &ast.LabelRef{}},
		{"bytes::ptr", &ast.LabelRef{}},
		{"255", &ast.Number{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			program, err := ParseValue(context.Background(), []any{"stop", tt.input})
			require.NoError(t, err)
			require.IsType(t, tt.want, program.Nodes[1])
		})
	}
}

func TestLabelNamesAnyNonNumericString(t *testing.T) {
	for _, name := range []string{"loop!", "fn(uint256)", "label#1", "1st", "two words", "-"} {
		t.Run(name, func(t *testing.T) {
			program, err := ParseValue(context.Background(), []any{name, []any{name, "jump"}})
			require.NoError(t, err)
			require.Len(t, program.Nodes, 1)
			label, ok := program.Nodes[0].(*ast.CodeLabel)
			require.True(t, ok)
			require.Equal(t, name, label.Name)
			ref, ok := label.Body.Nodes[0].(*ast.LabelRef)
			require.True(t, ok)
			require.Equal(t, name, ref.Name)
		})
	}
}

func TestParseAlias(t *testing.T) {
	program := parseString(t, "- &halt stop\n- *halt\n")
	require.Equal(t, "[stop, stop]", program.String())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.ErrorCode
	}{
		{"boolean", `[true]`, errors.E1001},
		{"null", `[null]`, errors.E1001},
		{"mapping", `[{a: 1}]`, errors.E1001},
		{"float", `[1.5]`, errors.E1002},
		{"negative", `["-5"]`, errors.E1002},
		{"exponent", `["1e3"]`, errors.E1002},
		{"fraction string", `[".5"]`, errors.E1002},
		{"two payloads", `["bytes:d", ["0x01", "0x02"]]`, errors.E1003},
		{"nested payload", `["bytes:d", [["0x01"]]]`, errors.E1003},
		{"empty payload block", `["bytes:d", []]`, errors.E1003},
		{"empty token", `[""]`, errors.E1004},
		{"mapping root", `{a: 1}`, errors.E1005},
		{"scalar root", `stop`, errors.E1005},
		{"empty document", ``, errors.E1005},
		{"syntax", `[1, [`, errors.E1005},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(context.Background(), []byte(tt.input))
			require.Error(t, err)
			require.ErrorIs(t, err, tt.code)
		})
	}
}

func TestParseErrorLocation(t *testing.T) {
	_, err := Parse(context.Background(), []byte("- stop\n- true\n"), WithFilename("prog.yaml"))
	require.Error(t, err)
	var asmErr *errors.AssemblyError
	require.ErrorAs(t, err, &asmErr)
	require.Equal(t, "prog.yaml", asmErr.Location.Filename)
	require.Equal(t, 2, asmErr.Location.Line)
	require.Equal(t, 3, asmErr.Location.Column)
	require.Equal(t, "decode error: unsupported node: boolean true (prog.yaml:2:3)", err.Error())
}

func TestParseValue(t *testing.T) {
	big256 := new(big.Int).Lsh(big.NewInt(1), 255)
	program, err := ParseValue(context.Background(), []any{
		"label_a",
		[]any{"label_a", "jump", 7, uint8(8), int64(9), big256, json.Number("10"), float64(11)},
	})
	require.NoError(t, err)
	label := program.Nodes[0].(*ast.CodeLabel)
	var values []string
	for _, n := range label.Body.Nodes[2:] {
		values = append(values, n.(*ast.Number).Value.String())
	}
	require.Equal(t, []string{"7", "8", "9", big256.String(), "10", "11"}, values)
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		name  string
		value any
		code  errors.ErrorCode
	}{
		{"fraction", []any{1.5}, errors.E1002},
		{"negative", []any{-1}, errors.E1002},
		{"bool", []any{false}, errors.E1001},
		{"nil", []any{nil}, errors.E1001},
		{"map", []any{map[string]any{}}, errors.E1001},
		{"root", "stop", errors.E1005},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseValue(context.Background(), tt.value)
			require.ErrorIs(t, err, tt.code)
		})
	}
}

func TestParseCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Parse(ctx, []byte(`[stop]`))
	require.ErrorIs(t, err, context.Canceled)
}

func TestMaxDepth(t *testing.T) {
	src := strings.Repeat("[", 10) + "stop" + strings.Repeat("]", 10)
	_, err := Parse(context.Background(), []byte(src), WithMaxDepth(5))
	require.ErrorIs(t, err, errors.E1005)
	require.Contains(t, err.Error(), "maximum nesting depth")

	_, err = Parse(context.Background(), []byte(src))
	require.NoError(t, err)
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"0", "0", true},
		{"255", "255", true},
		{"010", "10", true},
		{"+5", "5", true},
		{"0x10", "16", true},
		{"0XfF", "255", true},
		{"0o17", "15", true},
		{"0b101", "5", true},
		{"0x" + strings.Repeat("ff", 33), new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 264), big.NewInt(1)).String(), true},
		{"-1", "", false},
		{"0x", "", false},
		{"0x-1", "", false},
		{"1.5", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, ok := ParseInteger(tt.input)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, v.String())
			}
		})
	}
}
