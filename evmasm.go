// Package evmasm assembles nested instruction trees into EVM bytecode.
//
// The input is a YAML or JSON sequence (or the equivalent Go value) whose
// leaves are opcode mnemonics, numeric literals and label names:
//
//	code, err := evmasm.Assemble(ctx, []byte(`["label_a", ["label_a", "jump"]]`))
//	if err != nil {
//	    return err
//	}
//	fmt.Println(code.Hex()) // 0x5b600056
//
// See package assembler for how labels are laid out and resolved.
package evmasm

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/risor-io/evmasm/assembler"
	"github.com/risor-io/evmasm/ast"
	"github.com/risor-io/evmasm/bytecode"
	"github.com/risor-io/evmasm/parser"
)

// DataLayout controls how data segments advance label offsets.
type DataLayout = assembler.DataLayout

const (
	DataLayoutPayload = assembler.DataLayoutPayload
	DataLayoutLegacy  = assembler.DataLayoutLegacy
)

// Option configures parsing and assembly.
type Option func(*options)

type options struct {
	filename string
	logger   *zerolog.Logger
	layout   DataLayout
	maxDepth int
}

func collectOptions(opts ...Option) *options {
	o := &options{layout: DataLayoutPayload}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) parserOpts() []parser.Option {
	var opts []parser.Option
	if o.filename != "" {
		opts = append(opts, parser.WithFilename(o.filename))
	}
	if o.maxDepth > 0 {
		opts = append(opts, parser.WithMaxDepth(o.maxDepth))
	}
	return opts
}

func (o *options) assemblerOpts() []assembler.Option {
	opts := []assembler.Option{assembler.WithDataLayout(o.layout)}
	if o.filename != "" {
		opts = append(opts, assembler.WithFilename(o.filename))
	}
	if o.logger != nil {
		opts = append(opts, assembler.WithLogger(*o.logger))
	}
	return opts
}

// WithFilename sets the filename used in error messages and recorded on the
// result.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithLogger sets a logger for assembly stage events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger
	}
}

// WithDataLayout selects how data segments advance label offsets. The
// default is DataLayoutPayload.
func WithDataLayout(layout DataLayout) Option {
	return func(o *options) {
		o.layout = layout
	}
}

// WithMaxDepth limits the nesting depth of the input.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// Parse decodes a YAML or JSON instruction tree.
func Parse(ctx context.Context, source []byte, opts ...Option) (*ast.Program, error) {
	return parser.Parse(ctx, source, collectOptions(opts...).parserOpts()...)
}

// Assemble parses and assembles a YAML or JSON instruction tree. The
// returned Code is immutable and safe for concurrent use.
func Assemble(ctx context.Context, source []byte, opts ...Option) (*bytecode.Code, error) {
	o := collectOptions(opts...)
	program, err := parser.Parse(ctx, source, o.parserOpts()...)
	if err != nil {
		return nil, err
	}
	return assembler.Assemble(program, o.assemblerOpts()...)
}

// AssembleTree assembles an instruction tree given as a Go value, such as
// []any{"label_a", []any{"label_a", "jump"}}.
func AssembleTree(ctx context.Context, tree any, opts ...Option) (*bytecode.Code, error) {
	o := collectOptions(opts...)
	program, err := parser.ParseValue(ctx, tree, o.parserOpts()...)
	if err != nil {
		return nil, err
	}
	return assembler.Assemble(program, o.assemblerOpts()...)
}

// AssembleHex assembles an instruction tree given as a Go value and returns
// the 0x-prefixed hex encoding of the result.
func AssembleHex(ctx context.Context, tree any, opts ...Option) (string, error) {
	code, err := AssembleTree(ctx, tree, opts...)
	if err != nil {
		return "", err
	}
	return code.Hex(), nil
}
