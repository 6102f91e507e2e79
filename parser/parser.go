// Package parser decodes instruction trees and classifies their elements into
// the tagged nodes of package ast.
//
// Input is a YAML or JSON document whose root is a sequence, or the
// equivalent native Go value. Every leaf is a numeric literal, a mnemonic or,
// failing both, a label name; nested sequences are blocks. A label name in
// the first position of a scope that is immediately followed by a sequence is
// a declaration. All other label names are references.
package parser

import (
	"context"

	"gopkg.in/yaml.v3"

	"github.com/risor-io/evmasm/ast"
	"github.com/risor-io/evmasm/errors"
	"github.com/risor-io/evmasm/internal/token"
)

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in positions and errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// Parser turns decoded elements into an ast.Program. A Parser should be
// used for a single document.
type Parser struct {
	// the Context supplied in the Parse() call
	ctx      context.Context
	filename string
	depth    int
	maxDepth int
}

// New returns a Parser configured with the given options.
func New(options ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// Parse decodes a YAML or JSON document and returns its instruction tree.
func Parse(ctx context.Context, source []byte, options ...Option) (*ast.Program, error) {
	return New(options...).Parse(ctx, source)
}

// ParseValue classifies a native Go value. The value must be a []any whose
// leaves are strings, integers, *big.Int or json.Number values.
func ParseValue(ctx context.Context, v any, options ...Option) (*ast.Program, error) {
	return New(options...).ParseValue(ctx, v)
}

// Parse decodes a YAML or JSON document and returns its instruction tree.
func (p *Parser) Parse(ctx context.Context, source []byte) (*ast.Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(source, &doc); err != nil {
		e := errors.New(errors.E1005, p.pos(0, 0).Location(), "invalid document: %v", err)
		e.Cause = err
		return nil, e
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New(errors.E1005, p.pos(0, 0).Location(), "invalid document: empty")
	}
	root, err := p.fromNode(doc.Content[0])
	if err != nil {
		return nil, err
	}
	return p.program(ctx, root)
}

// ParseValue classifies a native Go value.
func (p *Parser) ParseValue(ctx context.Context, v any) (*ast.Program, error) {
	root, err := p.fromValue(v)
	if err != nil {
		return nil, err
	}
	return p.program(ctx, root)
}

func (p *Parser) program(ctx context.Context, root element) (*ast.Program, error) {
	if root.kind != kindSequence {
		return nil, errors.New(errors.E1005, root.pos.Location(),
			"invalid document: root must be a sequence, got %s", root.describe())
	}
	p.ctx = ctx
	p.depth = 0
	nodes, err := p.parseScope(root.items)
	if err != nil {
		return nil, err
	}
	return &ast.Program{Nodes: nodes}, nil
}

func (p *Parser) pos(line, column int) token.Position {
	return token.Position{Line: line, Column: column, File: p.filename}
}
