package parser

import (
	"math/big"
	"strings"

	"github.com/risor-io/evmasm/ast"
	"github.com/risor-io/evmasm/errors"
	"github.com/risor-io/evmasm/internal/token"
)

// parseScope classifies the elements of one sequence. Only the first element
// of a scope can declare a label, and only when the element after it is a
// sequence.
func (p *Parser) parseScope(items []element) ([]ast.Node, error) {
	if err := p.ctx.Err(); err != nil {
		return nil, err
	}
	nodes := make([]ast.Node, 0, len(items))
	for i := 0; i < len(items); i++ {
		item := items[i]
		if i == 0 && len(items) > 1 && items[1].kind == kindSequence && isDeclaration(item) {
			decl, err := p.parseDeclaration(item, items[1])
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, decl)
			i++
			continue
		}
		node, err := p.parseElement(item)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func isDeclaration(e element) bool {
	return e.kind == kindScalar && token.Classify(e.text) == token.IDENT
}

func (p *Parser) parseDeclaration(name, body element) (ast.Node, error) {
	if token.IsDataLabel(name.text) {
		if len(body.items) != 1 || !isScalar(body.items[0]) {
			return nil, errors.New(errors.E1003, body.pos.Location(),
				"malformed data label %s: expected exactly one hex payload", name.text).
				WithToken(name.text)
		}
		payload := body.items[0]
		return &ast.DataLabel{
			NamePos:    name.pos,
			Name:       name.text,
			PayloadPos: payload.pos,
			Payload:    payload.text,
		}, nil
	}
	block, err := p.parseBlock(body)
	if err != nil {
		return nil, err
	}
	return &ast.CodeLabel{NamePos: name.pos, Name: name.text, Body: block}, nil
}

func isScalar(e element) bool {
	return e.kind == kindScalar || e.kind == kindNumber
}

func (p *Parser) parseBlock(e element) (*ast.Block, error) {
	nodes, err := p.parseScope(e.items)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Start: e.pos, Nodes: nodes}, nil
}

func (p *Parser) parseElement(e element) (ast.Node, error) {
	switch e.kind {
	case kindSequence:
		return p.parseBlock(e)
	case kindUnsupported:
		return nil, errors.New(errors.E1001, e.pos.Location(), "unsupported node: %s", e.what)
	case kindNumber:
		return parseNumber(e)
	}
	switch token.Classify(e.text) {
	case token.NUMBER:
		return parseNumber(e)
	case token.MNEMONIC:
		return &ast.Op{TokPos: e.pos, Name: e.text}, nil
	case token.IDENT:
		return parseReference(e), nil
	}
	return nil, errors.New(errors.E1004, e.pos.Location(), "empty token")
}

func parseReference(e element) ast.Node {
	if token.IsDataLabel(e.text) {
		if label, ok := strings.CutSuffix(e.text, token.PtrSuffix); ok && token.IsDataLabel(label) {
			return &ast.DataRef{TokPos: e.pos, Label: label, Field: ast.DataPtr}
		}
		if label, ok := strings.CutSuffix(e.text, token.SizeSuffix); ok && token.IsDataLabel(label) {
			return &ast.DataRef{TokPos: e.pos, Label: label, Field: ast.DataSize}
		}
	}
	return &ast.LabelRef{TokPos: e.pos, Name: e.text}
}

func parseNumber(e element) (ast.Node, error) {
	value, ok := ParseInteger(e.text)
	if !ok {
		return nil, errors.New(errors.E1002, e.pos.Location(),
			"invalid number literal: %s", e.text).WithToken(e.text)
	}
	return &ast.Number{TokPos: e.pos, Literal: e.text, Value: value}, nil
}

// ParseInteger parses a non-negative integer literal. Literals prefixed with
// 0x, 0o or 0b use that base; everything else is decimal, so a leading zero
// does not mean octal.
func ParseInteger(literal string) (*big.Int, bool) {
	s, base := literal, 10
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 10 {
			s = s[2:]
		}
	}
	if s == "" || s[0] == '-' || (s[0] == '+' && base != 10) {
		return nil, false
	}
	v, ok := new(big.Int).SetString(s, base)
	if !ok || v.Sign() < 0 {
		return nil, false
	}
	return v, true
}
