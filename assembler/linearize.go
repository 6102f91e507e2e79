package assembler

import (
	"github.com/holiman/uint256"

	"github.com/risor-io/evmasm/ast"
	"github.com/risor-io/evmasm/bytecode"
	"github.com/risor-io/evmasm/errors"
	"github.com/risor-io/evmasm/internal/bytesutil"
	"github.com/risor-io/evmasm/op"
)

// linearize walks the tree in order and builds segments. Address-dependent
// encodings are left as reference pieces.
func linearize(root *ast.Program) (*program, error) {
	p := newProgram()
	for _, node := range root.Nodes {
		if err := p.linearize(node); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *program) linearize(node ast.Node) error {
	switch node := node.(type) {
	case *ast.Block:
		for _, child := range node.Nodes {
			if err := p.linearize(child); err != nil {
				return err
			}
		}
	case *ast.CodeLabel:
		return p.linearizeCodeLabel(node)
	case *ast.DataLabel:
		return p.linearizeDataLabel(node)
	case *ast.LabelRef:
		p.target().reference(piece{kind: pieceLabel, name: node.Name, pos: node.Pos()})
	case *ast.DataRef:
		kind := pieceDataPtr
		if node.Field == ast.DataSize {
			kind = pieceDataSize
		}
		p.target().reference(piece{kind: kind, name: node.Label, pos: node.Pos()})
	case *ast.Number:
		return p.linearizeNumber(node)
	case *ast.Op:
		code, ok := op.Lookup(node.Name)
		if !ok {
			return errors.UnknownOpcode(node.Name, node.Pos().Location())
		}
		p.target().emit(byte(code))
	case *ast.Program:
		for _, child := range node.Nodes {
			if err := p.linearize(child); err != nil {
				return err
			}
		}
	default:
		return errors.New(errors.E1001, node.Pos().Location(), "unsupported node: %T", node)
	}
	return nil
}

func (p *program) linearizeCodeLabel(node *ast.CodeLabel) error {
	if _, exists := p.declared(node.Name); exists {
		return errors.DuplicateLabel(node.Name, node.Pos().Location())
	}
	seg := &segment{kind: bytecode.CodeSegment, name: node.Name, pos: node.Pos()}
	seg.emit(byte(op.JumpDest))
	p.labels[node.Name] = seg
	p.order = append(p.order, seg)
	// The label stays current after its body, until the next one opens.
	p.current = seg
	if node.Body == nil {
		return nil
	}
	return p.linearize(node.Body)
}

func (p *program) linearizeDataLabel(node *ast.DataLabel) error {
	if _, exists := p.declared(node.Name); exists {
		return errors.DuplicateLabel(node.Name, node.Pos().Location())
	}
	payload, err := bytesutil.DecodeHex(node.Payload)
	if err != nil {
		return errors.InvalidData(node.Name, err, node.PayloadPos.Location())
	}
	seg := &segment{
		kind:         bytecode.DataSegment,
		name:         node.Name,
		pos:          node.Pos(),
		data:         payload,
		sizeOfLength: bytesutil.ByteLen(uint64(len(payload))),
	}
	p.data[node.Name] = seg
	p.order = append(p.order, seg)
	return nil
}

func (p *program) linearizeNumber(node *ast.Number) error {
	if node.Value == nil || node.Value.Sign() < 0 {
		return errors.New(errors.E1002, node.Pos().Location(), "invalid number literal: %s", node.Literal)
	}
	value, overflow := uint256.FromBig(node.Value)
	if overflow {
		return errors.ConstantOverflow(node.Literal, node.Pos().Location())
	}
	n := max(value.ByteLen(), 1)
	p.target().emit(byte(op.Push(n)))
	p.target().emit(value.PaddedBytes(n)...)
	return nil
}
