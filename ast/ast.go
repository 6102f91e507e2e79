// Package ast defines the tagged instruction tree consumed by the assembler.
//
// The parser derives each node's kind from the shape of the input document
// (position in its scope, the shape of the next sibling, the spelling of the
// leaf) so that the assembler never has to.
package ast

import (
	"math/big"
	"strings"

	"github.com/risor-io/evmasm/internal/token"
)

// Node represents a portion of the instruction tree. All nodes have position
// information indicating where they appear in the source document.
type Node interface {
	// Pos returns the position of the first token belonging to the node.
	Pos() token.Position

	// String returns a flow-style representation of the node. Parsing the
	// string again yields an equivalent tree.
	String() string
}

// Program is the root of an instruction tree.
type Program struct {
	Nodes []Node
}

func (p *Program) Pos() token.Position {
	if len(p.Nodes) > 0 {
		return p.Nodes[0].Pos()
	}
	return token.NoPos
}

func (p *Program) String() string { return joinNodes(p.Nodes) }

// Block is a nested sequence. It opens a new scope for label declarations
// but does not change which label receives the emitted code.
type Block struct {
	Start token.Position
	Nodes []Node
}

func (b *Block) Pos() token.Position { return b.Start }
func (b *Block) String() string      { return joinNodes(b.Nodes) }

// CodeLabel declares a jump destination. Its code starts with JUMPDEST.
type CodeLabel struct {
	NamePos token.Position
	Name    string
	Body    *Block
}

func (l *CodeLabel) Pos() token.Position { return l.NamePos }

func (l *CodeLabel) String() string {
	return l.Name + ", " + l.Body.String()
}

// DataLabel declares a raw data segment. Name includes the "bytes:" prefix.
type DataLabel struct {
	NamePos    token.Position
	Name       string
	PayloadPos token.Position
	Payload    string // hex, with or without 0x
}

func (l *DataLabel) Pos() token.Position { return l.NamePos }

func (l *DataLabel) String() string {
	return l.Name + ", [" + l.Payload + "]"
}

// Op is an opcode mnemonic. The name is checked against the opcode table by
// the assembler.
type Op struct {
	TokPos token.Position
	Name   string
}

func (o *Op) Pos() token.Position { return o.TokPos }
func (o *Op) String() string      { return o.Name }

// Number is a non-negative integer literal, assembled as a push.
type Number struct {
	TokPos  token.Position
	Literal string
	Value   *big.Int
}

func (n *Number) Pos() token.Position { return n.TokPos }
func (n *Number) String() string      { return n.Literal }

// LabelRef is a use of a code label: a push of its jump destination.
type LabelRef struct {
	TokPos token.Position
	Name   string
}

func (r *LabelRef) Pos() token.Position { return r.TokPos }
func (r *LabelRef) String() string      { return r.Name }

// DataField selects which property of a data label a DataRef pushes.
type DataField int

const (
	// DataPtr pushes the offset of the data segment.
	DataPtr DataField = iota
	// DataSize pushes the payload length in bytes.
	DataSize
)

// String returns the reference suffix for the field.
func (f DataField) String() string {
	if f == DataSize {
		return token.SizeSuffix
	}
	return token.PtrSuffix
}

// DataRef is a use of a data label's pointer or size.
type DataRef struct {
	TokPos token.Position
	Label  string // full data label name, including "bytes:"
	Field  DataField
}

func (r *DataRef) Pos() token.Position { return r.TokPos }
func (r *DataRef) String() string      { return r.Label + r.Field.String() }

func joinNodes(nodes []Node) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		parts = append(parts, n.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
