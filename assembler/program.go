package assembler

import (
	"github.com/risor-io/evmasm/bytecode"
	"github.com/risor-io/evmasm/internal/token"
)

type pieceKind int

const (
	pieceBytes    pieceKind = iota // concrete bytes
	pieceLabel                     // jump destination of a code label
	pieceDataPtr                   // pointer of a data label
	pieceDataSize                  // payload length of a data label
)

// piece is either a run of concrete bytes or a reference that is encoded
// once offsets are known.
type piece struct {
	kind  pieceKind
	bytes []byte
	name  string
	pos   token.Position
}

// segment is the unit of layout. Code segments hold pieces, data segments
// hold the decoded payload.
type segment struct {
	kind   bytecode.SegmentKind
	name   string
	pos    token.Position
	pieces []piece

	data         []byte
	sizeOfLength int
}

func (s *segment) emit(b ...byte) {
	if n := len(s.pieces); n > 0 && s.pieces[n-1].kind == pieceBytes {
		s.pieces[n-1].bytes = append(s.pieces[n-1].bytes, b...)
		return
	}
	s.pieces = append(s.pieces, piece{kind: pieceBytes, bytes: append([]byte(nil), b...)})
}

func (s *segment) reference(p piece) {
	s.pieces = append(s.pieces, p)
}

// program is the intermediate representation shared by the stages. The
// linearizer builds it; later stages only read it.
type program struct {
	// initial collects pieces emitted before any code label opens. The
	// merger moves it to the front of order.
	initial *segment
	// current is the code label receiving pieces, nil while none is open.
	current *segment
	order   []*segment
	labels  map[string]*segment
	data    map[string]*segment
}

func newProgram() *program {
	return &program{
		initial: &segment{kind: bytecode.InitialSegment},
		labels:  map[string]*segment{},
		data:    map[string]*segment{},
	}
}

// target returns the segment receiving emitted pieces.
func (p *program) target() *segment {
	if p.current != nil {
		return p.current
	}
	return p.initial
}

func (p *program) declared(name string) (*segment, bool) {
	if s, ok := p.labels[name]; ok {
		return s, true
	}
	s, ok := p.data[name]
	return s, ok
}

// refSize is the number of bytes a piece occupies once encoded with the
// given operand width.
func (p *program) refSize(pc piece, width int) int {
	switch pc.kind {
	case pieceLabel, pieceDataPtr:
		return width
	case pieceDataSize:
		if d, ok := p.data[pc.name]; ok {
			return d.sizeOfLength + 1
		}
		return 1
	}
	return len(pc.bytes)
}
