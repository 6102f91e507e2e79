package assembler

import (
	"github.com/hashicorp/go-multierror"

	"github.com/risor-io/evmasm/bytecode"
	"github.com/risor-io/evmasm/errors"
	"github.com/risor-io/evmasm/internal/bytesutil"
	"github.com/risor-io/evmasm/op"
)

// patch encodes every reference using the layout and concatenates the
// segments. All unresolved references are reported together.
func patch(p *program, l *layout) ([]byte, []bytecode.Segment, error) {
	var (
		out      = make([]byte, 0, l.size)
		segments = make([]bytecode.Segment, 0, len(p.order))
		result   *multierror.Error
	)
	for _, seg := range p.order {
		start := len(out)
		if seg.kind == bytecode.DataSegment {
			out = append(out, seg.data...)
		} else {
			for _, pc := range seg.pieces {
				encoded, err := p.encode(pc, l)
				if err != nil {
					if !isUnresolved(err) {
						return nil, nil, err
					}
					result = multierror.Append(result, err)
					continue
				}
				out = append(out, encoded...)
			}
		}
		segments = append(segments, bytecode.Segment{
			Kind:   seg.kind,
			Name:   seg.name,
			Offset: l.offset(seg),
			Start:  start,
			Size:   len(out) - start,
		})
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, nil, err
	}
	return out, segments, nil
}

func (p *program) encode(pc piece, l *layout) ([]byte, error) {
	switch pc.kind {
	case pieceLabel:
		target, ok := p.labels[pc.name]
		if !ok {
			err := errors.UnresolvedReference(pc.name, pc.pos.Location())
			if _, isData := p.data[pc.name]; isData {
				err.Note = "data labels are referenced as " + pc.name + ":ptr or " + pc.name + ":size"
			}
			return nil, err
		}
		return pushOffset(pc.name, l.offset(target), l.width)
	case pieceDataPtr:
		target, ok := p.data[pc.name]
		if !ok {
			return nil, errors.UnresolvedReference(pc.name+":ptr", pc.pos.Location())
		}
		return pushOffset(pc.name, l.offset(target), l.width)
	case pieceDataSize:
		target, ok := p.data[pc.name]
		if !ok {
			return nil, errors.UnresolvedReference(pc.name+":size", pc.pos.Location())
		}
		operand, _ := bytesutil.PutUint(uint64(len(target.data)), target.sizeOfLength)
		return append([]byte{byte(op.Push(target.sizeOfLength))}, operand...), nil
	}
	return pc.bytes, nil
}

// pushOffset encodes a push of offset into width-1 operand bytes.
func pushOffset(name string, offset, width int) ([]byte, error) {
	operand, ok := bytesutil.PutUint(uint64(offset), width-1)
	if !ok {
		return nil, errors.OffsetOverflow(name, offset, width-1)
	}
	return append([]byte{byte(op.Push(width - 1))}, operand...), nil
}

func isUnresolved(err error) bool {
	e, ok := err.(*errors.AssemblyError)
	return ok && e.Code == errors.E2003
}
