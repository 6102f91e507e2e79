package assembler

import "github.com/risor-io/evmasm/bytecode"

// layout records the offset assigned to each segment for a given width.
type layout struct {
	width   int
	offsets map[*segment]int
	size    int // final cursor position
}

func (l *layout) offset(seg *segment) int {
	return l.offsets[seg]
}

// annotate walks segment order once and records each segment's offset: the
// jump destination for code, the pointer for data.
func annotate(p *program, width int, dataLayout DataLayout) *layout {
	l := &layout{width: width, offsets: make(map[*segment]int, len(p.order))}
	cursor := 0
	for _, seg := range p.order {
		l.offsets[seg] = cursor
		if seg.kind == bytecode.DataSegment {
			cursor += dataLayout.span(seg)
			continue
		}
		for _, pc := range seg.pieces {
			cursor += p.refSize(pc, width)
		}
	}
	l.size = cursor
	return l
}
