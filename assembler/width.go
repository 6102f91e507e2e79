package assembler

import "github.com/risor-io/evmasm/bytecode"

const (
	// ShortWidth is a PUSH1 and a one byte operand.
	ShortWidth = 2
	// LongWidth is a PUSH2 and a two byte operand.
	LongWidth = 3
	// MaxShortProgram is the largest minimum program size that still gets
	// short jump targets. A one byte operand addresses offsets 0..255.
	MaxShortProgram = 256
)

// resolveWidth picks the operand width for every jump target and data
// pointer. The program is measured as if every such reference were short;
// if that already exceeds MaxShortProgram, all references are long. A short
// program whose referenced targets still do not all fit in one byte, such as
// a pointer to an empty data segment at the very end, is long as well.
func resolveWidth(p *program, layout DataLayout) int {
	if minimumSize(p, layout) > MaxShortProgram {
		return LongWidth
	}
	if !targetsFit(p, annotate(p, ShortWidth, layout)) {
		return LongWidth
	}
	return ShortWidth
}

// minimumSize sums the exact size of every piece with label and pointer
// references counted short. Data segments count at their payload length;
// the legacy layout leaves them out of the estimate, as older toolchains did.
func minimumSize(p *program, layout DataLayout) int {
	total := 0
	for _, seg := range p.order {
		if seg.kind == bytecode.DataSegment {
			if layout != DataLayoutLegacy {
				total += len(seg.data)
			}
			continue
		}
		for _, pc := range seg.pieces {
			total += p.refSize(pc, ShortWidth)
		}
	}
	return total
}

// targetsFit reports whether every resolved label and pointer reference
// addresses an offset the layout's operand width can encode. Unresolved
// references are reported later by patch.
func targetsFit(p *program, l *layout) bool {
	limit := 1 << (8 * (l.width - 1))
	for _, seg := range p.order {
		for _, pc := range seg.pieces {
			var target *segment
			switch pc.kind {
			case pieceLabel:
				target = p.labels[pc.name]
			case pieceDataPtr:
				target = p.data[pc.name]
			}
			if target != nil && l.offset(target) >= limit {
				return false
			}
		}
	}
	return true
}
