package assembler

// merge moves the top-level pieces into the initial segment at the front of
// segment order. The initial segment is present even when nothing was
// emitted before the first label.
func merge(p *program) *program {
	p.order = append([]*segment{p.initial}, p.order...)
	p.current = nil
	return p
}
