package bytecode

func copyBytes(src []byte) []byte {
	if src == nil {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}

func copySegments(src []Segment) []Segment {
	if src == nil {
		return nil
	}
	dst := make([]Segment, len(src))
	copy(dst, src)
	return dst
}
