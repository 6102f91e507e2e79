package bytecode

import "fmt"

// SegmentKind identifies what a segment of the byte stream holds.
type SegmentKind int

const (
	// InitialSegment holds code that appears before the first code label.
	// It is always the first segment, even when empty.
	InitialSegment SegmentKind = iota
	// CodeSegment holds a code label's body, starting with JUMPDEST.
	CodeSegment
	// DataSegment holds a data label's raw payload.
	DataSegment
)

func (k SegmentKind) String() string {
	switch k {
	case InitialSegment:
		return "initial"
	case CodeSegment:
		return "code"
	case DataSegment:
		return "data"
	}
	return fmt.Sprintf("SegmentKind(%d)", int(k))
}

// Segment describes one segment of the assembled stream.
type Segment struct {
	Kind SegmentKind
	// Name is the label name. It is empty for the initial segment.
	Name string
	// Offset is the address recorded for the label: the jump destination of
	// a code label, or the pointer of a data label.
	Offset int
	// Start is the index of the segment's first byte in the emitted stream.
	// It equals Offset unless the legacy data layout was used.
	Start int
	// Size is the number of bytes the segment contributed to the stream.
	Size int
}

// End returns the index just past the segment's last emitted byte.
func (s Segment) End() int {
	return s.Start + s.Size
}

// Contains reports whether the stream index i falls inside the segment.
func (s Segment) Contains(i int) bool {
	return i >= s.Start && i < s.End()
}
