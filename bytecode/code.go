package bytecode

import (
	"github.com/risor-io/evmasm/internal/bytesutil"
)

// Code is an assembled program. It is immutable after creation and safe for
// concurrent use.
type Code struct {
	bytes    []byte
	width    int
	segments []Segment
	filename string
	layout   string
}

// CodeParams contains parameters for creating a new Code.
type CodeParams struct {
	Bytes    []byte
	Width    int // jump-target operand width, PUSH opcode included
	Segments []Segment
	Filename string
	Layout   string // name of the data layout used for offsets
}

// NewCode creates a new immutable Code from the given parameters.
// Input slices are copied.
func NewCode(params CodeParams) *Code {
	return &Code{
		bytes:    copyBytes(params.Bytes),
		width:    params.Width,
		segments: copySegments(params.Segments),
		filename: params.Filename,
		layout:   params.Layout,
	}
}

// Hex returns the stream as 0x-prefixed lowercase hex.
func (c *Code) Hex() string {
	return bytesutil.AddHexPrefix(c.bytes)
}

// Bytes returns a copy of the assembled stream.
func (c *Code) Bytes() []byte {
	return copyBytes(c.bytes)
}

// Len returns the stream length in bytes.
func (c *Code) Len() int {
	return len(c.bytes)
}

// ByteAt returns the byte at index i.
func (c *Code) ByteAt(i int) byte {
	return c.bytes[i]
}

// Width returns the resolved jump-target operand width, 2 or 3.
func (c *Code) Width() int {
	return c.width
}

// Filename returns the source filename, if known.
func (c *Code) Filename() string {
	return c.filename
}

// Layout returns the name of the data layout used to compute offsets.
func (c *Code) Layout() string {
	return c.layout
}

// SegmentCount returns the number of segments.
func (c *Code) SegmentCount() int {
	return len(c.segments)
}

// SegmentAt returns the segment at the given index, in stream order.
func (c *Code) SegmentAt(index int) Segment {
	return c.segments[index]
}

// Segment returns the segment declared by the named label.
func (c *Code) Segment(name string) (Segment, bool) {
	for _, s := range c.segments {
		if s.Kind != InitialSegment && s.Name == name {
			return s, true
		}
	}
	return Segment{}, false
}

// LabelOffset returns the jump destination of a code label or the pointer
// of a data label.
func (c *Code) LabelOffset(name string) (int, bool) {
	s, ok := c.Segment(name)
	return s.Offset, ok
}

// SegmentContaining returns the segment that emitted the byte at index i.
func (c *Code) SegmentContaining(i int) (Segment, bool) {
	for _, s := range c.segments {
		if s.Contains(i) {
			return s, true
		}
	}
	return Segment{}, false
}

// Stats returns statistics about the assembled program.
func (c *Code) Stats() Stats {
	stats := Stats{Bytes: len(c.bytes), Width: c.width}
	for _, s := range c.segments {
		switch s.Kind {
		case CodeSegment:
			stats.CodeLabels++
			stats.CodeBytes += s.Size
		case DataSegment:
			stats.DataLabels++
			stats.DataBytes += s.Size
		default:
			stats.CodeBytes += s.Size
		}
	}
	return stats
}
