// Package bytecode provides the immutable result of an assembly.
//
// A [Code] holds the assembled byte stream, the operand width chosen for
// jump targets and data pointers, and the layout of every segment in the
// stream. Once built by [NewCode] it cannot change: the constructor copies
// its inputs, fields are unexported and accessors hand out copies. A Code
// may be shared freely between goroutines.
//
// Segments are addressed by index or by label name:
//
//	for i := 0; i < code.SegmentCount(); i++ {
//	    seg := code.SegmentAt(i)
//	    fmt.Println(seg.Kind, seg.Name, seg.Offset, seg.Size)
//	}
//
// [Marshal] and [Unmarshal] convert a Code to and from JSON.
package bytecode
