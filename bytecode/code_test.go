package bytecode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleCode(b []byte, segments []Segment) *Code {
	return NewCode(CodeParams{
		Bytes:    b,
		Width:    2,
		Segments: segments,
		Filename: "prog.yaml",
		Layout:   "payload",
	})
}

func sampleSegments() []Segment {
	return []Segment{
		{Kind: InitialSegment, Offset: 0, Start: 0, Size: 3},
		{Kind: DataSegment, Name: "bytes:d", Offset: 3, Start: 3, Size: 3},
		{Kind: CodeSegment, Name: "tail", Offset: 6, Start: 6, Size: 2},
	}
}

func TestNewCodeImmutability(t *testing.T) {
	b := []byte{0x60, 0x06, 0x56, 0xaa, 0xbb, 0xcc, 0x5b, 0x00}
	segments := sampleSegments()
	code := sampleCode(b, segments)

	b[0] = 0xff
	segments[0].Size = 99

	require.Equal(t, byte(0x60), code.ByteAt(0))
	require.Equal(t, 3, code.SegmentAt(0).Size)

	out := code.Bytes()
	out[1] = 0xff
	require.Equal(t, byte(0x06), code.ByteAt(1))
}

func TestCodeAccessors(t *testing.T) {
	code := sampleCode([]byte{0x60, 0x06, 0x56, 0xaa, 0xbb, 0xcc, 0x5b, 0x00}, sampleSegments())
	require.Equal(t, "0x600656aabbcc5b00", code.Hex())
	require.Equal(t, 8, code.Len())
	require.Equal(t, 2, code.Width())
	require.Equal(t, "prog.yaml", code.Filename())
	require.Equal(t, "payload", code.Layout())
	require.Equal(t, 3, code.SegmentCount())

	offset, ok := code.LabelOffset("tail")
	require.True(t, ok)
	require.Equal(t, 6, offset)

	offset, ok = code.LabelOffset("bytes:d")
	require.True(t, ok)
	require.Equal(t, 3, offset)

	_, ok = code.LabelOffset("missing")
	require.False(t, ok)
	_, ok = code.LabelOffset("")
	require.False(t, ok)

	seg, ok := code.SegmentContaining(4)
	require.True(t, ok)
	require.Equal(t, "bytes:d", seg.Name)
	_, ok = code.SegmentContaining(8)
	require.False(t, ok)
}

func TestStats(t *testing.T) {
	code := sampleCode([]byte{0x60, 0x06, 0x56, 0xaa, 0xbb, 0xcc, 0x5b, 0x00}, sampleSegments())
	require.Equal(t, Stats{
		Bytes:      8,
		CodeBytes:  5,
		DataBytes:  3,
		CodeLabels: 1,
		DataLabels: 1,
		Width:      2,
	}, code.Stats())
}

func TestSegmentKindString(t *testing.T) {
	require.Equal(t, "initial", InitialSegment.String())
	require.Equal(t, "code", CodeSegment.String())
	require.Equal(t, "data", DataSegment.String())
	require.Equal(t, "SegmentKind(7)", SegmentKind(7).String())
}

func TestMarshal(t *testing.T) {
	code := sampleCode([]byte{0x60, 0x06, 0x56, 0xaa, 0xbb, 0xcc, 0x5b, 0x00}, sampleSegments())
	data, err := Marshal(code)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"hex": "0x600656aabbcc5b00",
		"width": 2,
		"layout": "payload",
		"filename": "prog.yaml",
		"segments": [
			{"kind": "initial", "offset": 0, "start": 0, "size": 3},
			{"kind": "data", "name": "bytes:d", "offset": 3, "start": 3, "size": 3},
			{"kind": "code", "name": "tail", "offset": 6, "start": 6, "size": 2}
		]
	}`, string(data))

	restored, err := Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, code.Hex(), restored.Hex())
	require.Equal(t, code.SegmentAt(2), restored.SegmentAt(2))
}

func TestUnmarshalErrors(t *testing.T) {
	_, err := Unmarshal([]byte(`{"hex": "0xzz", "segments": []}`))
	require.ErrorContains(t, err, "invalid hex")

	_, err = Unmarshal([]byte(`{"hex": "0x00", "segments": [{"kind": "bss"}]}`))
	require.ErrorContains(t, err, "unknown segment kind")

	_, err = Unmarshal([]byte(`{"hex": "0x00", "segments": [{"kind": "code", "start": 0, "size": 4}]}`))
	require.ErrorContains(t, err, "out of range")
}
