package bytecode

import (
	"encoding/json"
	"fmt"

	"github.com/risor-io/evmasm/internal/bytesutil"
)

type codeState struct {
	Hex      string         `json:"hex"`
	Width    int            `json:"width"`
	Layout   string         `json:"layout,omitempty"`
	Filename string         `json:"filename,omitempty"`
	Segments []segmentState `json:"segments"`
}

type segmentState struct {
	Kind   string `json:"kind"`
	Name   string `json:"name,omitempty"`
	Offset int    `json:"offset"`
	Start  int    `json:"start"`
	Size   int    `json:"size"`
}

var kindsByName = map[string]SegmentKind{
	InitialSegment.String(): InitialSegment,
	CodeSegment.String():    CodeSegment,
	DataSegment.String():    DataSegment,
}

// Marshal converts a Code object into a JSON representation.
func Marshal(code *Code) ([]byte, error) {
	return json.Marshal(stateFromCode(code))
}

// Unmarshal converts a JSON representation into a Code object.
func Unmarshal(data []byte) (*Code, error) {
	var state codeState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return codeFromState(&state)
}

// MarshalJSON implements json.Marshaler.
func (c *Code) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateFromCode(c))
}

func stateFromCode(c *Code) *codeState {
	state := &codeState{
		Hex:      c.Hex(),
		Width:    c.width,
		Layout:   c.layout,
		Filename: c.filename,
		Segments: make([]segmentState, 0, len(c.segments)),
	}
	for _, s := range c.segments {
		state.Segments = append(state.Segments, segmentState{
			Kind:   s.Kind.String(),
			Name:   s.Name,
			Offset: s.Offset,
			Start:  s.Start,
			Size:   s.Size,
		})
	}
	return state
}

func codeFromState(state *codeState) (*Code, error) {
	b, err := bytesutil.DecodeHex(state.Hex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex: %w", err)
	}
	segments := make([]Segment, 0, len(state.Segments))
	for _, s := range state.Segments {
		kind, ok := kindsByName[s.Kind]
		if !ok {
			return nil, fmt.Errorf("unknown segment kind: %q", s.Kind)
		}
		if s.Start < 0 || s.Size < 0 || s.Start+s.Size > len(b) {
			return nil, fmt.Errorf("segment %q out of range", s.Name)
		}
		segments = append(segments, Segment{
			Kind:   kind,
			Name:   s.Name,
			Offset: s.Offset,
			Start:  s.Start,
			Size:   s.Size,
		})
	}
	return NewCode(CodeParams{
		Bytes:    b,
		Width:    state.Width,
		Segments: segments,
		Filename: state.Filename,
		Layout:   state.Layout,
	}), nil
}
