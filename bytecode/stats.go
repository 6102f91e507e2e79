package bytecode

// Stats contains statistics about an assembled program.
type Stats struct {
	// Bytes is the total length of the stream.
	Bytes int

	// CodeBytes counts bytes emitted by the initial and code segments.
	CodeBytes int

	// DataBytes counts raw payload bytes.
	DataBytes int

	// CodeLabels is the number of declared code labels.
	CodeLabels int

	// DataLabels is the number of declared data labels.
	DataLabels int

	// Width is the resolved jump-target operand width.
	Width int
}
