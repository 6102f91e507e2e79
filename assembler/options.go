package assembler

import (
	"fmt"

	"github.com/rs/zerolog"
)

// DataLayout controls how far a data segment advances the offset cursor.
type DataLayout int

const (
	// DataLayoutPayload advances by the payload length, so every recorded
	// offset equals the number of bytes emitted before it.
	DataLayoutPayload DataLayout = iota

	// DataLayoutLegacy advances by the size-of-length plus one. Labels after
	// a data segment then point at the wrong byte unless the payload happens
	// to be that short. It reproduces bytecode from older toolchains.
	DataLayoutLegacy
)

func (d DataLayout) String() string {
	switch d {
	case DataLayoutPayload:
		return "payload"
	case DataLayoutLegacy:
		return "legacy"
	}
	return fmt.Sprintf("DataLayout(%d)", int(d))
}

// span is the number of offset units a data segment occupies.
func (d DataLayout) span(seg *segment) int {
	if d == DataLayoutLegacy {
		return seg.sizeOfLength + 1
	}
	return len(seg.data)
}

// Option describes a function used to configure an assembly.
type Option func(*config)

type config struct {
	logger   zerolog.Logger
	layout   DataLayout
	filename string
}

func newConfig(options []Option) *config {
	cfg := &config{logger: zerolog.Nop(), layout: DataLayoutPayload}
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

// WithLogger sets the logger that receives one debug event per stage.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithDataLayout selects how data segments advance offsets.
func WithDataLayout(layout DataLayout) Option {
	return func(cfg *config) {
		cfg.layout = layout
	}
}

// WithFilename sets the filename recorded on the result and on errors that
// lack a position.
func WithFilename(filename string) Option {
	return func(cfg *config) {
		cfg.filename = filename
	}
}
