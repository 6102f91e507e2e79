// Package assembler turns an instruction tree into a flat byte stream.
//
// # Stages
//
// Assembly runs five stages, each taking the previous stage's value:
//
//  1. linearize: walk the tree and build ordered segments of pieces. A piece
//     is concrete bytes or a reference whose encoding depends on addresses.
//  2. merge: put the code that precedes the first label at the front as the
//     initial segment.
//  3. resolveWidth: choose one operand width for all jump targets and data
//     pointers. Width 2 (PUSH1) is used when the program measured with short
//     references is at most 256 bytes, width 3 (PUSH2) otherwise.
//  4. annotate: assign every code label its jump destination and every data
//     label its pointer.
//  5. patch: encode the references and concatenate the segments.
//
// # Labels
//
// A code label begins with JUMPDEST and receives all code that follows it
// until the next code label, including code after its own block ends. Data
// labels hold a raw payload that is emitted verbatim; code refers to them
// through their :ptr and :size references.
package assembler

import (
	stderrors "errors"

	"github.com/hashicorp/go-multierror"

	"github.com/risor-io/evmasm/ast"
	"github.com/risor-io/evmasm/bytecode"
	"github.com/risor-io/evmasm/errors"
)

// Assemble assembles the program and returns the immutable result.
func Assemble(root *ast.Program, options ...Option) (*bytecode.Code, error) {
	cfg := newConfig(options)
	log := cfg.logger.With().Str("component", "assembler").Logger()

	p, err := linearize(root)
	if err != nil {
		return nil, cfg.annotateError(err)
	}
	log.Debug().Str("stage", "linearize").
		Int("segments", len(p.order)).
		Int("code_labels", len(p.labels)).
		Int("data_labels", len(p.data)).
		Msg("linearized")

	p = merge(p)
	log.Debug().Str("stage", "merge").
		Int("initial_pieces", len(p.initial.pieces)).
		Msg("merged initial segment")

	width := resolveWidth(p, cfg.layout)
	log.Debug().Str("stage", "width").
		Int("minimum_size", minimumSize(p, cfg.layout)).
		Int("width", width).
		Msg("resolved width")

	l := annotate(p, width, cfg.layout)
	log.Debug().Str("stage", "annotate").
		Str("layout", cfg.layout.String()).
		Int("size", l.size).
		Msg("annotated offsets")

	out, segments, err := patch(p, l)
	if err != nil {
		return nil, cfg.annotateError(err)
	}
	log.Debug().Str("stage", "patch").Int("bytes", len(out)).Msg("patched references")

	return bytecode.NewCode(bytecode.CodeParams{
		Bytes:    out,
		Width:    width,
		Segments: segments,
		Filename: cfg.filename,
		Layout:   cfg.layout.String(),
	}), nil
}

// annotateError fills in the configured filename on errors that have none.
func (cfg *config) annotateError(err error) error {
	if cfg.filename == "" {
		return err
	}
	var merr *multierror.Error
	if stderrors.As(err, &merr) {
		var result *multierror.Error
		for _, e := range merr.Errors {
			result = multierror.Append(result, cfg.annotateError(e))
		}
		return result.ErrorOrNil()
	}
	var asmErr *errors.AssemblyError
	if stderrors.As(err, &asmErr) && asmErr.Location.Filename == "" {
		return asmErr.WithFilename(cfg.filename)
	}
	return err
}
