package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/risor-io/evmasm/errors"
)

var red = color.New(color.FgRed).SprintFunc()

// isTerminal reports whether w is a terminal. Anything that is not an
// *os.File, such as a test buffer, is not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func isTerminalIn() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printError writes err to w, using the error formatter for assembly errors.
// Aggregates from one input are numbered together; aggregates spanning
// several inputs are printed one error at a time.
func printError(w io.Writer, err error) {
	printErrorWithSource(w, err, "")
}

func printErrorWithSource(w io.Writer, err error, source string) {
	formatter := errors.NewFormatter(!color.NoColor)
	switch e := err.(type) {
	case *sourceError:
		printErrorWithSource(w, e.err, e.source)
		return
	case *multierror.Error:
		if formatted, ok := formatAll(e.Errors, source); ok {
			fmt.Fprint(w, formatter.FormatMultiple(formatted))
			return
		}
		for _, inner := range e.Errors {
			printErrorWithSource(w, inner, source)
		}
		return
	}
	var formattable errors.FormattableError
	if stderrors.As(err, &formattable) {
		fmt.Fprintln(w, formatter.Format(formattable.ToFormatted().WithSource(source)))
		return
	}
	fmt.Fprintln(w, red(err.Error()))
}

func formatAll(errs []error, source string) ([]*errors.FormattedError, bool) {
	formatted := make([]*errors.FormattedError, 0, len(errs))
	for _, err := range errs {
		fe, ok := err.(errors.FormattableError)
		if !ok {
			return nil, false
		}
		formatted = append(formatted, fe.ToFormatted().WithSource(source))
	}
	return formatted, true
}

// sourceError keeps the input next to an error so the formatter can show
// the offending line.
type sourceError struct {
	err    error
	source string
}

func (e *sourceError) Error() string { return e.err.Error() }
func (e *sourceError) Unwrap() error { return e.err }

func getOutputJSON(v any) ([]byte, error) {
	if color.NoColor {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}

// newLogger returns a console logger writing to w at the configured level.
func newLogger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString("log-level")))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}
	output := zerolog.ConsoleWriter{Out: w, NoColor: color.NoColor}
	return zerolog.New(output).Level(level).With().Timestamp().Logger(), nil
}
