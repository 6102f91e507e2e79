package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

var (
	styleKind     = color.New(color.FgHiRed, color.Bold)
	styleCode     = color.New(color.FgHiBlack)
	styleLocation = color.New(color.FgCyan)
	styleGutter   = color.New(color.FgHiBlack)
	styleCaret    = color.New(color.FgHiRed)
	styleNote     = color.New(color.FgHiBlue)
)

// FormattedError is an error prepared for display.
type FormattedError struct {
	Code     ErrorCode
	Kind     string // "decode error" or "assemble error"
	Message  string
	Filename string
	Line     int
	Column   int
	// Width is the number of columns to underline. Zero underlines one.
	Width int
	// SourceLine is the text of the line the error points at, if known.
	SourceLine string
	Note       string
}

// WithSource attaches the line of source the error points at. Errors
// without a line, or pointing past the end of source, are returned as is.
func (err *FormattedError) WithSource(source string) *FormattedError {
	if err.Line <= 0 || source == "" {
		return err
	}
	lines := strings.Split(source, "\n")
	if err.Line > len(lines) {
		return err
	}
	err.SourceLine = strings.TrimRight(lines[err.Line-1], "\r")
	return err
}

func (err *FormattedError) location() string {
	switch {
	case err.Filename != "" && err.Line > 0:
		return fmt.Sprintf("%s:%d:%d", err.Filename, err.Line, err.Column)
	case err.Filename != "":
		return err.Filename
	case err.Line > 0:
		return fmt.Sprintf("%d:%d", err.Line, err.Column)
	}
	return ""
}

// Formatter renders errors in a compiler-style layout:
//
//	assemble error[E2001]: opcode not found: frob
//	  --> prog.yaml:2:5
//	   |
//	 2 | - [frob]
//	   |     ^^^^
type Formatter struct {
	UseColor bool
}

// NewFormatter creates a formatter, optionally emitting ANSI colors.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

func (f *Formatter) paint(style *color.Color, s string) string {
	if !f.UseColor {
		return s
	}
	return style.Sprint(s)
}

// Format renders a single error.
func (f *Formatter) Format(err *FormattedError) string {
	return f.format(err, "")
}

// FormatMultiple renders each error numbered as "1/n" and ends with a count.
// A single error is rendered as by Format.
func (f *Formatter) FormatMultiple(errs []*FormattedError) string {
	switch len(errs) {
	case 0:
		return ""
	case 1:
		return f.Format(errs[0])
	}
	parts := make([]string, 0, len(errs)+1)
	for i, err := range errs {
		parts = append(parts, f.format(err, fmt.Sprintf("%d/%d", i+1, len(errs))))
	}
	parts = append(parts, f.paint(styleKind, fmt.Sprintf("found %d errors", len(errs)))+"\n")
	return strings.Join(parts, "\n")
}

func (f *Formatter) format(err *FormattedError, counter string) string {
	var b strings.Builder

	kind := err.Kind
	if kind == "" {
		kind = "error"
	}
	tag := string(err.Code)
	if counter != "" {
		tag = counter
	}
	b.WriteString(f.paint(styleKind, kind))
	if tag != "" {
		b.WriteString(f.paint(styleCode, "["+tag+"]"))
	}
	b.WriteString(": ")
	b.WriteString(err.Message)
	b.WriteString("\n")

	gutter := 2
	if n := len(strconv.Itoa(err.Line)); n > gutter {
		gutter = n
	}
	pad := strings.Repeat(" ", gutter)

	if loc := err.location(); loc != "" {
		fmt.Fprintf(&b, "%s%s %s\n", pad, f.paint(styleLocation, "-->"), f.paint(styleLocation, loc))
	}

	if err.SourceLine != "" {
		bar := f.paint(styleGutter, " |")
		fmt.Fprintf(&b, "%s%s\n", pad, bar)
		fmt.Fprintf(&b, "%s%s %s\n", f.paint(styleGutter, fmt.Sprintf("%*d", gutter, err.Line)), bar, err.SourceLine)
		if err.Column > 0 {
			width := max(err.Width, 1)
			carets := f.paint(styleCaret, strings.Repeat("^", width))
			fmt.Fprintf(&b, "%s%s %s%s\n", pad, bar, strings.Repeat(" ", err.Column-1), carets)
		}
	}

	if err.Note != "" {
		fmt.Fprintf(&b, "%s%s %s%s\n", pad, f.paint(styleGutter, " ="), f.paint(styleNote, "note: "), err.Note)
	}
	return b.String()
}
