// Package dis supports analysis of assembled bytecode by disassembling it.
// This works with the opcodes defined in the `op` package and, when
// available, the segment layout recorded in a `bytecode.Code`.
package dis

import (
	"fmt"
	"io"
	"math/big"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/risor-io/evmasm/bytecode"
	"github.com/risor-io/evmasm/internal/bytesutil"
	"github.com/risor-io/evmasm/op"
)

// DataName is the pseudo-mnemonic printed for a data segment.
const DataName = "DATA"

// Instruction represents a single opcode and its immediate operand, or a
// run of raw data.
type Instruction struct {
	Offset  int
	Opcode  op.Code
	Name    string
	Operand []byte
	// Truncated is set when a push immediate runs past the end of the code.
	Truncated bool
	// Data is set when the instruction is a data segment's payload.
	Data bool
	// Label is the name of the segment starting at this offset.
	Label string
	// Annotation describes the operand, e.g. the label a jump targets.
	Annotation string
}

// Len returns the number of bytes the instruction occupies.
func (i Instruction) Len() int {
	if i.Data {
		return len(i.Operand)
	}
	return 1 + len(i.Operand)
}

// Disassemble decodes b with a linear sweep. Every byte is read as an
// opcode unless it belongs to a push immediate.
func Disassemble(b []byte) []Instruction {
	return sweep(b, 0, len(b), nil)
}

// DisassembleCode decodes an assembled program using its segment layout.
// Data segments are shown as a single DATA instruction, segment starts are
// labeled, and pushes feeding a jump are annotated with the target label.
func DisassembleCode(code *bytecode.Code) []Instruction {
	b := code.Bytes()
	targets := map[int]string{}
	for i := 0; i < code.SegmentCount(); i++ {
		if seg := code.SegmentAt(i); seg.Kind == bytecode.CodeSegment {
			targets[seg.Offset] = seg.Name
		}
	}
	var instructions []Instruction
	for i := 0; i < code.SegmentCount(); i++ {
		seg := code.SegmentAt(i)
		if seg.Size == 0 {
			continue
		}
		if seg.Kind == bytecode.DataSegment {
			instructions = append(instructions, Instruction{
				Offset:  seg.Start,
				Name:    DataName,
				Operand: b[seg.Start:seg.End()],
				Data:    true,
				Label:   seg.Name,
			})
			continue
		}
		decoded := sweep(b, seg.Start, seg.End(), targets)
		if seg.Kind == bytecode.CodeSegment && len(decoded) > 0 {
			decoded[0].Label = seg.Name
		}
		instructions = append(instructions, decoded...)
	}
	return instructions
}

func sweep(b []byte, start, end int, targets map[int]string) []Instruction {
	var instructions []Instruction
	for pc := start; pc < end; {
		code := op.Code(b[pc])
		instr := Instruction{Offset: pc, Opcode: code, Name: code.String()}
		if n := code.Immediate(); n > 0 {
			last := pc + 1 + n
			if last > end {
				last = end
				instr.Truncated = true
			}
			instr.Operand = b[pc+1 : last]
		}
		instructions = append(instructions, instr)
		pc += instr.Len()
	}
	if targets != nil {
		annotateJumps(instructions, targets)
	}
	return instructions
}

func annotateJumps(instructions []Instruction, targets map[int]string) {
	for i := 0; i+1 < len(instructions); i++ {
		instr := &instructions[i]
		next := instructions[i+1].Opcode
		if !instr.Opcode.IsPush() || len(instr.Operand) == 0 || (next != op.Jump && next != op.JumpI) {
			continue
		}
		offset := new(big.Int).SetBytes(instr.Operand)
		if !offset.IsInt64() {
			continue
		}
		if name, ok := targets[int(offset.Int64())]; ok {
			instr.Annotation = "label " + name
		}
	}
}

var (
	bold    = color.New(color.Bold).SprintFunc()
	yellow  = color.New(color.FgYellow).SprintFunc()
	green   = color.New(color.FgGreen).SprintFunc()
	cyan    = color.New(color.FgHiCyan).SprintFunc()
	magenta = color.New(color.FgMagenta).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
)

// Print a table of the given instructions to the given writer. Colors
// follow color.NoColor.
func Print(instructions []Instruction, writer io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(writer)
	t.AppendHeader(table.Row{"OFFSET", "LABEL", "OPCODE", "OPERAND", "INFO"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 2, AlignHeader: text.AlignCenter},
		{Number: 3, AlignHeader: text.AlignCenter},
		{Number: 4, AlignHeader: text.AlignCenter},
		{Number: 5, AlignHeader: text.AlignCenter},
	})
	for _, instr := range instructions {
		t.AppendRow(table.Row{
			fmt.Sprintf("%d", instr.Offset),
			magenta(instr.Label),
			bold(instr.Name),
			formatOperand(instr),
			info(instr),
		})
	}
	t.Render()
}

func formatOperand(instr Instruction) string {
	if len(instr.Operand) == 0 {
		return ""
	}
	s := bytesutil.AddHexPrefix(instr.Operand)
	if instr.Data {
		if len(s) > 66 {
			s = s[:63] + "..."
		}
		return green(s)
	}
	return yellow(s)
}

func info(instr Instruction) string {
	switch {
	case instr.Truncated:
		return red("truncated immediate")
	case instr.Data:
		return fmt.Sprintf("%d bytes", len(instr.Operand))
	case instr.Annotation != "":
		return cyan(instr.Annotation)
	}
	return ""
}
