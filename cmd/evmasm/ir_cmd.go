package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/evmasm"
	"github.com/risor-io/evmasm/ast"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	ContinueOnMethod:        true,
}

func newIRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ir [file]",
		Short: "Show the classified instruction tree",
		Long: `Parse an instruction tree and print the nodes the assembler sees: code
labels, data labels, references, numbers and opcodes.`,
		RunE: runIR,
	}
	addInputFlags(cmd)
	cmd.Flags().String("format", "dump", "output format (dump, flow, labels)")
	return cmd
}

func runIR(cmd *cobra.Command, args []string) error {
	inputs, err := getInputs(cmd, args, 1)
	if err != nil {
		return err
	}
	in := inputs[0]
	program, err := evmasm.Parse(cmd.Context(), in.data, evmasm.WithFilename(in.name))
	if err != nil {
		return &sourceError{err: err, source: string(in.data)}
	}
	switch format := strings.ToLower(viper.GetString("format")); format {
	case "dump":
		dumpConfig.Fdump(cmd.OutOrStdout(), program)
	case "flow":
		fmt.Fprintln(cmd.OutOrStdout(), program.String())
	case "labels":
		printLabels(cmd.OutOrStdout(), program)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	return nil
}

// printLabels lists every label declaration and reference in source order.
func printLabels(w io.Writer, program *ast.Program) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"POSITION", "KIND", "NAME"})
	for node := range ast.Preorder(program) {
		switch n := node.(type) {
		case *ast.CodeLabel:
			t.AppendRow(table.Row{n.Pos(), "code label", n.Name})
		case *ast.DataLabel:
			t.AppendRow(table.Row{n.Pos(), "data label", n.Name})
		case *ast.LabelRef:
			t.AppendRow(table.Row{n.Pos(), "reference", n.Name})
		case *ast.DataRef:
			t.AppendRow(table.Row{n.Pos(), "data reference", n.Label + n.Field.String()})
		}
	}
	t.Render()
}
