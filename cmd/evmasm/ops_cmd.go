package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/evmasm/op"
)

func newOpsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List the opcodes understood by the assembler",
		RunE:  runOps,
	}
	cmd.Flags().String("filter", "", "only list mnemonics starting with this prefix")
	return cmd
}

func runOps(cmd *cobra.Command, args []string) error {
	prefix := strings.ToUpper(viper.GetString("filter"))
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"BYTE", "MNEMONIC", "IMMEDIATE"})
	for _, info := range op.Infos() {
		if !strings.HasPrefix(info.Name, prefix) {
			continue
		}
		t.AppendRow(table.Row{fmt.Sprintf("0x%02x", byte(info.Code)), info.Name, info.Immediate})
	}
	t.Render()
	return nil
}
