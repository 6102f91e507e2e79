package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/evmasm"
	"github.com/risor-io/evmasm/bytecode"
	"github.com/risor-io/evmasm/dis"
	"github.com/risor-io/evmasm/internal/bytesutil"
)

func newDisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [hex]",
		Short: "Disassemble EVM bytecode",
		Long: `Disassemble hex encoded EVM bytecode into a table of instructions.

The input may also be the JSON written by "evmasm asm -o json", or, with
--tree, an instruction tree that is assembled first. In both cases the
disassembly shows labels, data segments and jump targets.`,
		Example: `  evmasm dis 0x5b600056
  evmasm dis --tree --file program.yaml
  evmasm asm -o json program.yaml | evmasm dis --stdin`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDis,
	}
	cmd.Flags().StringP("file", "f", "", "read input from a file")
	cmd.Flags().Bool("stdin", false, "read input from stdin")
	cmd.Flags().Bool("tree", false, "treat the input as an instruction tree and assemble it first")
	return cmd
}

func runDis(cmd *cobra.Command, args []string) error {
	data, name, err := getDisInput(cmd, args)
	if err != nil {
		return err
	}
	if viper.GetBool("tree") {
		opts := []evmasm.Option{evmasm.WithFilename(name)}
		if viper.GetBool("legacy-data-offsets") {
			opts = append(opts, evmasm.WithDataLayout(evmasm.DataLayoutLegacy))
		}
		code, err := evmasm.Assemble(cmd.Context(), data, opts...)
		if err != nil {
			return &sourceError{err: err, source: string(data)}
		}
		dis.Print(dis.DisassembleCode(code), cmd.OutOrStdout())
		return nil
	}
	input := strings.TrimSpace(string(data))
	if strings.HasPrefix(input, "{") {
		code, err := bytecode.Unmarshal([]byte(input))
		if err != nil {
			return fmt.Errorf("invalid json input: %w", err)
		}
		dis.Print(dis.DisassembleCode(code), cmd.OutOrStdout())
		return nil
	}
	b, err := bytesutil.DecodeHex(input)
	if err != nil {
		return fmt.Errorf("invalid hex input: %w", err)
	}
	dis.Print(dis.Disassemble(b), cmd.OutOrStdout())
	return nil
}

func getDisInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	sources := 0
	for _, set := range []bool{len(args) > 0, flagChanged(cmd, "file"), flagChanged(cmd, "stdin")} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return nil, "", errors.New("multiple input sources specified")
	}
	switch {
	case len(args) > 0:
		return []byte(args[0]), "<arg>", nil
	case flagChanged(cmd, "file"):
		path := viper.GetString("file")
		data, err := os.ReadFile(path)
		return data, path, err
	case flagChanged(cmd, "stdin"):
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, "<stdin>", err
	}
	return nil, "", errors.New("no input specified")
}
