package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/evmasm"
	"github.com/risor-io/evmasm/bytecode"
	"github.com/risor-io/evmasm/dis"
)

var outputFormats = []string{"hex", "json", "text"}

func newAsmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asm [files...]",
		Short: "Assemble YAML or JSON instruction trees",
		Long: `Assemble YAML or JSON instruction trees into EVM bytecode.

Each file is assembled independently. Failures are reported together after
every file has been processed.`,
		Example: `  evmasm asm program.yaml
  evmasm asm -c '["label_a", ["label_a", "jump"]]'
  cat program.json | evmasm asm --stdin -o json`,
		RunE: runAsm,
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "hex", "output format (hex, json, text)")
	cmd.Flags().String("out-file", "", "write the raw bytecode to a file")
	cmd.Flags().Bool("legacy-data-offsets", false, "advance offsets past data by size-of-length plus one")
	_ = cmd.RegisterFlagCompletionFunc("output", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return outputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func runAsm(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(viper.GetString("output"))
	if !isOutputFormat(format) {
		return fmt.Errorf("unknown output format: %s", format)
	}
	inputs, err := getInputs(cmd, args, 0)
	if err != nil {
		return err
	}
	outFile := viper.GetString("out-file")
	if outFile != "" && len(inputs) > 1 {
		return fmt.Errorf("--out-file requires a single input")
	}
	logger, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	opts := []evmasm.Option{evmasm.WithLogger(logger)}
	if viper.GetBool("legacy-data-offsets") {
		opts = append(opts, evmasm.WithDataLayout(evmasm.DataLayoutLegacy))
	}

	var result *multierror.Error
	for _, in := range inputs {
		code, err := evmasm.Assemble(cmd.Context(), in.data, append(opts, evmasm.WithFilename(in.name))...)
		if err != nil {
			result = multierror.Append(result, &sourceError{err: err, source: string(in.data)})
			continue
		}
		logger.Info().Str("input", in.name).Int("bytes", code.Len()).Int("width", code.Width()).Msg("assembled")
		var prefix string
		if len(inputs) > 1 {
			prefix = in.name
		}
		if err := writeCode(cmd.OutOrStdout(), code, format, prefix); err != nil {
			return err
		}
		if outFile != "" {
			if err := os.WriteFile(outFile, code.Bytes(), 0o644); err != nil {
				return err
			}
		}
	}
	return result.ErrorOrNil()
}

func isOutputFormat(format string) bool {
	for _, f := range outputFormats {
		if f == format {
			return true
		}
	}
	return false
}

func writeCode(w io.Writer, code *bytecode.Code, format, prefix string) error {
	switch format {
	case "json":
		data, err := getOutputJSON(code)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text":
		if prefix != "" {
			fmt.Fprintln(w, prefix)
		}
		dis.PrintLayout(code, w)
		return nil
	}
	if prefix != "" {
		_, err := fmt.Fprintf(w, "%s: %s\n", prefix, code.Hex())
		return err
	}
	_, err := fmt.Fprintln(w, code.Hex())
	return err
}
