package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// input is one document to process.
type input struct {
	name string
	data []byte
}

// getInputs determines what is to be processed. There are three
// possibilities:
//  1. --code <code>
//  2. --stdin (read from stdin)
//  3. paths as args
func getInputs(cmd *cobra.Command, args []string, maxFiles int) ([]input, error) {
	codeFlagSet := flagChanged(cmd, "code")
	stdinFlagSet := flagChanged(cmd, "stdin")
	pathSupplied := len(args) > 0
	if pathSupplied && (codeFlagSet || stdinFlagSet) {
		return nil, errors.New("multiple input sources specified")
	} else if codeFlagSet && stdinFlagSet {
		return nil, errors.New("multiple input sources specified")
	}
	if maxFiles > 0 && len(args) > maxFiles {
		return nil, errors.New("too many input files")
	}
	switch {
	case stdinFlagSet:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return []input{{name: "<stdin>", data: data}}, nil
	case codeFlagSet:
		code, _ := cmd.Flags().GetString("code")
		return []input{{name: "<code>", data: []byte(code)}}, nil
	case pathSupplied:
		inputs := make([]input, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, input{name: path, data: data})
		}
		return inputs, nil
	}
	if !isTerminalIn() {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		return []input{{name: "<stdin>", data: data}}, nil
	}
	return nil, errors.New("no input specified")
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	return f != nil && f.Changed
}

func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "input given on the command line")
	cmd.Flags().Bool("stdin", false, "read input from stdin")
}
