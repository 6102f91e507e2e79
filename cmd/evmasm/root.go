package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultConfigName = ".evmasm.yaml"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "evmasm",
		Short:         "Assemble nested instruction trees into EVM bytecode",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := initConfig(); err != nil {
				return err
			}
			processGlobalFlags(cmd)
			return nil
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("evmasm %s (%s, %s)\n", version, commit, date))

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/"+defaultConfigName+")")
	flags.Bool("no-color", false, "disable colored output")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newAsmCmd(),
		newDisCmd(),
		newIRCmd(),
		newOpsCmd(),
		newVersionCmd(),
	)
	return root
}

// initConfig reads the config file and environment. A missing default
// config file is not an error; a missing explicit one is.
func initConfig() error {
	viper.SetEnvPrefix("EVMASM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if path := viper.GetString("config"); path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return err
		}
		viper.SetConfigFile(expanded)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		return nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return nil
	}
	viper.SetConfigFile(filepath.Join(home, defaultConfigName))
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags(cmd *cobra.Command) {
	if viper.GetBool("no-color") || !isTerminal(cmd.OutOrStdout()) {
		color.NoColor = true
	}
}
