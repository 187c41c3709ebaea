package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pbanos/shrub/internal/config"
)

type rootCmdConfig struct {
	*config.Config
	verbose bool
	noColor bool
	ctx     context.Context
}

// exitError carries the exit code for a failure stage of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func fail(code int, err error) error {
	return &exitError{code, err}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cliParser(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func cliParser(cfg *config.Config) *cobra.Command {
	config := &rootCmdConfig{Config: cfg, ctx: context.Background()}
	rootCmd := &cobra.Command{
		Use:   "shrub",
		Short: "shrub is a tool to perform tree-classification",
		Long:  `A tool to grow classification trees from your data, test them, and use them to make predictions`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.setupLogging()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug information")
	rootCmd.PersistentFlags().BoolVar(&(config.noColor), "no-color", !cfg.Color, "print trees without colors")
	rootCmd.AddCommand(versionCmd(), growCmd(config), predictCmd(config), testCmd(config))
	return rootCmd
}

// Context returns the context commands run with, carrying their logger.
func (rcc *rootCmdConfig) Context() context.Context {
	return rcc.ctx
}
