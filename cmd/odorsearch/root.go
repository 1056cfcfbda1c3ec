package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/odorsearch"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	logLevel  string
	logFormat string
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:           "odorsearch",
		Short:         "Search odor recipes that reproduce a target measurement",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "text", "log format (text, json)")

	rootCmd.AddCommand(
		newSimulateCmd(g),
		newReplayCmd(),
		newReportsCmd(),
	)
	return rootCmd
}

func (g *globalFlags) logger() (*odorsearch.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(g.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", g.logLevel, err)
	}

	switch strings.ToLower(g.logFormat) {
	case "text":
		return odorsearch.NewTextLogger(level), nil
	case "json":
		return odorsearch.NewJSONLogger(level), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", g.logFormat)
	}
}
