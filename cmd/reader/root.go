// ABOUTME: Root cobra command and shared helpers for the reader CLI
// ABOUTME: Loads .env files and configuration before building the app for a command

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"reader-assist/pkg/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reader",
		Short:         "Reader overlay companion: API server, summaries and markdown export",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringSlice("env-file", nil, "Load environment variables from these files (default .env)")
	root.PersistentFlags().String("log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(),
		newSummarizeCmd(),
		newExportCmd(),
		newSettingsCmd(),
	)
	return root
}

// withApp loads configuration, builds the app and closes it after fn
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	envFiles, _ := cmd.Flags().GetStringSlice("env-file")
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	a, err := newApp(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	runErr := fn(a)
	if err := a.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("shut down: %w", err)
	}
	return runErr
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func validateOutput(output string) error {
	if output != "" && output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}
	return nil
}
