package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"probclass/internal/config"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "probclass",
		Short:         "Classify textbook problems into (book, chapter, section)",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newServeCommand(),
		newPreprocessCommand(),
		newTrainCommand(),
		newPredictCommand(),
	)
	return root
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func loadConfig() (config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
