package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"probclass/internal/extractor"
	"probclass/internal/preprocess"
	"probclass/internal/store"
)

func newPreprocessCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preprocess",
		Short: "Extract text from every XML document under the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			ext, err := extractor.ForMode(cfg.ExtractMode)
			if err != nil {
				return err
			}

			proc := &preprocess.Processor{
				DataDir:   cfg.DataDir,
				OutputDir: cfg.OutputDir,
				Extractor: ext,
				Store:     db,
			}
			results, err := proc.All(cmd.Context())
			if err != nil {
				return err
			}

			processed, failed := 0, 0
			for _, res := range results {
				if res.Status == "processed" {
					processed++
					continue
				}
				failed++
				log.Warn("preprocess failed", "file", res.File, "error", res.Error)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "processed %d, failed %d\n", processed, failed)
			return nil
		},
	}
}
