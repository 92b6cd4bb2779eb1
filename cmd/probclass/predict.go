package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"probclass/internal/extractor"
	"probclass/internal/modelstore"
	"probclass/internal/names"
	"probclass/internal/predictor"
)

func newPredictCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "predict <file.xml>",
		Short: "Predict the (book, chapter, section) for one XML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			ext, err := extractor.ForMode(cfg.ExtractMode)
			if err != nil {
				return err
			}
			text, err := ext.Extract(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			lookup, err := names.Load(cfg.NamesPath)
			if err != nil {
				return err
			}

			predicted, err := predictor.New(modelstore.New(cfg.ModelDir)).Predict(text)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]string{
				"book_id":    predicted.Book,
				"chapter_id": predicted.Chapter,
				"section_id": predicted.Section,
				"book":       lookup.BookName(predicted.Book),
				"chapter":    lookup.ChapterName(predicted.Chapter),
				"section":    lookup.SectionName(predicted.Section),
			})
		},
	}
}
