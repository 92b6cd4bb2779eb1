package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"probclass/internal/corpus"
	"probclass/internal/modelstore"
	"probclass/internal/store"
	"probclass/internal/trainer"
)

func newTrainCommand() *cobra.Command {
	var (
		source string
		book   string
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a model from the store or the extracted-text tree and print the summary",
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

			var built corpus.Result
			switch source {
			case "store":
				built, err = corpus.FromStore(cmd.Context(), db, book)
			case "tree":
				built, err = corpus.FromDir(cfg.OutputDir, cfg.MaxCorpusDocs)
			default:
				return fmt.Errorf("unknown corpus source %q (want store or tree)", source)
			}
			if err != nil {
				return err
			}
			if built.Skipped > 0 {
				log.Warn("skipped records during corpus build", "skipped", built.Skipped)
			}

			if err := os.MkdirAll(cfg.ModelDir, 0o755); err != nil {
				return err
			}

			// Same lock the server's runner uses, so a CLI train never
			// races an HTTP-triggered run on the same model directory.
			lock := flock.New(filepath.Join(cfg.ModelDir, "train.lock"))
			if err := lock.Lock(); err != nil {
				return fmt.Errorf("acquire training lock: %w", err)
			}
			defer lock.Unlock()

			tr := trainer.New(modelstore.New(cfg.ModelDir), db, log)
			summary, err := tr.Train(cmd.Context(), built.Records, trainer.Options{
				TestFraction: cfg.TestFraction,
				Seed:         cfg.Seed,
				VocabSize:    cfg.VocabSize,
			})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
	cmd.Flags().StringVar(&source, "source", "store", "corpus source: store or tree")
	cmd.Flags().StringVar(&book, "book", "", "limit the store corpus to one book id")
	return cmd
}
