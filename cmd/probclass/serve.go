package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"probclass/internal/api"
	"probclass/internal/extractor"
	"probclass/internal/modelstore"
	"probclass/internal/names"
	"probclass/internal/store"
	"probclass/internal/trainer"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.ModelDir, 0o755); err != nil {
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

			lookup, err := names.Load(cfg.NamesPath)
			if err != nil {
				return err
			}

			models := modelstore.New(cfg.ModelDir)
			tr := trainer.New(models, db, log)
			opts := trainer.Options{
				TestFraction: cfg.TestFraction,
				Seed:         cfg.Seed,
				VocabSize:    cfg.VocabSize,
			}
			runner := trainer.NewRunner(tr, opts, filepath.Join(cfg.ModelDir, "train.lock"), cfg.JobTTL, log)

			srv := api.NewServer(cfg, db, models, runner, ext, lookup, log)

			httpServer := &http.Server{
				Addr:         ":" + cfg.Port,
				Handler:      srv,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 120 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Graceful shutdown.
			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				log.Info("shutting down...")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				httpServer.Shutdown(shutdownCtx)
			}()

			log.Info("starting probclass", "port", cfg.Port, "extract_mode", cfg.ExtractMode)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}
