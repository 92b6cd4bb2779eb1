package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"probclass/internal/corpus"
	"probclass/internal/trainer"
)

type trainRequest struct {
	Source string `json:"source"` // "store" (default) or "tree"
	Book   string `json:"book"`   // optional filter, store source only
}

// handleTrain starts an asynchronous training job and returns a poll URL.
// Training replaces the published model pair wholesale; the runner holds
// the model-directory lock for the duration.
func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	var req trainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Source == "" {
		req.Source = "store"
	}

	var fn func(ctx context.Context) (corpus.Result, error)
	switch req.Source {
	case "store":
		if s.store == nil {
			jsonError(w, "no store configured", http.StatusBadRequest)
			return
		}
		book := req.Book
		fn = func(ctx context.Context) (corpus.Result, error) {
			return corpus.FromStore(ctx, s.store, book)
		}
	case "tree":
		fn = func(ctx context.Context) (corpus.Result, error) {
			return corpus.FromDir(s.cfg.OutputDir, s.cfg.MaxCorpusDocs)
		}
	default:
		jsonError(w, fmt.Sprintf("unknown corpus source %q", req.Source), http.StatusBadRequest)
		return
	}

	job := s.runner.Start(req.Source, fn)
	s.metrics.trainings.WithLabelValues("started").Inc()

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"status":   job.Snapshot().Status,
		"poll_url": "/api/train/" + job.ID,
	})
}

// handleTrainStatus reports an in-flight or finished training job;
// completed jobs include the summary.
func (s *Server) handleTrainStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.runner.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

// handleListOutcomes returns the test-time prediction log from the
// latest training run.
func (s *Server) handleListOutcomes(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		jsonError(w, "no store configured", http.StatusBadRequest)
		return
	}
	outcomes, err := s.store.ListOutcomes(r.Context())
	if err != nil {
		jsonError(w, "list outcomes: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if outcomes == nil {
		outcomes = []trainer.Outcome{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcomes": outcomes})
}
