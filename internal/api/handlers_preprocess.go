package api

import (
	"encoding/json"
	"net/http"

	"probclass/internal/preprocess"
)

type preprocessRequest struct {
	Files []string `json:"files"`
}

// handlePreprocess extracts text from the named XML files, writes each
// as a .txt under the output directory mirroring the source path, and
// upserts the record into the store. Per-file errors are collected; one
// bad file never aborts the batch.
func (s *Server) handlePreprocess(w http.ResponseWriter, r *http.Request) {
	var req preprocessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Files) == 0 {
		jsonError(w, "no files selected for processing", http.StatusBadRequest)
		return
	}

	proc := &preprocess.Processor{
		DataDir:   s.cfg.DataDir,
		OutputDir: s.cfg.OutputDir,
		Extractor: s.extractor,
	}
	if s.store != nil {
		proc.Store = s.store
	}

	results := make([]preprocess.Result, 0, len(req.Files))
	processed := 0
	for _, f := range req.Files {
		res := proc.File(r.Context(), f)
		if res.Status == "processed" {
			processed++
		}
		results = append(results, res)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results":   results,
		"processed": processed,
		"failed":    len(results) - processed,
	})
}
