package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"probclass/internal/extractor"
	"probclass/internal/modelstore"
	"probclass/internal/predictor"
)

type predictRequest struct {
	File string `json:"file,omitempty"` // relative path under the data dir
	Text string `json:"text,omitempty"` // raw extracted text
}

// handlePredict classifies a single document, given either a file path
// under the data directory or raw text. The response decomposes the
// predicted composite label and attaches display names from the lookup.
func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.File == "" && req.Text == "" {
		jsonError(w, "either file or text is required", http.StatusBadRequest)
		return
	}

	text := req.Text
	problemID := ""
	if req.File != "" {
		src, err := resolveWithin(s.cfg.DataDir, req.File)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		data, err := os.ReadFile(src)
		if os.IsNotExist(err) {
			jsonError(w, "file not found: "+req.File, http.StatusNotFound)
			return
		}
		if err != nil {
			jsonError(w, "read file: "+err.Error(), http.StatusInternalServerError)
			return
		}

		text, err = s.extractor.Extract(data)
		if err != nil {
			var decodeErr *extractor.DecodeError
			var parseErr *extractor.ParseError
			if errors.As(err, &decodeErr) || errors.As(err, &parseErr) {
				jsonError(w, req.File+": "+err.Error(), http.StatusUnprocessableEntity)
				return
			}
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}

		base := filepath.Base(req.File)
		problemID = strings.TrimSuffix(base, filepath.Ext(base))
		// Prefer the document's own ProblemID field when present.
		if p, err := extractor.ParseProblem(data); err == nil && p.ProblemID != "" {
			problemID = p.ProblemID
		}
	}

	predicted, err := s.predictor.Predict(text)
	if err != nil {
		switch {
		case errors.Is(err, modelstore.ErrModelNotFound):
			s.metrics.predictions.WithLabelValues("no_model").Inc()
			jsonError(w, err.Error(), http.StatusConflict)
		case errors.Is(err, predictor.ErrEmptyInput):
			s.metrics.predictions.WithLabelValues("empty_input").Inc()
			jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			s.metrics.predictions.WithLabelValues("error").Inc()
			jsonError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	s.metrics.predictions.WithLabelValues("ok").Inc()

	writeJSON(w, http.StatusOK, map[string]any{
		"problem_id": problemID,
		"book_id":    predicted.Book,
		"chapter_id": predicted.Chapter,
		"section_id": predicted.Section,
		"book":       s.lookup.BookName(predicted.Book),
		"chapter":    s.lookup.ChapterName(predicted.Chapter),
		"section":    s.lookup.SectionName(predicted.Section),
	})
}
