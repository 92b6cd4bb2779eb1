// Package preprocess extracts text from raw XML problem documents and
// materializes it as .txt files plus store records.
package preprocess

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"probclass/internal/corpus"
	"probclass/internal/extractor"
	"probclass/internal/label"
)

// RecordWriter persists one extracted record. Satisfied by *store.Store.
type RecordWriter interface {
	UpsertProblem(ctx context.Context, rec corpus.Record) error
}

// Result reports the outcome for one file. Per-file errors are collected
// by callers; a bad file never aborts a batch.
type Result struct {
	File   string `json:"file"`
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Processor runs extraction for files under DataDir, mirroring .txt
// output under OutputDir. Store is optional.
type Processor struct {
	DataDir   string
	OutputDir string
	Extractor extractor.Extractor
	Store     RecordWriter
}

// File processes one document identified by its relative path.
func (p *Processor) File(ctx context.Context, rel string) Result {
	fail := func(msg string) Result {
		return Result{File: rel, Status: "error", Error: msg}
	}

	src, err := joinLocal(p.DataDir, rel)
	if err != nil {
		return fail(err.Error())
	}
	data, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		return fail("file not found")
	}
	if err != nil {
		return fail("read file: " + err.Error())
	}

	text, err := p.Extractor.Extract(data)
	if err != nil {
		return fail(err.Error())
	}
	if strings.TrimSpace(text) == "" {
		return fail("document contains no text")
	}

	lbl, problemID, err := label.FromPath(rel)
	if err != nil {
		return fail(err.Error())
	}

	relTxt := strings.TrimSuffix(rel, filepath.Ext(rel)) + ".txt"
	dst, err := joinLocal(p.OutputDir, relTxt)
	if err != nil {
		return fail(err.Error())
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fail("create output directory: " + err.Error())
	}
	if err := os.WriteFile(dst, []byte(text), 0o644); err != nil {
		return fail("write output: " + err.Error())
	}

	if p.Store != nil {
		rec := corpus.Record{ProblemID: problemID, Label: lbl, Text: text}
		if err := p.Store.UpsertProblem(ctx, rec); err != nil {
			return fail("store record: " + err.Error())
		}
	}

	return Result{File: rel, Status: "processed", Output: filepath.ToSlash(relTxt)}
}

// All processes every .xml file under DataDir.
func (p *Processor) All(ctx context.Context) ([]Result, error) {
	var results []Result
	err := filepath.WalkDir(p.DataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".xml") {
			return nil
		}
		rel, err := filepath.Rel(p.DataDir, path)
		if err != nil {
			return err
		}
		results = append(results, p.File(ctx, filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk data dir: %w", err)
	}
	return results, nil
}

// joinLocal joins a relative path onto base, rejecting anything that
// would escape it.
func joinLocal(base, rel string) (string, error) {
	rel = filepath.FromSlash(strings.TrimSpace(rel))
	if rel == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(rel) || !filepath.IsLocal(rel) {
		return "", fmt.Errorf("path escapes base directory: %s", rel)
	}
	return filepath.Join(base, rel), nil
}
