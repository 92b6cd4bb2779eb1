// Package modelstore persists the fitted (vectorizer, classifier) pair.
//
// The two artifacts are always written and read together: each training
// run writes them into a fresh run directory, then publishes the run by
// atomically renaming a pointer file. A concurrent load therefore never
// observes a classifier from one run paired with a vectorizer from
// another, and a failed run never disturbs the published pair.
package modelstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"probclass/internal/mlearn"
)

const (
	vectorizerFile = "vectorizer.json"
	classifierFile = "classifier.json"
	currentFile    = "current"
	runPrefix      = "run-"
)

// ErrModelNotFound is returned when prediction is requested before any
// training run has published a model.
var ErrModelNotFound = errors.New("no trained model found: train first")

// Store manages model artifacts under a single directory.
type Store struct {
	dir string
}

// New returns a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Save writes the fitted pair and atomically publishes it, replacing any
// prior pair. Stale run directories from earlier trainings are pruned
// best-effort after publish.
func (s *Store) Save(vec *mlearn.TFIDF, clf *mlearn.Multinomial) error {
	runName := runPrefix + uuid.NewString()
	runDir := filepath.Join(s.dir, runName)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("create run dir: %w", err)
	}

	if err := writeJSON(filepath.Join(runDir, vectorizerFile), vec); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(runDir, classifierFile), clf); err != nil {
		return err
	}

	// Publish: rename is atomic, so readers see the old run or the new
	// one, never a mix.
	tmp := filepath.Join(s.dir, currentFile+".tmp")
	if err := os.WriteFile(tmp, []byte(runName), 0o644); err != nil {
		return fmt.Errorf("write pointer: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, currentFile)); err != nil {
		return fmt.Errorf("publish model: %w", err)
	}

	s.prune(runName)
	return nil
}

// Load reads the currently published pair.
func (s *Store) Load() (*mlearn.TFIDF, *mlearn.Multinomial, error) {
	ptr, err := os.ReadFile(filepath.Join(s.dir, currentFile))
	if os.IsNotExist(err) {
		return nil, nil, ErrModelNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read pointer: %w", err)
	}
	runDir := filepath.Join(s.dir, strings.TrimSpace(string(ptr)))

	var vec mlearn.TFIDF
	if err := readJSON(filepath.Join(runDir, vectorizerFile), &vec); err != nil {
		return nil, nil, err
	}
	var clf mlearn.Multinomial
	if err := readJSON(filepath.Join(runDir, classifierFile), &clf); err != nil {
		return nil, nil, err
	}
	return &vec, &clf, nil
}

// Exists reports whether a model has been published.
func (s *Store) Exists() bool {
	_, err := os.Stat(filepath.Join(s.dir, currentFile))
	return err == nil
}

func (s *Store) prune(keep string) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), runPrefix) && e.Name() != keep {
			os.RemoveAll(filepath.Join(s.dir, e.Name()))
		}
	}
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}
