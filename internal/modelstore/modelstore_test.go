package modelstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"probclass/internal/mlearn"
)

func fittedPair(t *testing.T) (*mlearn.TFIDF, *mlearn.Multinomial) {
	t.Helper()
	docs := []string{"triangle sides", "circle radius"}
	v := mlearn.NewTFIDF(100)
	v.Fit(docs)
	clf := mlearn.NewMultinomial()
	clf.Fit([][]float64{v.Transform(docs[0]), v.Transform(docs[1])}, []string{"1-2-5", "1-3-9"})
	return v, clf
}

func TestLoad_NoModel(t *testing.T) {
	s := New(t.TempDir())
	_, _, err := s.Load()
	if !errors.Is(err, ErrModelNotFound) {
		t.Fatalf("expected ErrModelNotFound, got %v", err)
	}
	if s.Exists() {
		t.Error("Exists should be false before any save")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	vec, clf := fittedPair(t)

	if err := s.Save(vec, clf); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !s.Exists() {
		t.Error("Exists should be true after save")
	}

	gotVec, gotClf, err := s.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	doc := "a triangle with sides"
	want := clf.Predict(vec.Transform(doc))
	got := gotClf.Predict(gotVec.Transform(doc))
	if got != want {
		t.Errorf("restored pair predicts %q, original %q", got, want)
	}
}

func TestSave_ReplacesAndPrunesOldRuns(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	vec, clf := fittedPair(t)

	if err := s.Save(vec, clf); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(vec, clf); err != nil {
		t.Fatalf("second save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	runs := 0
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "run-") {
			runs++
		}
	}
	if runs != 1 {
		t.Errorf("expected exactly 1 run directory after replacement, got %d", runs)
	}

	if _, _, err := s.Load(); err != nil {
		t.Errorf("load after replacement: %v", err)
	}
}

func TestSave_WritesBothArtifacts(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	vec, clf := fittedPair(t)
	if err := s.Save(vec, clf); err != nil {
		t.Fatalf("save: %v", err)
	}

	ptr, err := os.ReadFile(filepath.Join(dir, "current"))
	if err != nil {
		t.Fatalf("read pointer: %v", err)
	}
	runDir := filepath.Join(dir, strings.TrimSpace(string(ptr)))
	for _, name := range []string{"vectorizer.json", "classifier.json"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); err != nil {
			t.Errorf("missing artifact %s: %v", name, err)
		}
	}
}
