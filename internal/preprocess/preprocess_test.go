package preprocess

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"probclass/internal/corpus"
	"probclass/internal/extractor"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Problem>
  <ProblemID>1288</ProblemID>
  <Title>Isosceles triangles</Title>
  <Statement>Find the base angles.</Statement>
</Problem>`

type fakeWriter struct {
	records []corpus.Record
	err     error
}

func (w *fakeWriter) UpsertProblem(ctx context.Context, rec corpus.Record) error {
	if w.err != nil {
		return w.err
	}
	w.records = append(w.records, rec)
	return nil
}

func newProcessor(t *testing.T, store RecordWriter) *Processor {
	t.Helper()
	ext, err := extractor.ForMode(extractor.ModeGeneric)
	if err != nil {
		t.Fatal(err)
	}
	return &Processor{
		DataDir:   t.TempDir(),
		OutputDir: t.TempDir(),
		Extractor: ext,
		Store:     store,
	}
}

func writeInput(t *testing.T, dataDir, rel, content string) {
	t.Helper()
	p := filepath.Join(dataDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFile_HappyPath(t *testing.T) {
	w := &fakeWriter{}
	p := newProcessor(t, w)
	writeInput(t, p.DataDir, "1/1/2/1288/1288.xml", sampleXML)

	res := p.File(context.Background(), "1/1/2/1288/1288.xml")
	if res.Status != "processed" {
		t.Fatalf("expected processed, got %s (%s)", res.Status, res.Error)
	}
	if res.Output != "1/1/2/1288/1288.txt" {
		t.Errorf("unexpected output path %q", res.Output)
	}

	out, err := os.ReadFile(filepath.Join(p.OutputDir, filepath.FromSlash(res.Output)))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(out), "Isosceles triangles") {
		t.Errorf("output missing extracted text: %q", out)
	}

	if len(w.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(w.records))
	}
	rec := w.records[0]
	if rec.ProblemID != "1288" {
		t.Errorf("expected problem id 1288, got %q", rec.ProblemID)
	}
	if rec.Label.Book != "1" || rec.Label.Chapter != "1" || rec.Label.Section != "2" {
		t.Errorf("unexpected label %v", rec.Label)
	}
}

func TestFile_MissingInput(t *testing.T) {
	p := newProcessor(t, nil)
	res := p.File(context.Background(), "1/1/2/9/9.xml")
	if res.Status != "error" {
		t.Fatalf("expected error status, got %s", res.Status)
	}
	if res.Error != "file not found" {
		t.Errorf("unexpected error message %q", res.Error)
	}
}

func TestFile_TooShallowPath(t *testing.T) {
	p := newProcessor(t, nil)
	writeInput(t, p.DataDir, "1/2/stray.xml", sampleXML)

	res := p.File(context.Background(), "1/2/stray.xml")
	if res.Status != "error" {
		t.Fatalf("expected error status, got %s", res.Status)
	}
	if !strings.Contains(res.Error, "1/2/stray.xml") {
		t.Errorf("error should name the offending path, got %q", res.Error)
	}
}

func TestFile_RejectsTraversal(t *testing.T) {
	p := newProcessor(t, nil)
	for _, rel := range []string{"../outside.xml", "/etc/passwd", "1/../../x.xml"} {
		res := p.File(context.Background(), rel)
		if res.Status != "error" {
			t.Errorf("path %q: expected rejection, got %s", rel, res.Status)
		}
	}
}

func TestFile_EmptyDocument(t *testing.T) {
	p := newProcessor(t, nil)
	writeInput(t, p.DataDir, "1/1/2/7/7.xml", "<Problem>  \n </Problem>")

	res := p.File(context.Background(), "1/1/2/7/7.xml")
	if res.Status != "error" {
		t.Fatalf("expected error for textless document, got %s", res.Status)
	}
}

func TestFile_MalformedXML(t *testing.T) {
	p := newProcessor(t, nil)
	writeInput(t, p.DataDir, "1/1/2/8/8.xml", "<Problem><unclosed>")

	res := p.File(context.Background(), "1/1/2/8/8.xml")
	if res.Status != "error" {
		t.Fatalf("expected error for malformed XML, got %s", res.Status)
	}
}

func TestFile_NoStoreConfigured(t *testing.T) {
	p := newProcessor(t, nil)
	writeInput(t, p.DataDir, "1/1/2/1288/1288.xml", sampleXML)

	res := p.File(context.Background(), "1/1/2/1288/1288.xml")
	if res.Status != "processed" {
		t.Fatalf("processing without a store must still work, got %s (%s)", res.Status, res.Error)
	}
}

func TestAll_WalksOnlyXML(t *testing.T) {
	w := &fakeWriter{}
	p := newProcessor(t, w)
	writeInput(t, p.DataDir, "1/1/2/100/100.xml", sampleXML)
	writeInput(t, p.DataDir, "1/1/2/200/200.xml", sampleXML)
	writeInput(t, p.DataDir, "1/1/2/300/notes.txt", "not a document")

	results, err := p.All(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Status != "processed" {
			t.Errorf("file %s: expected processed, got %s (%s)", r.File, r.Status, r.Error)
		}
	}
}
