// Package corpus aggregates (text, label) training records from a
// directory tree of extracted-text files or from the persistent store.
package corpus

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"probclass/internal/label"
)

// Record is the training unit: one problem's extracted text and its label.
type Record struct {
	ProblemID string
	Label     label.Label
	Text      string
}

// Result is a built corpus. Zero records is an expected, recoverable
// condition; the trainer refuses to train on it. Skipped counts files
// whose directory depth did not match the labeling convention.
type Result struct {
	Records []Record
	Skipped int
}

// Empty reports whether the corpus has no records.
func (r Result) Empty() bool { return len(r.Records) == 0 }

// Source supplies records from a persistent store, optionally filtered
// by book id ("" means all books).
type Source interface {
	FetchTrainingData(ctx context.Context, bookID string) ([]Record, error)
}

// FromStore builds a corpus from a persistent record store.
func FromStore(ctx context.Context, src Source, bookID string) (Result, error) {
	records, err := src.FetchTrainingData(ctx, bookID)
	if err != nil {
		return Result{}, err
	}
	return Result{Records: records}, nil
}

// FromDir walks a tree of .txt files whose directory chain encodes the
// label (book/chapter/section as the first three segments). Files at the
// wrong depth are skipped and counted, not failed; heterogeneous trees
// are expected during data collection. maxDocs bounds the corpus when
// positive.
func FromDir(root string, maxDocs int) (Result, error) {
	var res Result
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".txt") {
			return nil
		}
		if maxDocs > 0 && len(res.Records) >= maxDocs {
			return fs.SkipAll
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		lbl, err := label.FromDir(filepath.ToSlash(filepath.Dir(rel)))
		if err != nil {
			res.Skipped++
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		text := strings.TrimSpace(string(data))
		if text == "" {
			res.Skipped++
			return nil
		}

		base := filepath.Base(rel)
		res.Records = append(res.Records, Record{
			ProblemID: strings.TrimSuffix(base, filepath.Ext(base)),
			Label:     lbl,
			Text:      text,
		})
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}
