// Package trainer runs the train-and-evaluate pipeline: deterministic
// shuffle and split, TF-IDF vectorization, naive Bayes fitting, and
// hierarchical accuracy scoring at section and chapter granularity.
package trainer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"probclass/internal/corpus"
	"probclass/internal/label"
	"probclass/internal/mlearn"
	"probclass/internal/modelstore"
)

var (
	// ErrEmptyCorpus means zero training records were available.
	ErrEmptyCorpus = errors.New("no training records available")
	// ErrInsufficientData means the corpus cannot form both a train and
	// a test partition.
	ErrInsufficientData = errors.New("not enough records to form train and test partitions")
)

// Options controls a training run.
type Options struct {
	TestFraction float64 // in (0,1) exclusive
	Seed         uint64  // fixed seed; same corpus + seed => same split
	VocabSize    int     // vectorizer vocabulary cap
}

// Summary reports test-partition metrics for a completed run.
type Summary struct {
	TestSize        int     `json:"test_size"`
	SectionCorrect  int     `json:"section_correct"`
	ChapterCorrect  int     `json:"chapter_correct"`
	SectionAccuracy float64 `json:"section_accuracy"`
	ChapterAccuracy float64 `json:"chapter_accuracy"`
}

// Outcome records one test-time prediction against ground truth. Used
// for reporting only, never for training.
type Outcome struct {
	ProblemID    string      `json:"problem_id"`
	Actual       label.Label `json:"actual"`
	Predicted    label.Label `json:"predicted"`
	SectionMatch bool        `json:"section_match"`
	ChapterMatch bool        `json:"chapter_match"`
}

// OutcomeSink receives test-time outcomes; the log is cleared before
// each run so it always reflects the latest training.
type OutcomeSink interface {
	ClearOutcomes(ctx context.Context) error
	InsertOutcome(ctx context.Context, o Outcome) error
}

// Trainer fits and persists models. The sink is optional.
type Trainer struct {
	models *modelstore.Store
	sink   OutcomeSink
	log    *slog.Logger
}

func New(models *modelstore.Store, sink OutcomeSink, log *slog.Logger) *Trainer {
	return &Trainer{models: models, sink: sink, log: log}
}

// Train runs the full pipeline over a corpus and publishes the fitted
// pair. On any refusal (empty corpus, bad fraction, too little data) no
// model artifact is created or overwritten.
func (t *Trainer) Train(ctx context.Context, records []corpus.Record, opts Options) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, ErrEmptyCorpus
	}
	if opts.TestFraction <= 0 || opts.TestFraction >= 1 {
		return Summary{}, fmt.Errorf("test fraction must be in (0,1) exclusive, got %v", opts.TestFraction)
	}
	if len(records) < 2 {
		return Summary{}, ErrInsufficientData
	}

	trainIdx, testIdx := mlearn.Split(len(records), opts.TestFraction, opts.Seed)
	if len(trainIdx) == 0 || len(testIdx) == 0 {
		return Summary{}, ErrInsufficientData
	}

	trainTexts := make([]string, len(trainIdx))
	trainClasses := make([]string, len(trainIdx))
	for i, idx := range trainIdx {
		trainTexts[i] = records[idx].Text
		trainClasses[i] = records[idx].Label.String()
	}

	vec := mlearn.NewTFIDF(opts.VocabSize)
	vec.Fit(trainTexts)

	trainVectors := make([][]float64, len(trainTexts))
	for i, text := range trainTexts {
		trainVectors[i] = vec.Transform(text)
	}

	clf := mlearn.NewMultinomial()
	clf.Fit(trainVectors, trainClasses)

	if t.sink != nil {
		if err := t.sink.ClearOutcomes(ctx); err != nil {
			return Summary{}, fmt.Errorf("clear outcome log: %w", err)
		}
	}

	summary := Summary{TestSize: len(testIdx)}
	for _, idx := range testIdx {
		rec := records[idx]
		// The test text goes through the same fitted vectorizer as the
		// training texts, never a freshly fitted one.
		predicted, ok := label.ParseClass(clf.Predict(vec.Transform(rec.Text)))
		if !ok {
			t.log.Warn("prediction did not decompose into 3 parts", "problem_id", rec.ProblemID)
		}

		o := Outcome{
			ProblemID:    rec.ProblemID,
			Actual:       rec.Label,
			Predicted:    predicted,
			SectionMatch: predicted == rec.Label,
			ChapterMatch: predicted.Book == rec.Label.Book && predicted.Chapter == rec.Label.Chapter,
		}
		if o.SectionMatch {
			summary.SectionCorrect++
		}
		if o.ChapterMatch {
			summary.ChapterCorrect++
		}
		if t.sink != nil {
			if err := t.sink.InsertOutcome(ctx, o); err != nil {
				t.log.Warn("record outcome", "problem_id", rec.ProblemID, "error", err)
			}
		}
	}
	summary.SectionAccuracy = float64(summary.SectionCorrect) / float64(summary.TestSize)
	summary.ChapterAccuracy = float64(summary.ChapterCorrect) / float64(summary.TestSize)

	if err := t.models.Save(vec, clf); err != nil {
		return Summary{}, fmt.Errorf("persist model: %w", err)
	}

	t.log.Info("training complete",
		"records", len(records),
		"train_size", len(trainIdx),
		"test_size", summary.TestSize,
		"section_accuracy", summary.SectionAccuracy,
		"chapter_accuracy", summary.ChapterAccuracy,
	)
	return summary, nil
}
