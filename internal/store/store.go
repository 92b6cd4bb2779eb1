// Package store persists extracted problem text and test-time prediction
// outcomes in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"probclass/internal/corpus"
	"probclass/internal/trainer"
)

// Store is the SQLite-backed problem store.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the database and applies migrations.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, path: path}
	if err := s.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applyMigrations(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS problems (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			problem_id TEXT NOT NULL UNIQUE,
			book_id TEXT NOT NULL,
			chapter_id TEXT NOT NULL,
			section_id TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_problems_book ON problems(book_id)`,
		`CREATE TABLE IF NOT EXISTS test_outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			problem_id TEXT NOT NULL,
			actual_book TEXT NOT NULL,
			actual_chapter TEXT NOT NULL,
			actual_section TEXT NOT NULL,
			pred_book TEXT NOT NULL,
			pred_chapter TEXT NOT NULL,
			pred_section TEXT NOT NULL,
			matched_section INTEGER NOT NULL,
			matched_chapter INTEGER NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

// UpsertProblem inserts or replaces the extracted text for one problem.
// Each write is its own transaction, so concurrent preprocess requests
// never leave a partially written row visible.
func (s *Store) UpsertProblem(ctx context.Context, rec corpus.Record) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO problems (problem_id, book_id, chapter_id, section_id, content, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(problem_id) DO UPDATE SET
             book_id = excluded.book_id,
             chapter_id = excluded.chapter_id,
             section_id = excluded.section_id,
             content = excluded.content,
             updated_at = excluded.updated_at`,
		rec.ProblemID, rec.Label.Book, rec.Label.Chapter, rec.Label.Section, rec.Text, now, now,
	)
	if err != nil {
		return fmt.Errorf("upsert problem %s: %w", rec.ProblemID, err)
	}
	return nil
}

// FetchTrainingData loads records, optionally filtered by book id.
// Implements corpus.Source.
func (s *Store) FetchTrainingData(ctx context.Context, bookID string) ([]corpus.Record, error) {
	query := `SELECT problem_id, book_id, chapter_id, section_id, content FROM problems`
	var args []any
	if bookID != "" {
		query += ` WHERE book_id = ?`
		args = append(args, bookID)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query training data: %w", err)
	}
	defer rows.Close()

	var records []corpus.Record
	for rows.Next() {
		var rec corpus.Record
		if err := rows.Scan(&rec.ProblemID, &rec.Label.Book, &rec.Label.Chapter, &rec.Label.Section, &rec.Text); err != nil {
			return nil, fmt.Errorf("scan problem row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountProblems returns the number of stored problems.
func (s *Store) CountProblems(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM problems`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count problems: %w", err)
	}
	return n, nil
}

// ClearOutcomes empties the outcome log before a new training run.
// Implements trainer.OutcomeSink.
func (s *Store) ClearOutcomes(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM test_outcomes`); err != nil {
		return fmt.Errorf("clear test outcomes: %w", err)
	}
	return nil
}

// InsertOutcome logs one test-time prediction against ground truth.
func (s *Store) InsertOutcome(ctx context.Context, o trainer.Outcome) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO test_outcomes (
            problem_id, actual_book, actual_chapter, actual_section,
            pred_book, pred_chapter, pred_section, matched_section, matched_chapter
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ProblemID,
		o.Actual.Book, o.Actual.Chapter, o.Actual.Section,
		o.Predicted.Book, o.Predicted.Chapter, o.Predicted.Section,
		boolToInt(o.SectionMatch), boolToInt(o.ChapterMatch),
	)
	if err != nil {
		return fmt.Errorf("insert outcome %s: %w", o.ProblemID, err)
	}
	return nil
}

// ListOutcomes returns the outcome log from the latest training run.
func (s *Store) ListOutcomes(ctx context.Context) ([]trainer.Outcome, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT problem_id, actual_book, actual_chapter, actual_section,
                pred_book, pred_chapter, pred_section, matched_section, matched_chapter
         FROM test_outcomes ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []trainer.Outcome
	for rows.Next() {
		var o trainer.Outcome
		var matchedSection, matchedChapter int
		if err := rows.Scan(
			&o.ProblemID,
			&o.Actual.Book, &o.Actual.Chapter, &o.Actual.Section,
			&o.Predicted.Book, &o.Predicted.Chapter, &o.Predicted.Section,
			&matchedSection, &matchedChapter,
		); err != nil {
			return nil, fmt.Errorf("scan outcome row: %w", err)
		}
		o.SectionMatch = matchedSection != 0
		o.ChapterMatch = matchedChapter != 0
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

var _ corpus.Source = (*Store)(nil)
var _ trainer.OutcomeSink = (*Store)(nil)

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
