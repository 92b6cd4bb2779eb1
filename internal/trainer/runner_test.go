package trainer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"probclass/internal/corpus"
	"probclass/internal/modelstore"
)

func waitForTerminal(t *testing.T, r *Runner, id string) JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job := r.GetJob(id)
		if job == nil {
			t.Fatalf("job %s disappeared", id)
		}
		snap := job.Snapshot()
		if snap.Status == StatusCompleted || snap.Status == StatusFailed {
			return snap
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish in time", id)
	return JobSnapshot{}
}

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	dir := t.TempDir()
	tr := New(modelstore.New(dir), nil, testLogger())
	return NewRunner(tr, testOptions(), filepath.Join(dir, "train.lock"), time.Hour, testLogger())
}

func TestRunner_CompletesJob(t *testing.T) {
	r := newTestRunner(t)
	job := r.Start("store", func(ctx context.Context) (corpus.Result, error) {
		return corpus.Result{Records: smallCorpus()}, nil
	})

	snap := waitForTerminal(t, r, job.ID)
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (%s)", snap.Status, snap.Error)
	}
	if snap.Summary == nil {
		t.Fatal("completed job must carry a summary")
	}
	if snap.Summary.TestSize != 2 {
		t.Errorf("expected test_size 2, got %d", snap.Summary.TestSize)
	}
}

func TestRunner_EmptyCorpusFailsJob(t *testing.T) {
	r := newTestRunner(t)
	job := r.Start("store", func(ctx context.Context) (corpus.Result, error) {
		return corpus.Result{}, nil
	})

	snap := waitForTerminal(t, r, job.ID)
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", snap.Status)
	}
	if snap.Error == "" {
		t.Error("failed job must carry an error message")
	}
}

func TestRunner_SerializesRuns(t *testing.T) {
	r := newTestRunner(t)
	fn := func(ctx context.Context) (corpus.Result, error) {
		return corpus.Result{Records: smallCorpus()}, nil
	}
	a := r.Start("store", fn)
	b := r.Start("store", fn)

	if snap := waitForTerminal(t, r, a.ID); snap.Status != StatusCompleted {
		t.Errorf("job a: expected completed, got %s (%s)", snap.Status, snap.Error)
	}
	if snap := waitForTerminal(t, r, b.ID); snap.Status != StatusCompleted {
		t.Errorf("job b: expected completed, got %s (%s)", snap.Status, snap.Error)
	}
}

func TestJobStore_CleanupKeepsRunningJobs(t *testing.T) {
	s := NewJobStore(time.Millisecond)
	old := time.Now().Add(-time.Hour)

	done := &Job{ID: "done", Status: StatusCompleted, UpdatedAt: old}
	running := &Job{ID: "running", Status: StatusRunning, UpdatedAt: old}
	s.Put(done)
	s.Put(running)

	s.Cleanup()

	if s.Get("done") != nil {
		t.Error("expired completed job should be evicted")
	}
	if s.Get("running") == nil {
		t.Error("running job must survive cleanup")
	}
}
