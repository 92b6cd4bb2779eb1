package trainer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"probclass/internal/corpus"
)

// CorpusFunc produces the corpus for a training run. The runner calls it
// after acquiring the training lock so the run reads a settled snapshot.
type CorpusFunc func(ctx context.Context) (corpus.Result, error)

// Runner executes training jobs in the background, one at a time. The
// model-directory lock file also serializes runs across processes (the
// CLI and the server may share a model directory).
type Runner struct {
	trainer *Trainer
	jobs    *JobStore
	lock    *flock.Flock
	opts    Options
	log     *slog.Logger
}

func NewRunner(t *Trainer, opts Options, lockPath string, jobTTL time.Duration, log *slog.Logger) *Runner {
	return &Runner{
		trainer: t,
		jobs:    NewJobStore(jobTTL),
		lock:    flock.New(lockPath),
		opts:    opts,
		log:     log,
	}
}

// Start queues a training job and returns immediately.
func (r *Runner) Start(source string, fn CorpusFunc) *Job {
	now := time.Now()
	job := &Job{
		ID:        uuid.NewString(),
		Source:    source,
		Status:    StatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.jobs.Cleanup()
	r.jobs.Put(job)

	go r.run(job, fn)
	return job
}

// GetJob returns a tracked job by id, or nil.
func (r *Runner) GetJob(id string) *Job {
	return r.jobs.Get(id)
}

func (r *Runner) run(job *Job, fn CorpusFunc) {
	log := r.log.With("job_id", job.ID, "source", job.Source)

	if err := r.lock.Lock(); err != nil {
		log.Error("acquire training lock", "error", err)
		job.Fail(fmt.Sprintf("acquire training lock: %s", err))
		return
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			log.Warn("release training lock", "error", err)
		}
	}()

	job.SetStatus(StatusRunning)
	ctx := context.Background()

	built, err := fn(ctx)
	if err != nil {
		log.Error("build corpus", "error", err)
		job.Fail(fmt.Sprintf("build corpus: %s", err))
		return
	}
	if built.Skipped > 0 {
		log.Warn("skipped records during corpus build", "skipped", built.Skipped)
	}

	summary, err := r.trainer.Train(ctx, built.Records, r.opts)
	if err != nil {
		log.Error("training failed", "error", err)
		job.Fail(err.Error())
		return
	}
	job.Complete(summary)
}
