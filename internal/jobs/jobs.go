// Package jobs implements the bounded worker pools that back batch
// screening, batch pattern analysis, and resolution jobs (spec.md §4.2,
// §4.5, §5). Each subject is an independent task; progress counters are
// updated atomically after each subject completes and the pool supports
// cooperative cancellation checked between subjects.
package jobs

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle of a batch job.
type Status string

const (
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusFailed    Status = "FAILED"
)

// Progress is the atomically-updated counter set exposed while a job runs.
type Progress struct {
	Processed    int64
	MatchesFound int64
	Errors       int64
}

// Snapshot returns a point-in-time copy of the counters.
func (p *Progress) Snapshot() Progress {
	return Progress{
		Processed:    atomic.LoadInt64(&p.Processed),
		MatchesFound: atomic.LoadInt64(&p.MatchesFound),
		Errors:       atomic.LoadInt64(&p.Errors),
	}
}

// Task is one unit of work submitted to a Pool. matched reports whether the
// subject produced a positive result (a screening hit, a detected pattern);
// it only affects the MatchesFound counter.
type Task func(ctx context.Context) (matched bool, err error)

// Job tracks one batch run across a bounded worker pool.
type Job struct {
	JobID     uuid.UUID
	Name      string
	Status    Status
	Progress  Progress
	Total     int
	StartedAt time.Time
	EndedAt   time.Time

	cancel context.CancelFunc
}

// Pool runs Tasks with bounded concurrency.
type Pool struct {
	concurrency int
}

// NewPool constructs a Pool with the given worker concurrency. A
// concurrency of <=0 defaults to 4, matching spec.md §4.2's default.
func NewPool(concurrency int) *Pool {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Pool{concurrency: concurrency}
}

// Run executes all tasks with bounded concurrency, updating job.Progress as
// each completes and honoring cancellation via the returned cancel func
// stored on the job (accessible through Cancel). It blocks until every
// task has been dispatched and the pool has drained or the context was
// cancelled between tasks.
func (p *Pool) Run(ctx context.Context, job *Job, tasks []Task) {
	runCtx, cancel := context.WithCancel(ctx)
	job.cancel = cancel
	job.Status = StatusRunning
	job.Total = len(tasks)
	job.StartedAt = time.Now()

	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for _, task := range tasks {
		select {
		case <-runCtx.Done():
			job.Status = StatusCancelled
			wg.Wait()
			job.EndedAt = time.Now()
			return
		default:
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(t Task) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					atomic.AddInt64(&job.Progress.Processed, 1)
					atomic.AddInt64(&job.Progress.Errors, 1)
				}
			}()

			matched, err := t(runCtx)
			atomic.AddInt64(&job.Progress.Processed, 1)
			if err != nil {
				atomic.AddInt64(&job.Progress.Errors, 1)
				return
			}
			if matched {
				atomic.AddInt64(&job.Progress.MatchesFound, 1)
			}
		}(task)
	}

	wg.Wait()
	job.EndedAt = time.Now()
	if job.Status != StatusCancelled {
		job.Status = StatusCompleted
	}
}

// Cancel requests cooperative cancellation of a running job.
func (j *Job) Cancel() {
	if j.cancel != nil {
		j.cancel()
	}
}

// NewJob constructs a fresh Job record with a generated ID.
func NewJob(name string) *Job {
	return &Job{JobID: uuid.New(), Name: name, Status: StatusRunning}
}
