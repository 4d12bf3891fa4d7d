package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunCountsProcessedAndMatches(t *testing.T) {
	pool := NewPool(2)
	job := NewJob("test-batch")

	tasks := make([]Task, 10)
	for i := range tasks {
		i := i
		tasks[i] = func(ctx context.Context) (bool, error) {
			return i%2 == 0, nil
		}
	}

	pool.Run(context.Background(), job, tasks)

	assert.Equal(t, StatusCompleted, job.Status)
	assert.EqualValues(t, 10, job.Progress.Processed)
	assert.EqualValues(t, 5, job.Progress.MatchesFound)
	assert.EqualValues(t, 0, job.Progress.Errors)
}

func TestPoolRunCountsErrorsWithoutFailingJob(t *testing.T) {
	pool := NewPool(2)
	job := NewJob("test-batch")

	tasks := []Task{
		func(ctx context.Context) (bool, error) { return false, errors.New("boom") },
		func(ctx context.Context) (bool, error) { return true, nil },
	}

	pool.Run(context.Background(), job, tasks)

	assert.Equal(t, StatusCompleted, job.Status)
	assert.EqualValues(t, 2, job.Progress.Processed)
	assert.EqualValues(t, 1, job.Progress.Errors)
	assert.EqualValues(t, 1, job.Progress.MatchesFound)
}

func TestPoolRunCancellation(t *testing.T) {
	pool := NewPool(1)
	job := NewJob("test-batch")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tasks := []Task{
		func(ctx context.Context) (bool, error) { return false, nil },
	}
	pool.Run(ctx, job, tasks)

	assert.Equal(t, StatusCancelled, job.Status)
}
