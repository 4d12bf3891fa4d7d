// Package scheduler wraps robfig/cron to drive periodic batch analysis and
// overdue-item sweeps (workflows, alerts, cases, SARs past due_date).
package scheduler

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler owns a single cron instance and the registered jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// New constructs a Scheduler. Entries run with second-level precision
// disabled (standard 5-field cron), matching the archive_schedule format
// already used elsewhere in this service's configuration.
func New(logger *zap.Logger) *Scheduler {
	return &Scheduler{cron: cron.New(), logger: logger}
}

// Register adds a named job on the given cron spec. Job panics are not
// recovered here: New builds the cron.Cron without a recovery wrapper.
func (s *Scheduler) Register(spec, name string, fn func()) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.logger.Info("scheduler: running job", zap.String("job", name))
		fn()
	})
	return err
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler, waiting for any running job to complete.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
