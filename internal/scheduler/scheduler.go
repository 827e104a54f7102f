// Package scheduler runs periodic maintenance jobs, currently the purge of
// expired and revoked sessions.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"jobboard/internal/observability"
)

type SessionPurger interface {
	PurgeSessions(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron    *cron.Cron
	purger  SessionPurger
	logger  *observability.Logger
	spec    string // cron spec, e.g. "@every 1h"
	timeout time.Duration
}

func New(purger SessionPurger, logger *observability.Logger, spec string) *Scheduler {
	if logger == nil {
		logger = observability.Default()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger))),
		purger:  purger,
		logger:  logger,
		spec:    spec,
		timeout: time.Minute,
	}
}

// Start registers the purge job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.runPurge(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.logger.WithFields(map[string]any{"spec": s.spec}).Info("scheduler started")
	return nil
}

// Stop waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runPurge(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	removed, err := s.purger.PurgeSessions(ctx)
	if err != nil {
		s.logger.WithError(err).Error("session purge failed")
		return
	}
	s.logger.WithFields(map[string]any{"removed": removed}).Info("session purge complete")
}
