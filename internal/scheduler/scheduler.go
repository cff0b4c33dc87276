// Package scheduler runs the periodic digest mailing.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/matrix-service/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DigestSource builds the digest items
type DigestSource interface {
	Digest(ctx context.Context) ([]service.DigestItem, error)
}

// Mailer delivers one digest item
type Mailer interface {
	SendDigest(item service.DigestItem) error
}

// Scheduler wraps a cron runner with the digest job
type Scheduler struct {
	cron    *cron.Cron
	source  DigestSource
	mailer  Mailer
	log     *logrus.Logger
	timeout time.Duration
}

// New registers the digest job on spec (standard five-field cron syntax)
func New(spec string, source DigestSource, mailer Mailer, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		source:  source,
		mailer:  mailer,
		log:     log,
		timeout: 10 * time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.runDigest); err != nil {
		return nil, fmt.Errorf("invalid digest schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.RunDigest(ctx); err != nil {
		s.log.WithError(err).Error("Digest run failed")
	}
}

// RunDigest sends one digest to every subscription and returns how many were sent.
// Individual delivery failures are logged and do not stop the run.
func (s *Scheduler) RunDigest(ctx context.Context) (int, error) {
	items, err := s.source.Digest(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to build digest: %w", err)
	}

	sent := 0
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if err := s.mailer.SendDigest(item); err != nil {
			s.log.WithError(err).WithField("email", item.Email).Error("Failed to send digest")
			continue
		}
		sent++
	}
	s.log.WithFields(logrus.Fields{"sent": sent, "total": len(items)}).Info("Digest run finished")
	return sent, nil
}
