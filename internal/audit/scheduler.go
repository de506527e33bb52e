package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const runTimeout = 5 * time.Minute

// Scheduler runs the auditor on a cron schedule in UTC.
type Scheduler struct {
	cron    *cron.Cron
	auditor *Auditor
	logger  *zap.SugaredLogger
}

// NewScheduler accepts standard cron specs as well as descriptors such as "@every 1h".
func NewScheduler(schedule string, auditor *Auditor, logger *zap.SugaredLogger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		auditor: auditor,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid audit schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if _, err := s.auditor.Run(ctx); err != nil {
		s.logger.Errorw("friendship audit failed", "error", err)
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running audit to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}
