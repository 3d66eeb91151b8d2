package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Zamtas/Zamtas-EMS/logging"

	"github.com/robfig/cron/v3"
)

// Sweeper runs a sweep function on a fixed cron schedule for the lifetime of
// the process. It is an explicit component with Start/Stop so tests and
// shutdown paths control it directly.
type Sweeper struct {
	spec   string
	sweep  func(ctx context.Context)
	cron   *cron.Cron
	cancel context.CancelFunc
}

func NewSweeper(spec string, sweep func(ctx context.Context)) *Sweeper {
	return &Sweeper{
		spec:  spec,
		sweep: sweep,
	}
}

func (s *Sweeper) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.cron = cron.New()

	_, err := s.cron.AddFunc(s.spec, func() {
		s.sweep(ctx)
	})
	if err != nil {
		cancel()
		return fmt.Errorf("invalid sweep schedule %q: %v", s.spec, err)
	}

	s.cron.Start()
	logging.Logger.Infof("Event ID: SWEEPER_STARTED, Description: Delayed-task sweeper started with schedule %q.", s.spec)
	return nil
}

func (s *Sweeper) Stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.cron == nil {
		return
	}

	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
		logging.Logger.Warn("Event ID: SWEEPER_STOP_TIMEOUT, Description: Timed out waiting for a running sweep to finish.")
	}
	logging.Logger.Info("Event ID: SWEEPER_STOPPED, Description: Delayed-task sweeper stopped.")
}
