// Package jobs wires the periodic maintenance work: refreshing the profit
// aggregate and sweeping expired in-memory sessions.
package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	profitsvc "github.com/fastprodman/gamehall/internal/services/profit"
)

// Sweeper evicts expired sessions. The in-memory session store implements
// it; the redis backend expires keys natively and needs no sweep.
type Sweeper interface {
	Sweep() int
}

type Scheduler struct {
	cron *cron.Cron
}

// New builds the scheduler. sweeper may be nil.
func New(refresher *profitsvc.Refresher, refreshSpec string, sweeper Sweeper, sweepSpec string) (*Scheduler, error) {
	c := cron.New()

	_, err := c.AddFunc(refreshSpec, func() {
		err := refresher.Refresh(context.Background())
		if err != nil {
			slog.Error("profit refresh failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule profit refresh: %w", err)
	}

	if sweeper != nil {
		_, err = c.AddFunc(sweepSpec, func() {
			evicted := sweeper.Sweep()
			if evicted > 0 {
				slog.Info("expired sessions evicted", "count", evicted)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("schedule session sweep: %w", err)
		}
	}

	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop().Done()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("stop scheduler: %w", ctx.Err())
	}
}
