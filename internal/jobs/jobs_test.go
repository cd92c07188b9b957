package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fastprodman/gamehall/internal/repos/profit"
	profitsvc "github.com/fastprodman/gamehall/internal/services/profit"
)

type countingProfits struct {
	recomputes atomic.Int64
}

func (c *countingProfits) Get(context.Context) (*profit.Aggregate, error) {
	return &profit.Aggregate{}, nil
}

func (c *countingProfits) Recompute(context.Context, int64) error {
	c.recomputes.Add(1)
	return nil
}

type countingSweeper struct {
	sweeps atomic.Int64
}

func (c *countingSweeper) Sweep() int {
	c.sweeps.Add(1)
	return 0
}

func TestScheduler_RejectsBadSpec(t *testing.T) {
	t.Parallel()

	refresher := profitsvc.NewRefresher(&countingProfits{}, 5)

	_, err := New(refresher, "not a cron spec", nil, "")
	if err == nil {
		t.Fatal("want error for invalid refresh spec")
	}

	_, err = New(refresher, "@every 1m", &countingSweeper{}, "not a cron spec")
	if err == nil {
		t.Fatal("want error for invalid sweep spec")
	}
}

func TestScheduler_RunsJobs(t *testing.T) {
	t.Parallel()

	repo := &countingProfits{}
	sweeper := &countingSweeper{}

	sched, err := New(profitsvc.NewRefresher(repo, 5), "@every 1s", sweeper, "@every 1s")
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}

	sched.Start()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	for repo.recomputes.Load() == 0 || sweeper.sweeps.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("jobs did not run: recomputes=%d sweeps=%d",
				repo.recomputes.Load(), sweeper.sweeps.Load())
		case <-tick.C:
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = sched.Stop(ctx)
	if err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestScheduler_NilSweeperIsOptional(t *testing.T) {
	t.Parallel()

	sched, err := New(profitsvc.NewRefresher(&countingProfits{}, 5), "@every 1m", nil, "")
	if err != nil {
		t.Fatalf("new scheduler without sweeper: %v", err)
	}

	sched.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := sched.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
