// Package profit drives the house-profit feedback loop: a refresher that
// recomputes the aggregate row from the ledger, and a policy that the slot
// engine consults before letting a spin win.
package profit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fastprodman/gamehall/internal/repos/profit"
)

// Refresher recomputes house-wide totals on demand and on a schedule.
type Refresher struct {
	repo        profit.Profits
	edgePercent int64
}

func NewRefresher(repo profit.Profits, edgePercent int64) *Refresher {
	return &Refresher{repo: repo, edgePercent: edgePercent}
}

func (r *Refresher) Refresh(ctx context.Context) error {
	err := r.repo.Recompute(ctx, r.edgePercent)
	if err != nil {
		return fmt.Errorf("refresh profit aggregate: %w", err)
	}

	return nil
}

// Policy reads the aggregate and yields the constrain-wins signal. Read
// failures degrade to constraining: when profitability is unknown the house
// does not hand out wins.
type Policy struct {
	repo profit.Profits
}

func NewPolicy(repo profit.Profits) *Policy {
	return &Policy{repo: repo}
}

// ConstrainWins is true while realized profit lags the target.
func (p *Policy) ConstrainWins(ctx context.Context) bool {
	agg, err := p.repo.Get(ctx)
	if err != nil {
		slog.Warn("profit aggregate unavailable, constraining wins", "error", err)

		return true
	}

	return agg.TotalProfit < agg.ExpectingProfit
}

// Headroom is the amount the house can currently afford to pay out:
// total_profit minus expecting_profit. Never negative.
func (p *Policy) Headroom(ctx context.Context) int64 {
	agg, err := p.repo.Get(ctx)
	if err != nil {
		slog.Warn("profit aggregate unavailable, zero headroom", "error", err)

		return 0
	}

	headroom := agg.TotalProfit - agg.ExpectingProfit
	if headroom < 0 {
		return 0
	}

	return headroom
}
