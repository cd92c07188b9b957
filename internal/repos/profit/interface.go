package profit

import (
	"context"
	"errors"
	"time"
)

var ErrAggregateNotFound = errors.New("profit aggregate not found")

// Aggregate is the single house-wide profitability row. All amounts are
// minor units. It is always recomputed from the ledger, never incremented.
type Aggregate struct {
	TotalDeposits            int64
	TotalWithdrawals         int64
	TotalWithdrawableBalance int64
	TotalProfit              int64
	ExpectingProfit          int64
	RefreshedAt              time.Time
}

type Profits interface {
	Get(ctx context.Context) (*Aggregate, error)
	// Recompute rebuilds the row from ledger aggregates. edgePercent is the
	// target house edge used for expecting_profit (e.g. 5 for 5%).
	Recompute(ctx context.Context, edgePercent int64) error
}
