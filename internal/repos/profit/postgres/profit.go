package profit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/gamehall/internal/repos/profit"
)

var _ profit.Profits = (*profitRepo)(nil)

type profitRepo struct{ db *sql.DB }

func New(db *sql.DB) *profitRepo {
	return &profitRepo{db: db}
}

func (r *profitRepo) Get(ctx context.Context) (*profit.Aggregate, error) {
	agg := new(profit.Aggregate)

	err := r.db.QueryRowContext(ctx, `
		SELECT total_deposits, total_withdrawals, total_withdrawable_balance,
		       total_profit, expecting_profit, refreshed_at
		FROM profit_aggregates
		WHERE id = 1
	`).Scan(
		&agg.TotalDeposits, &agg.TotalWithdrawals, &agg.TotalWithdrawableBalance,
		&agg.TotalProfit, &agg.ExpectingProfit, &agg.RefreshedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, profit.ErrAggregateNotFound
		}

		return nil, fmt.Errorf("get profit aggregate: %w", err)
	}

	return agg, nil
}

// Recompute rebuilds the whole row in one statement so readers never observe
// a half-updated aggregate. total_profit is game debits minus game credits;
// expecting_profit is edgePercent of everything wagered.
func (r *profitRepo) Recompute(ctx context.Context, edgePercent int64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profit_aggregates
		SET total_deposits = (
		        SELECT COALESCE(SUM(amount), 0) FROM balance_transactions
		        WHERE type = 'deposit' AND status = 'completed'
		    ),
		    total_withdrawals = (
		        SELECT COALESCE(SUM(amount), 0) FROM balance_transactions
		        WHERE type = 'withdrawal' AND status = 'completed'
		    ),
		    total_withdrawable_balance = (
		        SELECT COALESCE(SUM(withdrawable), 0) FROM balances
		    ),
		    total_profit = (
		        SELECT COALESCE(SUM(CASE WHEN direction = 'debit' THEN amount ELSE -amount END), 0)
		        FROM game_history
		    ),
		    expecting_profit = (
		        SELECT COALESCE(SUM(amount), 0) * $1 / 100 FROM game_history
		        WHERE direction = 'debit'
		    ),
		    refreshed_at = NOW()
		WHERE id = 1
	`, edgePercent)
	if err != nil {
		return fmt.Errorf("recompute profit aggregate: %w", err)
	}

	return nil
}
