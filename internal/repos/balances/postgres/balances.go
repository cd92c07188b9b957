package balances

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/gamehall/internal/repos/balances"
)

var _ balances.Balances = (*balancesRepo)(nil)

type balancesRepo struct{ db *sql.DB }

func New(db *sql.DB) *balancesRepo {
	return &balancesRepo{db: db}
}

const balanceColumns = `b.id, b.account_id, b.available, b.hold, b.withdrawable, b.currency, b.last_transaction_at`

func (r *balancesRepo) GetByUserID(ctx context.Context, userID uint64) (*balances.Balance, error) {
	b := new(balances.Balance)

	err := r.db.QueryRowContext(ctx, `
		SELECT `+balanceColumns+`
		FROM balances b
		JOIN accounts a ON a.id = b.account_id
		WHERE a.user_id = $1
	`, userID).Scan(
		&b.ID, &b.AccountID, &b.Available, &b.Hold, &b.Withdrawable,
		&b.Currency, &b.LastTransactionAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, balances.ErrBalanceNotFound
		}

		return nil, fmt.Errorf("get balance: %w", err)
	}

	return b, nil
}

func (r *balancesRepo) LockByUserID(tx *sql.Tx, userID uint64) (*balances.Balance, error) {
	var accountID uint64

	err := tx.QueryRow(`
		SELECT id
		FROM accounts
		WHERE user_id = $1
	`, userID).Scan(&accountID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, balances.ErrAccountNotFound
		}

		return nil, fmt.Errorf("resolve account: %w", err)
	}

	b := new(balances.Balance)

	err = tx.QueryRow(`
		SELECT `+balanceColumns+`
		FROM balances b
		WHERE b.account_id = $1
		FOR UPDATE
	`, accountID).Scan(
		&b.ID, &b.AccountID, &b.Available, &b.Hold, &b.Withdrawable,
		&b.Currency, &b.LastTransactionAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, balances.ErrBalanceNotFound
		}

		return nil, fmt.Errorf("lock/get balance: %w", err)
	}

	return b, nil
}

func (r *balancesRepo) Credit(tx *sql.Tx, balanceID uint64, amount int64) error {
	_, err := tx.Exec(`
		UPDATE balances
		SET available = available + $2,
		    withdrawable = withdrawable + $2,
		    last_transaction_at = NOW()
		WHERE id = $1
	`, balanceID, amount)
	if err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}

	return nil
}

func (r *balancesRepo) Debit(tx *sql.Tx, balanceID uint64, amount int64) error {
	res, err := tx.Exec(`
		UPDATE balances
		SET available = available - $2,
		    withdrawable = GREATEST(withdrawable - $2, 0),
		    last_transaction_at = NOW()
		WHERE id = $1
		  AND available >= $2
	`, balanceID, amount)
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return balances.ErrInsufficientFunds
	}

	return nil
}
