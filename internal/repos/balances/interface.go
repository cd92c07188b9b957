package balances

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrBalanceNotFound   = errors.New("balance not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Balance is one account's money position in minor units (cents).
// Invariant: withdrawable <= available, both non-negative after settlement.
type Balance struct {
	ID                uint64
	AccountID         uint64
	Available         int64
	Hold              int64
	Withdrawable      int64
	Currency          string
	LastTransactionAt time.Time
}

type Balances interface {
	GetByUserID(ctx context.Context, userID uint64) (*Balance, error)

	// LockByUserID resolves the user's account and locks its balance row
	// (FOR UPDATE) for the duration of tx. Concurrent settlements against
	// the same balance serialize here.
	LockByUserID(tx *sql.Tx, userID uint64) (*Balance, error)

	// Credit adds amount to both available and withdrawable.
	Credit(tx *sql.Tx, balanceID uint64, amount int64) error

	// Debit subtracts amount from available, rejecting underflow with
	// ErrInsufficientFunds. Withdrawable is floored at zero instead of
	// going negative (intentional soft floor, see DESIGN.md).
	Debit(tx *sql.Tx, balanceID uint64, amount int64) error
}
