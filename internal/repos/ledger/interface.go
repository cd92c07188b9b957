// Package ledger defines the two append-only record flavors: game_history
// rows for game settlements and balance_transactions rows for
// externally-initiated money movement. Entries are never mutated except to
// flip a balance transaction's status and stamp its approval.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrEntryNotFound = errors.New("ledger entry not found")

type EntryType string

const (
	TypeWin  EntryType = "win"
	TypeLoss EntryType = "loss"
)

type Direction string

const (
	DirCredit Direction = "credit"
	DirDebit  Direction = "debit"
)

type TxKind string

const (
	KindDeposit    TxKind = "deposit"
	KindWithdrawal TxKind = "withdrawal"
	KindPayment    TxKind = "payment"
	KindRefund     TxKind = "refund"
	KindAdjustment TxKind = "adjustment"
	KindTransfer   TxKind = "transfer"
)

type TxStatus string

const (
	StatusPending   TxStatus = "pending"
	StatusCompleted TxStatus = "completed"
	StatusFailed    TxStatus = "failed"
)

// GameEntry is one game settlement record. Immutable once inserted.
type GameEntry struct {
	ID          uuid.UUID
	UserID      uint64
	AccountID   uint64
	BalanceID   uint64
	GameID      uint64
	Type        EntryType
	Direction   Direction
	Amount      int64
	Description string
	CreatedAt   time.Time
}

// BalanceTx is one externally-initiated movement. Only Status, ApprovedBy
// and ApprovedAt ever change after insert.
type BalanceTx struct {
	ID          uuid.UUID
	UserID      uint64
	AccountID   uint64
	BalanceID   uint64
	Kind        TxKind
	Direction   Direction
	Amount      int64
	Status      TxStatus
	Description string
	ApprovedBy  string
	ApprovedAt  time.Time
	CreatedAt   time.Time
}

type Ledger interface {
	InsertGameEntry(tx *sql.Tx, entry *GameEntry) error
	ListGameEntries(ctx context.Context, userID uint64, limit int) ([]GameEntry, error)

	InsertBalanceTx(tx *sql.Tx, bt *BalanceTx) error
	// MarkBalanceTx flips status and, for completed transactions, stamps
	// the approver.
	MarkBalanceTx(tx *sql.Tx, id uuid.UUID, status TxStatus, approvedBy string) error
}
