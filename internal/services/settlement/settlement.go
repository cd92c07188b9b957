// Package settlement applies game outcomes and external transfers to
// balances. Every settlement runs in a single DB transaction holding an
// exclusive row lock on the balance, so concurrent settlements against the
// same balance serialize while other balances proceed independently.
package settlement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fastprodman/gamehall/internal/infra/pgutils"
	"github.com/fastprodman/gamehall/internal/notify"
	"github.com/fastprodman/gamehall/internal/repos/balances"
	"github.com/fastprodman/gamehall/internal/repos/ledger"
	"github.com/fastprodman/gamehall/internal/repos/users"
)

type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

type Service struct {
	db       *sql.DB
	users    users.Users
	balances balances.Balances
	ledger   ledger.Ledger
	notifier notify.Notifier
}

func New(db *sql.DB, u users.Users, b balances.Balances, l ledger.Ledger, n notify.Notifier) *Service {
	return &Service{db: db, users: u, balances: b, ledger: l, notifier: n}
}

// SettleGame records one game outcome and mutates the balance atomically:
//
// 1) Ensure user exists.
// 2) Lock the balance row (FOR UPDATE) via the user's account.
// 3) Insert the immutable game_history entry.
// 4) Apply credit (win) or debit (loss); debit underflow aborts everything.
func (s *Service) SettleGame(ctx context.Context, userID, gameID uint64, amount int64, outcome Outcome, description string) error {
	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.users.Exists(tx, userID)
		if err != nil {
			return fmt.Errorf("check user exists: %w", err)
		}

		balance, err := s.balances.LockByUserID(tx, userID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		entry := &ledger.GameEntry{
			ID:          uuid.New(),
			UserID:      userID,
			AccountID:   balance.AccountID,
			BalanceID:   balance.ID,
			GameID:      gameID,
			Amount:      amount,
			Description: description,
		}

		switch outcome {
		case OutcomeWin:
			entry.Type, entry.Direction = ledger.TypeWin, ledger.DirCredit
		case OutcomeLoss:
			entry.Type, entry.Direction = ledger.TypeLoss, ledger.DirDebit
		default:
			return fmt.Errorf("invalid outcome: %s", outcome)
		}

		err = s.ledger.InsertGameEntry(tx, entry)
		if err != nil {
			return fmt.Errorf("insert history: %w", err)
		}

		if entry.Direction == ledger.DirCredit {
			err = s.balances.Credit(tx, balance.ID, amount)
		} else {
			err = s.balances.Debit(tx, balance.ID, amount)
		}
		if err != nil {
			return fmt.Errorf("apply %s: %w", entry.Direction, err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("settle game: %w", err)
	}

	return nil
}

// Transfer is an externally-initiated money movement request.
type Transfer struct {
	UserID      uint64
	Kind        ledger.TxKind
	Direction   ledger.Direction
	Amount      int64
	Description string
	ApprovedBy  string
	Recipient   string // notification address
}

// ProcessTransfer runs the general settlement path. A debit that lacks
// sufficient available or withdrawable funds is not an abort: the ledger
// entry is persisted with status failed (deliberate audit trail), a
// notification goes out, and ErrInsufficientFunds is returned. Successful
// transfers are marked completed with an approval stamp.
func (s *Service) ProcessTransfer(ctx context.Context, t Transfer) (*ledger.BalanceTx, error) {
	bt := &ledger.BalanceTx{
		ID:          uuid.New(),
		UserID:      t.UserID,
		Kind:        t.Kind,
		Direction:   t.Direction,
		Amount:      t.Amount,
		Status:      ledger.StatusPending,
		Description: t.Description,
	}

	err := pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		err := s.users.Exists(tx, t.UserID)
		if err != nil {
			return fmt.Errorf("check user exists: %w", err)
		}

		balance, err := s.balances.LockByUserID(tx, t.UserID)
		if err != nil {
			return fmt.Errorf("lock balance: %w", err)
		}

		bt.AccountID = balance.AccountID
		bt.BalanceID = balance.ID

		err = s.ledger.InsertBalanceTx(tx, bt)
		if err != nil {
			return fmt.Errorf("insert balance tx: %w", err)
		}

		if t.Direction == ledger.DirDebit &&
			(balance.Available < t.Amount || balance.Withdrawable < t.Amount) {
			bt.Status = ledger.StatusFailed

			err = s.ledger.MarkBalanceTx(tx, bt.ID, ledger.StatusFailed, "")
			if err != nil {
				return fmt.Errorf("mark failed: %w", err)
			}

			// Commit the failed status; the caller sees the conflict.
			return nil
		}

		if t.Direction == ledger.DirCredit {
			err = s.balances.Credit(tx, balance.ID, t.Amount)
		} else {
			err = s.balances.Debit(tx, balance.ID, t.Amount)
		}
		if err != nil {
			return fmt.Errorf("apply %s: %w", t.Direction, err)
		}

		bt.Status = ledger.StatusCompleted

		err = s.ledger.MarkBalanceTx(tx, bt.ID, ledger.StatusCompleted, t.ApprovedBy)
		if err != nil {
			return fmt.Errorf("mark completed: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("process transfer: %w", err)
	}

	s.notifyResult(ctx, t, bt)

	if bt.Status == ledger.StatusFailed {
		return bt, balances.ErrInsufficientFunds
	}

	return bt, nil
}

func (s *Service) notifyResult(ctx context.Context, t Transfer, bt *ledger.BalanceTx) {
	if s.notifier == nil || t.Recipient == "" {
		return
	}

	subject := fmt.Sprintf("%s %s", t.Kind, bt.Status)
	body := fmt.Sprintf("Your %s of %d.%02d was %s.", t.Kind, t.Amount/100, t.Amount%100, bt.Status)

	err := s.notifier.Send(ctx, t.Recipient, subject, body)
	if err != nil {
		// The settlement already committed; delivery is best effort.
		slog.Warn("notification delivery failed", "recipient", t.Recipient, "error", err)
	}
}

// GetBalance returns the user's balance without locks.
func (s *Service) GetBalance(ctx context.Context, userID uint64) (*balances.Balance, error) {
	b, err := s.balances.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, balances.ErrBalanceNotFound) {
			return nil, err
		}

		return nil, fmt.Errorf("get balance: %w", err)
	}

	return b, nil
}

// History returns the user's most recent game settlements.
func (s *Service) History(ctx context.Context, userID uint64, limit int) ([]ledger.GameEntry, error) {
	entries, err := s.ledger.ListGameEntries(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	return entries, nil
}
