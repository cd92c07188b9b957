package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fastprodman/gamehall/internal/repos/ledger"
)

var _ ledger.Ledger = (*ledgerRepo)(nil)

type ledgerRepo struct{ db *sql.DB }

func New(db *sql.DB) *ledgerRepo {
	return &ledgerRepo{db: db}
}

func (r *ledgerRepo) InsertGameEntry(tx *sql.Tx, entry *ledger.GameEntry) error {
	_, err := tx.Exec(`
		INSERT INTO game_history
			(id, user_id, account_id, balance_id, game_id, type, direction, amount, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, entry.ID, entry.UserID, entry.AccountID, entry.BalanceID, entry.GameID,
		entry.Type, entry.Direction, entry.Amount, entry.Description)
	if err != nil {
		return fmt.Errorf("insert game entry: %w", err)
	}

	return nil
}

func (r *ledgerRepo) ListGameEntries(ctx context.Context, userID uint64, limit int) ([]ledger.GameEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, account_id, balance_id, game_id, type, direction,
		       amount, description, created_at
		FROM game_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list game entries: %w", err)
	}
	defer rows.Close()

	var entries []ledger.GameEntry

	for rows.Next() {
		var e ledger.GameEntry

		err = rows.Scan(&e.ID, &e.UserID, &e.AccountID, &e.BalanceID, &e.GameID,
			&e.Type, &e.Direction, &e.Amount, &e.Description, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan game entry: %w", err)
		}

		entries = append(entries, e)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate game entries: %w", err)
	}

	return entries, nil
}

func (r *ledgerRepo) InsertBalanceTx(tx *sql.Tx, bt *ledger.BalanceTx) error {
	_, err := tx.Exec(`
		INSERT INTO balance_transactions
			(id, user_id, account_id, balance_id, type, direction, amount, status, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, bt.ID, bt.UserID, bt.AccountID, bt.BalanceID, bt.Kind, bt.Direction,
		bt.Amount, bt.Status, bt.Description)
	if err != nil {
		return fmt.Errorf("insert balance tx: %w", err)
	}

	return nil
}

func (r *ledgerRepo) MarkBalanceTx(tx *sql.Tx, id uuid.UUID, status ledger.TxStatus, approvedBy string) error {
	res, err := tx.Exec(`
		UPDATE balance_transactions
		SET status = $2,
		    approved_by = CASE WHEN $2 = 'completed' THEN $3 ELSE approved_by END,
		    approved_at = CASE WHEN $2 = 'completed' THEN NOW() ELSE approved_at END
		WHERE id = $1
	`, id, status, approvedBy)
	if err != nil {
		return fmt.Errorf("mark balance tx: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return ledger.ErrEntryNotFound
	}

	return nil
}
