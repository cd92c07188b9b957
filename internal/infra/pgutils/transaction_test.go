package pgutils

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/fastprodman/gamehall/internal/infra/pgtestutil"
)

func TestWithTx_CommitsOnNil(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	err := WithTx(t.Context(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO users (id, name, email) VALUES (1, 'Tx User', 'tx@example.com')`)
		return err
	})
	if err != nil {
		t.Fatalf("with tx: %v", err)
	}

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM users WHERE id = 1`).Scan(&n)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("insert not committed: count=%d", n)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	boom := errors.New("boom")

	err := WithTx(t.Context(), db, func(tx *sql.Tx) error {
		_, ierr := tx.Exec(`INSERT INTO users (id, name, email) VALUES (1, 'Tx User', 'tx@example.com')`)
		if ierr != nil {
			return ierr
		}

		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want wrapped fn error, got %v", err)
	}

	var n int
	err = db.QueryRow(`SELECT COUNT(*) FROM users WHERE id = 1`).Scan(&n)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("insert must be rolled back: count=%d", n)
	}
}
