package profit

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/fastprodman/gamehall/internal/infra/pgtestutil"
)

func seedProfitFixtures(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO users (id, name, email) VALUES (1, 'Profit User', 'profit@example.com')`)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	var accountID, balanceID, gameID uint64

	err = db.QueryRow(`INSERT INTO accounts (user_id) VALUES (1) RETURNING id`).Scan(&accountID)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	err = db.QueryRow(`
		INSERT INTO balances (account_id, available, withdrawable)
		VALUES ($1, 10000, 7000)
		RETURNING id
	`, accountID).Scan(&balanceID)
	if err != nil {
		t.Fatalf("seed balance: %v", err)
	}

	err = db.QueryRow(`SELECT id FROM games WHERE name = 'slot'`).Scan(&gameID)
	if err != nil {
		t.Fatalf("resolve game: %v", err)
	}

	// 1000 wagered, 400 paid back: house is 600 up.
	_, err = db.Exec(`
		INSERT INTO game_history (id, user_id, account_id, balance_id, game_id, type, direction, amount)
		VALUES
			($1, 1, $3, $4, $5, 'loss', 'debit', 1000),
			($2, 1, $3, $4, $5, 'win', 'credit', 400)
	`, uuid.New(), uuid.New(), accountID, balanceID, gameID)
	if err != nil {
		t.Fatalf("seed history: %v", err)
	}

	// One completed deposit, one completed withdrawal, one failed withdrawal
	// that must not count.
	_, err = db.Exec(`
		INSERT INTO balance_transactions (id, user_id, account_id, balance_id, type, direction, amount, status)
		VALUES
			($1, 1, $4, $5, 'deposit', 'credit', 5000, 'completed'),
			($2, 1, $4, $5, 'withdrawal', 'debit', 2000, 'completed'),
			($3, 1, $4, $5, 'withdrawal', 'debit', 9000, 'failed')
	`, uuid.New(), uuid.New(), uuid.New(), accountID, balanceID)
	if err != nil {
		t.Fatalf("seed transactions: %v", err)
	}
}

func TestProfit_RecomputeAndGet(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedProfitFixtures(t, db)

	repo := New(db)

	err := repo.Recompute(t.Context(), 5)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}

	agg, err := repo.Get(t.Context())
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if agg.TotalDeposits != 5000 {
		t.Fatalf("total deposits: want 5000, got %d", agg.TotalDeposits)
	}
	if agg.TotalWithdrawals != 2000 {
		t.Fatalf("total withdrawals: want 2000, got %d", agg.TotalWithdrawals)
	}
	if agg.TotalWithdrawableBalance != 7000 {
		t.Fatalf("withdrawable balance: want 7000, got %d", agg.TotalWithdrawableBalance)
	}
	if agg.TotalProfit != 600 {
		t.Fatalf("total profit: want 600, got %d", agg.TotalProfit)
	}
	// 5% of the 1000 wagered.
	if agg.ExpectingProfit != 50 {
		t.Fatalf("expecting profit: want 50, got %d", agg.ExpectingProfit)
	}
	if agg.RefreshedAt.IsZero() {
		t.Fatal("refreshed_at not stamped")
	}
}

// A second recompute over the same ledger must land on the same numbers.
func TestProfit_Recompute_Idempotent(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedProfitFixtures(t, db)

	repo := New(db)

	err := repo.Recompute(t.Context(), 5)
	if err != nil {
		t.Fatalf("first recompute: %v", err)
	}

	first, err := repo.Get(t.Context())
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	err = repo.Recompute(t.Context(), 5)
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}

	second, err := repo.Get(t.Context())
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if first.TotalProfit != second.TotalProfit || first.ExpectingProfit != second.ExpectingProfit {
		t.Fatalf("recompute drifted: %+v vs %+v", first, second)
	}
}
