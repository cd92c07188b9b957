package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fastprodman/gamehall/internal/infra/pgtestutil"
	"github.com/fastprodman/gamehall/internal/repos/users"
)

func seedUser(t *testing.T, db *sql.DB, id uint64, name, email string) {
	t.Helper()

	_, err := db.Exec(`INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`, id, name, email)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func TestUsers_GetByID_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		seed      func(db *sql.DB, t *testing.T)
		userID    uint64
		wantEmail string
		wantErr   error
	}{
		{
			name: "user_exists",
			seed: func(db *sql.DB, t *testing.T) {
				seedUser(t, db, 1, "Alice", "alice@example.com")
			},
			userID:    1,
			wantEmail: "alice@example.com",
		},
		{
			name:    "user_not_found",
			seed:    func(_ *sql.DB, _ *testing.T) {},
			userID:  999,
			wantErr: users.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			tt.seed(db, t)

			repo := New(db)

			ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
			defer cancel()

			u, err := repo.GetByID(ctx, tt.userID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.Email != tt.wantEmail {
				t.Fatalf("email mismatch: want %s, got %s", tt.wantEmail, u.Email)
			}
		})
	}
}

func TestUsers_Exists(t *testing.T) {
	t.Parallel()

	db, cleanup := pgtestutil.NewTestDB(t)
	defer cleanup()

	seedUser(t, db, 7, "Bob", "bob@example.com")

	repo := New(db)

	tx, err := db.BeginTx(t.Context(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() { _ = tx.Rollback() }()

	err = repo.Exists(tx, 7)
	if err != nil {
		t.Fatalf("exists on seeded user: %v", err)
	}

	err = repo.Exists(tx, 8)
	if !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}
}
