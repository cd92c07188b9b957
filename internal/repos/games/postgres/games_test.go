package games

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fastprodman/gamehall/internal/infra/pgtestutil"
	"github.com/fastprodman/gamehall/internal/repos/games"
)

func TestGames_GetByName_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		gameName   string
		close      bool
		wantStatus games.Status
		wantErr    error
	}{
		{name: "blackjack_seeded_active", gameName: "blackjack", wantStatus: games.StatusActive},
		{name: "dice_seeded_active", gameName: "dice", wantStatus: games.StatusActive},
		{name: "closed_game_still_returned", gameName: "slot", close: true, wantStatus: games.StatusClosed},
		{name: "unknown_game", gameName: "roulette", wantErr: games.ErrGameNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			db, cleanup := pgtestutil.NewTestDB(t)
			defer cleanup()

			if tt.close {
				_, err := db.Exec(`UPDATE games SET status = 'closed' WHERE name = $1`, tt.gameName)
				if err != nil {
					t.Fatalf("close game: %v", err)
				}
			}

			repo := New(db)

			ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
			defer cancel()

			g, err := repo.GetByName(ctx, tt.gameName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g.Name != tt.gameName || g.Status != tt.wantStatus {
				t.Fatalf("game mismatch: %+v", g)
			}
			if g.MinBet <= 0 || g.MaxBet < g.MinBet {
				t.Fatalf("bad bet bounds: %+v", g)
			}
		})
	}
}
