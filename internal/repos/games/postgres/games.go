package games

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/gamehall/internal/repos/games"
)

var _ games.Games = (*gamesRepo)(nil)

type gamesRepo struct{ db *sql.DB }

func New(db *sql.DB) *gamesRepo {
	return &gamesRepo{db: db}
}

func (r *gamesRepo) GetByName(ctx context.Context, name string) (*games.Game, error) {
	g := new(games.Game)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, min_bet, max_bet, status
		FROM games
		WHERE name = $1
	`, name).Scan(&g.ID, &g.Name, &g.MinBet, &g.MaxBet, &g.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, games.ErrGameNotFound
		}

		return nil, fmt.Errorf("get game: %w", err)
	}

	return g, nil
}
