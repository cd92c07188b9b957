// Package wager orchestrates game rounds: it validates bets, runs the game
// engines against the session store and profit policy, and turns outcomes
// into ledger settlements.
//
// Game dispatch is over the enumerated session kind plus one method per
// engine; nothing branches on free-form game names.
package wager

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/fastprodman/gamehall/internal/repos/balances"
	"github.com/fastprodman/gamehall/internal/repos/games"
	"github.com/fastprodman/gamehall/internal/repos/users"
	"github.com/fastprodman/gamehall/internal/services/profit"
	"github.com/fastprodman/gamehall/internal/services/settlement"
	"github.com/fastprodman/gamehall/internal/sessions"
)

var (
	ErrInvalidBet          = errors.New("invalid bet amount")
	ErrInvalidSessionState = errors.New("invalid session state")
	ErrInvalidAction       = errors.New("invalid action parameters")
)

// BetCeiling is the hard cap on any single bet regardless of the game's own
// maximum: 10,000.00 in minor units.
const BetCeiling = 1_000_000

type Service struct {
	users    users.Users
	games    games.Games
	balances balances.Balances
	store    sessions.Store
	settle   *settlement.Service
	policy   *profit.Policy

	betCeiling int64
	newRNG     func() *rand.Rand
}

func New(u users.Users, g games.Games, b balances.Balances, store sessions.Store,
	settle *settlement.Service, policy *profit.Policy,
) *Service {
	return &Service{
		users:      u,
		games:      g,
		balances:   b,
		store:      store,
		settle:     settle,
		policy:     policy,
		betCeiling: BetCeiling,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// validateBet is the gate in front of every opening action. Pure guard, no
// side effects.
func (s *Service) validateBet(ctx context.Context, userID uint64, gameName string, amount int64) (*games.Game, *balances.Balance, error) {
	_, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve user: %w", err)
	}

	game, err := s.games.GetByName(ctx, gameName)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve game: %w", err)
	}

	if game.Status != games.StatusActive {
		return nil, nil, fmt.Errorf("game %q: %w", gameName, games.ErrGameClosed)
	}

	if amount <= 0 || amount < game.MinBet || amount > game.MaxBet || amount > s.betCeiling {
		return nil, nil, fmt.Errorf("bet %d outside [%d, %d]: %w",
			amount, game.MinBet, min(game.MaxBet, s.betCeiling), ErrInvalidBet)
	}

	balance, err := s.balances.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve balance: %w", err)
	}

	if balance.Available < amount {
		return nil, nil, fmt.Errorf("available %d < bet %d: %w",
			balance.Available, amount, balances.ErrInsufficientFunds)
	}

	return game, balance, nil
}

// openSession creates the session and debits the stake. If the debit fails
// the session is rolled back so the slot frees up immediately.
func (s *Service) openSession(ctx context.Context, userID uint64, kind sessions.Kind, gameID uint64, bet int64, state json.RawMessage) error {
	sess := &sessions.Session{
		UserID: userID,
		Kind:   kind,
		Bet:    bet,
		State:  state,
	}

	err := s.store.Create(ctx, sess)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	err = s.settle.SettleGame(ctx, userID, gameID, bet, settlement.OutcomeLoss, string(kind)+" bet")
	if err != nil {
		_ = s.store.Destroy(ctx, userID, kind)

		return fmt.Errorf("debit stake: %w", err)
	}

	return nil
}

// creditWin settles a winning resolution. A zero amount records nothing: the
// stake debit is already the loss entry.
func (s *Service) creditWin(ctx context.Context, userID, gameID uint64, amount int64, description string) error {
	if amount <= 0 {
		return nil
	}

	err := s.settle.SettleGame(ctx, userID, gameID, amount, settlement.OutcomeWin, description)
	if err != nil {
		return fmt.Errorf("credit win: %w", err)
	}

	return nil
}

func marshalState(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal game state: %w", err)
	}

	return raw, nil
}

func unmarshalState(raw json.RawMessage, v any) error {
	err := json.Unmarshal(raw, v)
	if err != nil {
		return fmt.Errorf("unmarshal game state: %w", err)
	}

	return nil
}
