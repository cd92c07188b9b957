package wager

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastprodman/gamehall/internal/games/poker"
	"github.com/fastprodman/gamehall/internal/sessions"
)

// PokerView is the public projection of a 5-card-draw session. Dealer cards
// stay hidden until showdown.
type PokerView struct {
	State       string   `json:"state"`
	PlayerCards []string `json:"playerCards"`
	PlayerHand  string   `json:"playerHand,omitempty"`
	DealerCards []string `json:"dealerCards,omitempty"`
	DealerHand  string   `json:"dealerHand,omitempty"`
	Winner      string   `json:"winner,omitempty"`
	WinAmount   int64    `json:"winAmount,omitempty"`
}

func (s *Service) PokerDeal(ctx context.Context, userID uint64, bet int64) (*PokerView, error) {
	game, _, err := s.validateBet(ctx, userID, "poker", bet)
	if err != nil {
		return nil, err
	}

	g := poker.Deal(s.newRNG())

	state, err := marshalState(g)
	if err != nil {
		return nil, err
	}

	err = s.openSession(ctx, userID, sessions.KindPoker, game.ID, bet, state)
	if err != nil {
		return nil, err
	}

	return &PokerView{
		State:       string(g.State),
		PlayerCards: cardStrings(g.Player),
	}, nil
}

func (s *Service) PokerDraw(ctx context.Context, userID uint64, hold []int) (*PokerView, error) {
	sess, err := s.store.Get(ctx, userID, sessions.KindPoker)
	if err != nil {
		return nil, fmt.Errorf("poker session: %w", err)
	}

	g := new(poker.Game)

	err = unmarshalState(sess.State, g)
	if err != nil {
		return nil, err
	}

	out, err := g.Draw(hold)
	if err != nil {
		switch {
		case errors.Is(err, poker.ErrWrongState):
			return nil, fmt.Errorf("session is in state %q: %w", g.State, ErrInvalidSessionState)
		case errors.Is(err, poker.ErrInvalidHold):
			return nil, fmt.Errorf("hold indices: %w", ErrInvalidAction)
		}

		return nil, err
	}

	err = s.store.Destroy(ctx, userID, sessions.KindPoker)
	if err != nil {
		return nil, fmt.Errorf("destroy session: %w", err)
	}

	game, err := s.games.GetByName(ctx, "poker")
	if err != nil {
		return nil, fmt.Errorf("resolve game: %w", err)
	}

	winAmount := out.PayoutUnits * sess.Bet

	err = s.creditWin(ctx, userID, game.ID, winAmount, fmt.Sprintf("poker %s", out.Winner))
	if err != nil {
		return nil, err
	}

	return &PokerView{
		State:       string(g.State),
		PlayerCards: cardStrings(g.Player),
		PlayerHand:  out.PlayerHand.Rank.String(),
		DealerCards: cardStrings(g.Dealer),
		DealerHand:  out.DealerHand.Rank.String(),
		Winner:      string(out.Winner),
		WinAmount:   winAmount,
	}, nil
}
