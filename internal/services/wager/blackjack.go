package wager

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastprodman/gamehall/internal/games/blackjack"
	"github.com/fastprodman/gamehall/internal/games/deck"
	"github.com/fastprodman/gamehall/internal/sessions"
)

// BlackjackView is the public projection of a blackjack session. The
// dealer's hole card is masked until the hand resolves.
type BlackjackView struct {
	State       string   `json:"state"`
	PlayerCards []string `json:"playerCards"`
	PlayerScore int      `json:"playerScore"`
	DealerCards []string `json:"dealerCards"`
	DealerScore int      `json:"dealerScore,omitempty"`
	Winner      string   `json:"winner,omitempty"`
	WinAmount   int64    `json:"winAmount,omitempty"`
}

func (s *Service) BlackjackDeal(ctx context.Context, userID uint64, bet int64) (*BlackjackView, error) {
	game, _, err := s.validateBet(ctx, userID, "blackjack", bet)
	if err != nil {
		return nil, err
	}

	g := blackjack.Deal(s.newRNG())

	state, err := marshalState(g)
	if err != nil {
		return nil, err
	}

	err = s.openSession(ctx, userID, sessions.KindBlackjack, game.ID, bet, state)
	if err != nil {
		return nil, err
	}

	return blackjackView(g, bet, nil), nil
}

func (s *Service) BlackjackHit(ctx context.Context, userID uint64) (*BlackjackView, error) {
	return s.blackjackAct(ctx, userID, func(g *blackjack.Game) (*blackjack.Outcome, error) {
		return g.Hit()
	})
}

func (s *Service) BlackjackStand(ctx context.Context, userID uint64) (*BlackjackView, error) {
	return s.blackjackAct(ctx, userID, func(g *blackjack.Game) (*blackjack.Outcome, error) {
		return g.Stand()
	})
}

func (s *Service) blackjackAct(ctx context.Context, userID uint64, act func(*blackjack.Game) (*blackjack.Outcome, error)) (*BlackjackView, error) {
	sess, err := s.store.Get(ctx, userID, sessions.KindBlackjack)
	if err != nil {
		return nil, fmt.Errorf("blackjack session: %w", err)
	}

	g := new(blackjack.Game)

	err = unmarshalState(sess.State, g)
	if err != nil {
		return nil, err
	}

	out, err := act(g)
	if err != nil {
		if errors.Is(err, blackjack.ErrWrongState) {
			return nil, fmt.Errorf("session is in state %q: %w", g.State, ErrInvalidSessionState)
		}

		return nil, err
	}

	if out == nil {
		state, err := marshalState(g)
		if err != nil {
			return nil, err
		}

		err = s.store.Touch(ctx, userID, sessions.KindBlackjack, state)
		if err != nil {
			return nil, fmt.Errorf("touch session: %w", err)
		}

		return blackjackView(g, sess.Bet, nil), nil
	}

	// Terminal: the session is gone whatever the settlement does.
	err = s.store.Destroy(ctx, userID, sessions.KindBlackjack)
	if err != nil {
		return nil, fmt.Errorf("destroy session: %w", err)
	}

	game, err := s.games.GetByName(ctx, "blackjack")
	if err != nil {
		return nil, fmt.Errorf("resolve game: %w", err)
	}

	winAmount := out.PayoutUnits * sess.Bet

	err = s.creditWin(ctx, userID, game.ID, winAmount, fmt.Sprintf("blackjack %s", out.Winner))
	if err != nil {
		return nil, err
	}

	return blackjackView(g, sess.Bet, out), nil
}

func blackjackView(g *blackjack.Game, bet int64, out *blackjack.Outcome) *BlackjackView {
	view := &BlackjackView{
		State:       string(g.State),
		PlayerCards: cardStrings(g.Player),
		PlayerScore: blackjack.Score(g.Player),
	}

	if out == nil {
		// Hole card stays hidden mid-hand.
		view.DealerCards = []string{g.Dealer[0].String(), "hidden"}

		return view
	}

	view.DealerCards = cardStrings(g.Dealer)
	view.DealerScore = out.DealerScore
	view.Winner = string(out.Winner)
	view.WinAmount = out.PayoutUnits * bet

	return view
}

func cardStrings(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}

	return out
}
