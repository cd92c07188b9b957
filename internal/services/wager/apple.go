package wager

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastprodman/gamehall/internal/games/apple"
	"github.com/fastprodman/gamehall/internal/sessions"
)

type AppleView struct {
	State     string `json:"state"`
	Level     int    `json:"level"`
	Banked    int64  `json:"banked"`
	Dead      bool   `json:"dead,omitempty"`
	BadApples []int  `json:"badApples,omitempty"`
	WinAmount int64  `json:"winAmount,omitempty"`
}

func (s *Service) AppleStart(ctx context.Context, userID uint64, bet int64) (*AppleView, error) {
	game, _, err := s.validateBet(ctx, userID, "apple", bet)
	if err != nil {
		return nil, err
	}

	g := apple.Start(bet)

	state, err := marshalState(g)
	if err != nil {
		return nil, err
	}

	err = s.openSession(ctx, userID, sessions.KindApple, game.ID, bet, state)
	if err != nil {
		return nil, err
	}

	return &AppleView{State: string(g.State), Level: g.Level}, nil
}

func (s *Service) ApplePick(ctx context.Context, userID uint64, level, index int) (*AppleView, error) {
	sess, err := s.store.Get(ctx, userID, sessions.KindApple)
	if err != nil {
		return nil, fmt.Errorf("apple session: %w", err)
	}

	g := new(apple.Game)

	err = unmarshalState(sess.State, g)
	if err != nil {
		return nil, err
	}

	out, err := g.Pick(s.newRNG(), level, index)
	if err != nil {
		switch {
		case errors.Is(err, apple.ErrWrongState):
			return nil, fmt.Errorf("session is in state %q: %w", g.State, ErrInvalidSessionState)
		case errors.Is(err, apple.ErrWrongLevel), errors.Is(err, apple.ErrBadIndex):
			return nil, fmt.Errorf("%v: %w", err, ErrInvalidAction)
		}

		return nil, err
	}

	if out == nil {
		state, err := marshalState(g)
		if err != nil {
			return nil, err
		}

		err = s.store.Touch(ctx, userID, sessions.KindApple, state)
		if err != nil {
			return nil, fmt.Errorf("touch session: %w", err)
		}

		return &AppleView{State: string(g.State), Level: g.Level, Banked: g.Banked}, nil
	}

	// Terminal: either a bad apple (stake already debited, nothing to pay)
	// or a level-10 auto-cashout.
	err = s.store.Destroy(ctx, userID, sessions.KindApple)
	if err != nil {
		return nil, fmt.Errorf("destroy session: %w", err)
	}

	view := &AppleView{
		State:     string(g.State),
		Level:     g.Level,
		Banked:    g.Banked,
		Dead:      out.Dead,
		BadApples: out.BadApples,
		WinAmount: out.WinAmount,
	}

	if out.WinAmount > 0 {
		game, err := s.games.GetByName(ctx, "apple")
		if err != nil {
			return nil, fmt.Errorf("resolve game: %w", err)
		}

		err = s.creditWin(ctx, userID, game.ID, out.WinAmount, "apple ladder complete")
		if err != nil {
			return nil, err
		}
	}

	return view, nil
}

func (s *Service) AppleCashout(ctx context.Context, userID uint64) (*AppleView, error) {
	sess, err := s.store.Get(ctx, userID, sessions.KindApple)
	if err != nil {
		return nil, fmt.Errorf("apple session: %w", err)
	}

	g := new(apple.Game)

	err = unmarshalState(sess.State, g)
	if err != nil {
		return nil, err
	}

	banked, err := g.Cashout()
	if err != nil {
		return nil, fmt.Errorf("session is in state %q: %w", g.State, ErrInvalidSessionState)
	}

	err = s.store.Destroy(ctx, userID, sessions.KindApple)
	if err != nil {
		return nil, fmt.Errorf("destroy session: %w", err)
	}

	if banked > 0 {
		game, err := s.games.GetByName(ctx, "apple")
		if err != nil {
			return nil, fmt.Errorf("resolve game: %w", err)
		}

		err = s.creditWin(ctx, userID, game.ID, banked, "apple cashout")
		if err != nil {
			return nil, err
		}
	}

	return &AppleView{State: string(g.State), Level: g.Level, WinAmount: banked}, nil
}
