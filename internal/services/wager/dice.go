package wager

import (
	"context"
	"errors"
	"fmt"

	"github.com/fastprodman/gamehall/internal/games/dice"
	"github.com/fastprodman/gamehall/internal/services/settlement"
)

type DiceView struct {
	Dice       []int  `json:"dice"`
	Sum        int    `json:"sum"`
	ExactValue int    `json:"exactValue"`
	BetType    string `json:"betType"`
	IsWin      bool   `json:"isWin"`
	WinAmount  int64  `json:"winAmount"`
}

// DiceRoll is a single-shot round: one settlement, no session.
func (s *Service) DiceRoll(ctx context.Context, userID uint64, bet int64, betType string, numDice int) (*DiceView, error) {
	game, _, err := s.validateBet(ctx, userID, "dice", bet)
	if err != nil {
		return nil, err
	}

	if numDice == 0 {
		numDice = dice.DefaultCount
	}

	res, err := dice.Play(s.newRNG(), numDice, dice.BetType(betType))
	if err != nil {
		if errors.Is(err, dice.ErrInvalidBetType) || errors.Is(err, dice.ErrInvalidCount) {
			return nil, fmt.Errorf("%v: %w", err, ErrInvalidAction)
		}

		return nil, err
	}

	view := &DiceView{
		Dice:       res.Dice,
		Sum:        res.Sum,
		ExactValue: res.ExactValue,
		BetType:    string(res.BetType),
		IsWin:      res.IsWin,
	}

	if res.IsWin {
		view.WinAmount = bet * res.Multiplier

		err = s.settle.SettleGame(ctx, userID, game.ID, view.WinAmount, settlement.OutcomeWin,
			fmt.Sprintf("dice %s win", res.BetType))
	} else {
		err = s.settle.SettleGame(ctx, userID, game.ID, bet, settlement.OutcomeLoss,
			fmt.Sprintf("dice %s loss", res.BetType))
	}
	if err != nil {
		return nil, err
	}

	return view, nil
}
