package wager

import (
	"context"
	"fmt"

	"github.com/fastprodman/gamehall/internal/games/slot"
	"github.com/fastprodman/gamehall/internal/services/settlement"
)

type SlotView struct {
	Symbols   [3]string    `json:"symbols"`
	Reels     [3][6]string `json:"reels"`
	IsWin     bool         `json:"isWin"`
	WinAmount int64        `json:"winAmount"`
}

// SlotSpin is a single-shot round gated by the profit policy: constrained
// spins cannot win, and even unconstrained wins are capped by the house's
// current payout headroom.
func (s *Service) SlotSpin(ctx context.Context, userID uint64, bet int64) (*SlotView, error) {
	game, _, err := s.validateBet(ctx, userID, "slot", bet)
	if err != nil {
		return nil, err
	}

	constrained := s.policy.ConstrainWins(ctx)

	var headroom int64
	if !constrained {
		headroom = s.policy.Headroom(ctx)
	}

	res := slot.Spin(s.newRNG(), bet, constrained, headroom)

	view := &SlotView{IsWin: res.IsWin}
	for i := range res.Symbols {
		view.Symbols[i] = string(res.Symbols[i])
		for j, sym := range res.Reels[i] {
			view.Reels[i][j] = string(sym)
		}
	}

	if res.IsWin {
		view.WinAmount = bet * res.Multiplier

		err = s.settle.SettleGame(ctx, userID, game.ID, view.WinAmount, settlement.OutcomeWin,
			fmt.Sprintf("slot %s win", res.Symbols[0]))
	} else {
		err = s.settle.SettleGame(ctx, userID, game.ID, bet, settlement.OutcomeLoss, "slot loss")
	}
	if err != nil {
		return nil, err
	}

	return view, nil
}
