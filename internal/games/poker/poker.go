// Package poker implements 5-card draw against the dealer: one deal, one
// draw round, then showdown.
package poker

import (
	"errors"
	"math/rand/v2"

	"github.com/fastprodman/gamehall/internal/games/deck"
)

var (
	ErrWrongState  = errors.New("poker: action not allowed in current state")
	ErrInvalidHold = errors.New("poker: hold index out of range")
)

type State string

const (
	StateDraw     State = "draw"
	StateShowdown State = "showdown"
)

type Winner string

const (
	WinnerPlayer Winner = "Player"
	WinnerDealer Winner = "Dealer"
	WinnerPush   Winner = "Push"
)

type Game struct {
	State  State       `json:"state"`
	Player []deck.Card `json:"player"`
	Dealer []deck.Card `json:"dealer"`
	Deck   []deck.Card `json:"deck"`
}

// Outcome of a showdown. PayoutUnits is in bet multiples: 2 win, 1 push, 0 loss.
type Outcome struct {
	Winner      Winner
	PayoutUnits int64
	PlayerHand  Hand
	DealerHand  Hand
}

// Deal gives 5 cards to the player and 5 hidden cards to the dealer from a
// fresh shuffled deck.
func Deal(rng *rand.Rand) *Game {
	cards := deck.New(rng)

	return &Game{
		State:  StateDraw,
		Player: deck.Draw(&cards, 5),
		Dealer: deck.Draw(&cards, 5),
		Deck:   cards,
	}
}

// Draw replaces every player card position not listed in hold with a fresh
// card, then runs the showdown.
func (g *Game) Draw(hold []int) (*Outcome, error) {
	if g.State != StateDraw {
		return nil, ErrWrongState
	}

	held := make(map[int]bool, len(hold))
	for _, idx := range hold {
		if idx < 0 || idx >= len(g.Player) {
			return nil, ErrInvalidHold
		}
		held[idx] = true
	}

	for i := range g.Player {
		if !held[i] {
			g.Player[i] = deck.Draw(&g.Deck, 1)[0]
		}
	}

	g.State = StateShowdown

	playerHand := Evaluate(g.Player)
	dealerHand := Evaluate(g.Dealer)

	out := &Outcome{PlayerHand: playerHand, DealerHand: dealerHand}

	switch Compare(playerHand, dealerHand) {
	case 1:
		out.Winner, out.PayoutUnits = WinnerPlayer, 2
	case -1:
		out.Winner = WinnerDealer
	default:
		out.Winner, out.PayoutUnits = WinnerPush, 1
	}

	return out, nil
}
