// Package blackjack implements a single-hand blackjack state machine played
// against the dealer. The Game struct round-trips through JSON so it can live
// in the session store between player actions.
package blackjack

import (
	"errors"
	"math/rand/v2"

	"github.com/fastprodman/gamehall/internal/games/deck"
)

var ErrWrongState = errors.New("blackjack: action not allowed in current state")

type State string

const (
	StatePlayerTurn State = "playerTurn"
	StateGameOver   State = "gameOver"
)

type Winner string

const (
	WinnerPlayer Winner = "Player"
	WinnerDealer Winner = "Dealer"
	WinnerPush   Winner = "Push"
)

const dealerStandMin = 17

type Game struct {
	State  State       `json:"state"`
	Player []deck.Card `json:"player"`
	Dealer []deck.Card `json:"dealer"`
	Deck   []deck.Card `json:"deck"`
}

// Outcome describes a resolved hand. PayoutUnits is in bet multiples:
// 2 for a win, 1 for a push (stake returned), 0 for a dealer win.
type Outcome struct {
	Winner      Winner
	PayoutUnits int64
	PlayerScore int
	DealerScore int
}

// Deal shuffles a fresh deck and deals two cards each. The dealer's second
// card stays hidden until Stand.
func Deal(rng *rand.Rand) *Game {
	cards := deck.New(rng)

	return &Game{
		State:  StatePlayerTurn,
		Player: deck.Draw(&cards, 2),
		Dealer: deck.Draw(&cards, 2),
		Deck:   cards,
	}
}

// Score totals a hand. Aces count 11 and are reduced to 1 one at a time while
// the total busts.
func Score(cards []deck.Card) int {
	total := 0
	aces := 0

	for _, c := range cards {
		switch {
		case c.Rank == deck.Ace:
			total += 11
			aces++
		case c.Rank >= deck.Ten:
			total += 10
		default:
			total += int(c.Rank)
		}
	}

	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}

	return total
}

// Hit draws one card into the player's hand. At a total of 21 or more the
// hand stands automatically and the returned outcome is non-nil.
func (g *Game) Hit() (*Outcome, error) {
	if g.State != StatePlayerTurn {
		return nil, ErrWrongState
	}

	g.Player = append(g.Player, deck.Draw(&g.Deck, 1)...)

	if Score(g.Player) >= 21 {
		return g.resolve(), nil
	}

	return nil, nil
}

// Stand reveals the dealer's hole card, draws the dealer to 17, and compares.
func (g *Game) Stand() (*Outcome, error) {
	if g.State != StatePlayerTurn {
		return nil, ErrWrongState
	}

	return g.resolve(), nil
}

func (g *Game) resolve() *Outcome {
	g.State = StateGameOver

	for Score(g.Dealer) < dealerStandMin {
		g.Dealer = append(g.Dealer, deck.Draw(&g.Deck, 1)...)
	}

	playerScore := Score(g.Player)
	dealerScore := Score(g.Dealer)

	out := &Outcome{PlayerScore: playerScore, DealerScore: dealerScore}

	switch {
	case playerScore > 21:
		out.Winner = WinnerDealer
	case dealerScore > 21:
		out.Winner, out.PayoutUnits = WinnerPlayer, 2
	case playerScore > dealerScore:
		out.Winner, out.PayoutUnits = WinnerPlayer, 2
	case dealerScore > playerScore:
		out.Winner = WinnerDealer
	default:
		out.Winner, out.PayoutUnits = WinnerPush, 1
	}

	return out
}
