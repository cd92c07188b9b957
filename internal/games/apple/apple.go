// Package apple implements the level-climb "fortune apple" game: ten levels
// of apples, each hiding a scaling number of bad picks, with a multiplier
// ladder and a cashout at any point.
package apple

import (
	"errors"
	"math/rand/v2"
)

var (
	ErrWrongState = errors.New("apple: action not allowed in current state")
	ErrWrongLevel = errors.New("apple: pick level does not match session level")
	ErrBadIndex   = errors.New("apple: apple index out of range")
)

type State string

const (
	StatePlaying  State = "playing"
	StateGameOver State = "gameOver"
)

const (
	MaxLevel       = 10
	ApplesPerLevel = 5
)

// multipliersTenths holds the payout ladder in tenths: level 1 pays 1.2x the
// bet, level 10 pays 50x.
var multipliersTenths = [MaxLevel]int64{12, 15, 20, 30, 50, 80, 120, 200, 300, 500}

// Payout returns bet scaled by the ladder multiplier for level (1-based).
func Payout(bet int64, level int) int64 {
	return bet * multipliersTenths[level-1] / 10
}

// badCount is the number of bad apples hidden at a level: one for levels
// 1-3, two for 4-6, three for 7-9, four at level 10.
func badCount(level int) int {
	switch {
	case level <= 3:
		return 1
	case level <= 6:
		return 2
	case level <= 9:
		return 3
	default:
		return 4
	}
}

type Game struct {
	State  State `json:"state"`
	Level  int   `json:"level"`
	Banked int64 `json:"banked"`
	Bet    int64 `json:"bet"`
}

type Outcome struct {
	Dead      bool  `json:"dead"`
	BadApples []int `json:"badApples"`
	WinAmount int64 `json:"winAmount"`
}

// Start opens a game at level 1 with nothing banked yet.
func Start(bet int64) *Game {
	return &Game{State: StatePlaying, Level: 1, Bet: bet}
}

// Pick reveals the apple at index on the claimed level. A bad pick ends the
// game with zero payout; a good pick banks the level multiplier and climbs.
// Past level 10 the game auto-terminates with the level-10 payout. The
// returned outcome is nil while the game continues.
func (g *Game) Pick(rng *rand.Rand, level, index int) (*Outcome, error) {
	if g.State != StatePlaying {
		return nil, ErrWrongState
	}
	if level != g.Level {
		return nil, ErrWrongLevel
	}
	if index < 0 || index >= ApplesPerLevel {
		return nil, ErrBadIndex
	}

	bad := rng.Perm(ApplesPerLevel)[:badCount(level)]

	for _, b := range bad {
		if b == index {
			g.State = StateGameOver
			g.Banked = 0

			return &Outcome{Dead: true, BadApples: bad}, nil
		}
	}

	g.Banked = Payout(g.Bet, level)
	g.Level++

	if g.Level > MaxLevel {
		g.State = StateGameOver

		return &Outcome{BadApples: bad, WinAmount: g.Banked}, nil
	}

	return nil, nil
}

// Cashout ends the game immediately, paying whatever is banked.
func (g *Game) Cashout() (int64, error) {
	if g.State != StatePlaying {
		return 0, ErrWrongState
	}

	g.State = StateGameOver

	return g.Banked, nil
}
