// Package dice implements the stateless dice game: roll N six-sided dice and
// bet on the sum landing below, above, or exactly on the midpoint. Outcomes
// are pure RNG; the profit-control signal is not an input here.
package dice

import (
	"errors"
	"math"
	"math/rand/v2"
)

var (
	ErrInvalidBetType = errors.New("dice: invalid bet type")
	ErrInvalidCount   = errors.New("dice: dice count out of range")
)

type BetType string

const (
	BetLow   BetType = "low"
	BetHigh  BetType = "high"
	BetExact BetType = "exact"
)

const (
	DefaultCount = 3
	MaxCount     = 10

	lowHighMultiplier = 1
	exactMultiplier   = 5
)

type Result struct {
	Dice       []int   `json:"dice"`
	Sum        int     `json:"sum"`
	ExactValue int     `json:"exactValue"`
	BetType    BetType `json:"betType"`
	IsWin      bool    `json:"isWin"`
	Multiplier int64   `json:"multiplier"`
}

// ExactValue is the rounded midpoint between the minimum (n) and maximum (6n)
// possible sums.
func ExactValue(n int) int {
	return int(math.Round(float64(n+6*n) / 2))
}

// Play rolls n dice and classifies the sum against betType. The returned
// multiplier is the win multiple of the bet (0 on a loss).
func Play(rng *rand.Rand, n int, betType BetType) (Result, error) {
	if n <= 0 || n > MaxCount {
		return Result{}, ErrInvalidCount
	}

	dice := make([]int, n)
	sum := 0

	for i := range dice {
		dice[i] = rng.IntN(6) + 1
		sum += dice[i]
	}

	exact := ExactValue(n)

	res := Result{
		Dice:       dice,
		Sum:        sum,
		ExactValue: exact,
		BetType:    betType,
	}

	switch betType {
	case BetLow:
		res.IsWin = sum < exact
		if res.IsWin {
			res.Multiplier = lowHighMultiplier
		}
	case BetHigh:
		res.IsWin = sum > exact
		if res.IsWin {
			res.Multiplier = lowHighMultiplier
		}
	case BetExact:
		res.IsWin = sum == exact
		if res.IsWin {
			res.Multiplier = exactMultiplier
		}
	default:
		return Result{}, ErrInvalidBetType
	}

	return res, nil
}
