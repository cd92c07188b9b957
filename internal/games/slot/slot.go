// Package slot implements the three-reel slot machine. Win decisions happen
// before the reels are rendered: the displayed strips are decorative, only
// the first symbol of each strip is the decided one.
package slot

import "math/rand/v2"

type Symbol string

const (
	Cherry  Symbol = "cherry"
	Bell    Symbol = "bell"
	Clover  Symbol = "clover"
	Diamond Symbol = "diamond"
	Star    Symbol = "star"
	Seven   Symbol = "seven"
)

var symbols = []Symbol{Cherry, Bell, Clover, Diamond, Star, Seven}

// Multipliers is the payout table, win multiple of the bet per symbol.
var Multipliers = map[Symbol]int64{
	Cherry:  5,
	Bell:    10,
	Clover:  20,
	Diamond: 50,
	Star:    100,
	Seven:   250,
}

// winAttemptPercent is the base chance that a normal-mode spin tries to win.
const winAttemptPercent = 20

type Result struct {
	Symbols    [3]Symbol    `json:"symbols"`
	Reels      [3][6]Symbol `json:"reels"`
	IsWin      bool         `json:"isWin"`
	Multiplier int64        `json:"multiplier"`
}

// Spin decides the three symbols and renders the reels.
//
// Constrained mode forces three distinct symbols, a guaranteed loss. In
// normal mode a win is attempted with 20% probability; if the potential
// payout for the drawn symbol exceeds headroom (the house's currently
// winnable amount) the spin is downgraded to a loss.
func Spin(rng *rand.Rand, bet int64, constrained bool, headroom int64) Result {
	var decided [3]Symbol

	win := false

	switch {
	case constrained:
		decided = distinctSymbols(rng)
	case rng.IntN(100) < winAttemptPercent:
		symbol := symbols[rng.IntN(len(symbols))]
		if bet*Multipliers[symbol] > headroom {
			decided = losingSymbols(rng)
		} else {
			decided = [3]Symbol{symbol, symbol, symbol}
			win = true
		}
	default:
		decided = losingSymbols(rng)
	}

	res := Result{Symbols: decided, IsWin: win}
	if win {
		res.Multiplier = Multipliers[decided[0]]
	}

	for i, s := range decided {
		res.Reels[i] = renderReel(rng, s)
	}

	return res
}

// distinctSymbols draws three pairwise-distinct symbols.
func distinctSymbols(rng *rand.Rand) [3]Symbol {
	perm := rng.Perm(len(symbols))

	return [3]Symbol{symbols[perm[0]], symbols[perm[1]], symbols[perm[2]]}
}

// losingSymbols draws three symbols that are not all identical.
func losingSymbols(rng *rand.Rand) [3]Symbol {
	var out [3]Symbol
	for i := range out {
		out[i] = symbols[rng.IntN(len(symbols))]
	}

	if out[0] == out[1] && out[1] == out[2] {
		next := symbols[(indexOf(out[2])+1)%len(symbols)]
		out[2] = next
	}

	return out
}

// renderReel places the decided symbol first and shuffles the remaining five
// after it. The strip is presentation only.
func renderReel(rng *rand.Rand, first Symbol) [6]Symbol {
	rest := make([]Symbol, 0, 5)
	for _, s := range symbols {
		if s != first {
			rest = append(rest, s)
		}
	}

	rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})

	var reel [6]Symbol
	reel[0] = first
	copy(reel[1:], rest)

	return reel
}

func indexOf(s Symbol) int {
	for i, v := range symbols {
		if v == s {
			return i
		}
	}

	return 0
}
