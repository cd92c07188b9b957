package poker

import (
	"sort"

	"github.com/fastprodman/gamehall/internal/games/deck"
)

type HandRank int

const (
	HighCard      HandRank = 1
	OnePair       HandRank = 2
	TwoPair       HandRank = 3
	ThreeOfAKind  HandRank = 4
	Straight      HandRank = 5
	Flush         HandRank = 6
	FullHouse     HandRank = 7
	FourOfAKind   HandRank = 8
	StraightFlush HandRank = 9
	RoyalFlush    HandRank = 10
)

func (r HandRank) String() string {
	names := map[HandRank]string{
		HighCard:      "High Card",
		OnePair:       "One Pair",
		TwoPair:       "Two Pair",
		ThreeOfAKind:  "Three of a Kind",
		Straight:      "Straight",
		Flush:         "Flush",
		FullHouse:     "Full House",
		FourOfAKind:   "Four of a Kind",
		StraightFlush: "Straight Flush",
		RoyalFlush:    "Royal Flush",
	}

	return names[r]
}

// Hand is an evaluated 5-card hand. Values lists the significant card values
// highest-priority first: grouped values (quads, trips, pairs) before
// kickers, so two hands of equal rank compare positionally.
type Hand struct {
	Rank   HandRank `json:"rank"`
	Values []int    `json:"values"`
}

// Evaluate ranks a 5-card hand. Aces are high except in the A-2-3-4-5 wheel,
// where the straight counts as five-high.
func Evaluate(cards []deck.Card) Hand {
	counts := make(map[int]int, 5)
	suits := make(map[deck.Suit]int, 4)

	for _, c := range cards {
		counts[int(c.Rank)]++
		suits[c.Suit]++
	}

	flush := len(suits) == 1

	straight, straightHigh := straightHigh(counts)

	// Group values by count desc, then value desc.
	type group struct{ value, count int }

	groups := make([]group, 0, len(counts))
	for v, n := range counts {
		groups = append(groups, group{value: v, count: n})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}

		return groups[i].value > groups[j].value
	})

	values := make([]int, 0, 5)
	for _, g := range groups {
		values = append(values, g.value)
	}

	switch {
	case straight && flush && straightHigh == int(deck.Ace):
		return Hand{Rank: RoyalFlush, Values: []int{straightHigh}}
	case straight && flush:
		return Hand{Rank: StraightFlush, Values: []int{straightHigh}}
	case groups[0].count == 4:
		return Hand{Rank: FourOfAKind, Values: values}
	case groups[0].count == 3 && groups[1].count == 2:
		return Hand{Rank: FullHouse, Values: values}
	case flush:
		return Hand{Rank: Flush, Values: values}
	case straight:
		return Hand{Rank: Straight, Values: []int{straightHigh}}
	case groups[0].count == 3:
		return Hand{Rank: ThreeOfAKind, Values: values}
	case groups[0].count == 2 && groups[1].count == 2:
		return Hand{Rank: TwoPair, Values: values}
	case groups[0].count == 2:
		return Hand{Rank: OnePair, Values: values}
	default:
		return Hand{Rank: HighCard, Values: values}
	}
}

// straightHigh reports whether the distinct card values form a straight and
// the straight's high value.
func straightHigh(counts map[int]int) (bool, int) {
	if len(counts) != 5 {
		return false, 0
	}

	values := make([]int, 0, 5)
	for v := range counts {
		values = append(values, v)
	}
	sort.Ints(values)

	// Wheel: A-2-3-4-5 plays as a five-high straight.
	if values[0] == 2 && values[1] == 3 && values[2] == 4 && values[3] == 5 && values[4] == int(deck.Ace) {
		return true, 5
	}

	for i := 1; i < 5; i++ {
		if values[i] != values[i-1]+1 {
			return false, 0
		}
	}

	return true, values[4]
}

// Compare returns 1 if a beats b, -1 if b beats a, 0 on a push.
func Compare(a, b Hand) int {
	if a.Rank != b.Rank {
		if a.Rank > b.Rank {
			return 1
		}

		return -1
	}

	for i := 0; i < len(a.Values) && i < len(b.Values); i++ {
		if a.Values[i] != b.Values[i] {
			if a.Values[i] > b.Values[i] {
				return 1
			}

			return -1
		}
	}

	return 0
}
