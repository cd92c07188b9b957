// Package deck provides playing cards and shuffled 52-card decks for the
// card-based game engines.
package deck

import "math/rand/v2"

type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "clubs"
	case Diamonds:
		return "diamonds"
	case Hearts:
		return "hearts"
	case Spades:
		return "spades"
	}

	return "unknown"
}

// Rank runs 2..14 with Ace high (14). Blackjack scoring maps ranks to its own
// point values.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "10"}[r-Two]
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	}

	return "?"
}

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// New returns a full 52-card deck shuffled with rng.
func New(rng *rand.Rand) []Card {
	cards := make([]Card, 0, 52)

	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}

	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return cards
}

// Draw removes and returns the top n cards. It panics if the deck runs out,
// which cannot happen for any legal 5-card-draw or blackjack sequence.
func Draw(cards *[]Card, n int) []Card {
	if len(*cards) < n {
		panic("deck: draw past end of deck")
	}

	drawn := (*cards)[:n:n]
	*cards = (*cards)[n:]

	return drawn
}
