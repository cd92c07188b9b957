package deck

import (
	"math/rand/v2"
	"testing"
)

func TestNew_FullDistinctDeck(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	cards := New(rng)

	if len(cards) != 52 {
		t.Fatalf("deck size: want 52, got %d", len(cards))
	}

	seen := make(map[Card]bool, 52)
	for _, c := range cards {
		if seen[c] {
			t.Fatalf("duplicate card: %s", c)
		}
		seen[c] = true
	}
}

func TestDraw_ConsumesFromTop(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	cards := New(rng)
	top := cards[0]

	drawn := Draw(&cards, 2)

	if len(drawn) != 2 {
		t.Fatalf("drawn: want 2, got %d", len(drawn))
	}
	if drawn[0] != top {
		t.Fatalf("first drawn card: want %s, got %s", top, drawn[0])
	}
	if len(cards) != 50 {
		t.Fatalf("remainder: want 50, got %d", len(cards))
	}
}
