package blackjack

import (
	"math/rand/v2"
	"testing"

	"github.com/fastprodman/gamehall/internal/games/deck"
)

func card(r deck.Rank) deck.Card {
	return deck.Card{Rank: r, Suit: deck.Spades}
}

func TestScore_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards []deck.Card
		want  int
	}{
		{
			name:  "ace_plus_ten_value_is_21",
			cards: []deck.Card{card(deck.Ace), card(deck.King)},
			want:  21,
		},
		{
			name:  "two_aces_plus_ten_reduce_to_12",
			cards: []deck.Card{card(deck.Ace), card(deck.Ace), card(deck.Ten)},
			want:  12,
		},
		{
			name:  "face_cards_count_ten",
			cards: []deck.Card{card(deck.Jack), card(deck.Queen)},
			want:  20,
		},
		{
			name:  "soft_seventeen",
			cards: []deck.Card{card(deck.Ace), card(deck.Six)},
			want:  17,
		},
		{
			name:  "hard_bust",
			cards: []deck.Card{card(deck.King), card(deck.Nine), card(deck.Five)},
			want:  24,
		},
		{
			name:  "all_four_aces",
			cards: []deck.Card{card(deck.Ace), card(deck.Ace), card(deck.Ace), card(deck.Ace)},
			want:  14,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Score(tt.cards)
			if got != tt.want {
				t.Fatalf("score mismatch: want %d, got %d", tt.want, got)
			}
		})
	}
}

func TestDeal_StartsInPlayerTurn(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	g := Deal(rng)

	if g.State != StatePlayerTurn {
		t.Fatalf("state: want %s, got %s", StatePlayerTurn, g.State)
	}
	if len(g.Player) != 2 || len(g.Dealer) != 2 {
		t.Fatalf("hands: want 2/2 cards, got %d/%d", len(g.Player), len(g.Dealer))
	}
	if len(g.Deck) != 48 {
		t.Fatalf("deck remainder: want 48, got %d", len(g.Deck))
	}
}

func TestStand_DealerDrawsToSeventeen(t *testing.T) {
	t.Parallel()

	g := &Game{
		State:  StatePlayerTurn,
		Player: []deck.Card{card(deck.King), card(deck.Queen)},
		Dealer: []deck.Card{card(deck.Ten), card(deck.Six)},
		Deck:   []deck.Card{card(deck.Two), card(deck.Nine)},
	}

	out, err := g.Stand()
	if err != nil {
		t.Fatalf("stand: %v", err)
	}

	// Dealer sits at 16, must draw exactly once: 16 + 2 = 18.
	if out.DealerScore != 18 {
		t.Fatalf("dealer score: want 18, got %d", out.DealerScore)
	}
	if out.Winner != WinnerPlayer {
		t.Fatalf("winner: want %s, got %s", WinnerPlayer, out.Winner)
	}
	if out.PayoutUnits != 2 {
		t.Fatalf("payout units: want 2, got %d", out.PayoutUnits)
	}
	if g.State != StateGameOver {
		t.Fatalf("state after stand: want %s, got %s", StateGameOver, g.State)
	}
}

func TestStand_Push(t *testing.T) {
	t.Parallel()

	g := &Game{
		State:  StatePlayerTurn,
		Player: []deck.Card{card(deck.King), card(deck.Queen)},
		Dealer: []deck.Card{card(deck.Ten), card(deck.King)},
	}

	out, err := g.Stand()
	if err != nil {
		t.Fatalf("stand: %v", err)
	}

	if out.Winner != WinnerPush {
		t.Fatalf("winner: want %s, got %s", WinnerPush, out.Winner)
	}
	if out.PayoutUnits != 1 {
		t.Fatalf("payout units: want 1 (stake returned), got %d", out.PayoutUnits)
	}
}

func TestHit_BustAutoResolves(t *testing.T) {
	t.Parallel()

	g := &Game{
		State:  StatePlayerTurn,
		Player: []deck.Card{card(deck.King), card(deck.Queen)},
		Dealer: []deck.Card{card(deck.Ten), card(deck.Seven)},
		Deck:   []deck.Card{card(deck.Five)},
	}

	out, err := g.Hit()
	if err != nil {
		t.Fatalf("hit: %v", err)
	}

	if out == nil {
		t.Fatal("expected auto-resolution at 21+, got nil outcome")
	}
	if out.Winner != WinnerDealer {
		t.Fatalf("winner after bust: want %s, got %s", WinnerDealer, out.Winner)
	}
	if out.PayoutUnits != 0 {
		t.Fatalf("payout units after bust: want 0, got %d", out.PayoutUnits)
	}
}

func TestHit_BelowTwentyOneContinues(t *testing.T) {
	t.Parallel()

	g := &Game{
		State:  StatePlayerTurn,
		Player: []deck.Card{card(deck.Two), card(deck.Three)},
		Dealer: []deck.Card{card(deck.Ten), card(deck.Seven)},
		Deck:   []deck.Card{card(deck.Five)},
	}

	out, err := g.Hit()
	if err != nil {
		t.Fatalf("hit: %v", err)
	}

	if out != nil {
		t.Fatalf("expected hand to continue, got outcome %+v", out)
	}
	if g.State != StatePlayerTurn {
		t.Fatalf("state: want %s, got %s", StatePlayerTurn, g.State)
	}
}

func TestActions_WrongStateRejected(t *testing.T) {
	t.Parallel()

	g := &Game{State: StateGameOver}

	_, err := g.Hit()
	if err != ErrWrongState {
		t.Fatalf("hit on finished game: want ErrWrongState, got %v", err)
	}

	_, err = g.Stand()
	if err != ErrWrongState {
		t.Fatalf("stand on finished game: want ErrWrongState, got %v", err)
	}
}
