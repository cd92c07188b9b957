package dice

import (
	"math/rand/v2"
	"testing"
)

func TestExactValue_Table(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want int
	}{
		{n: 1, want: 4},  // midpoint of 1..6 is 3.5, rounds to 4
		{n: 2, want: 7},  // 2..12
		{n: 3, want: 11}, // 3..18, midpoint 10.5 rounds up
		{n: 4, want: 14}, // 4..24
	}

	for _, tt := range tests {
		got := ExactValue(tt.n)
		if got != tt.want {
			t.Fatalf("ExactValue(%d): want %d, got %d", tt.n, tt.want, got)
		}
	}
}

func TestPlay_ClassificationMatchesSum(t *testing.T) {
	t.Parallel()

	for _, betType := range []BetType{BetLow, BetHigh, BetExact} {
		betType := betType
		t.Run(string(betType), func(t *testing.T) {
			t.Parallel()

			rng := rand.New(rand.NewPCG(42, uint64(len(betType))))

			for i := 0; i < 500; i++ {
				res, err := Play(rng, DefaultCount, betType)
				if err != nil {
					t.Fatalf("play: %v", err)
				}

				sum := 0
				for _, d := range res.Dice {
					if d < 1 || d > 6 {
						t.Fatalf("die out of range: %d", d)
					}
					sum += d
				}
				if sum != res.Sum {
					t.Fatalf("sum mismatch: want %d, got %d", sum, res.Sum)
				}

				var wantWin bool
				switch betType {
				case BetLow:
					wantWin = sum < res.ExactValue
				case BetHigh:
					wantWin = sum > res.ExactValue
				case BetExact:
					wantWin = sum == res.ExactValue
				}

				if res.IsWin != wantWin {
					t.Fatalf("win flag: sum=%d exact=%d type=%s, want %v, got %v",
						sum, res.ExactValue, betType, wantWin, res.IsWin)
				}

				if res.IsWin {
					wantMult := int64(lowHighMultiplier)
					if betType == BetExact {
						wantMult = exactMultiplier
					}
					if res.Multiplier != wantMult {
						t.Fatalf("multiplier: want %d, got %d", wantMult, res.Multiplier)
					}
				} else if res.Multiplier != 0 {
					t.Fatalf("loss multiplier: want 0, got %d", res.Multiplier)
				}
			}
		})
	}
}

func TestPlay_ExactSumWinsOnlyExactBet(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(11, 13))

	// Roll until a sum hits the exact value, then replay the same dice logic
	// through classification for the other bet types.
	for i := 0; i < 10_000; i++ {
		res, err := Play(rng, DefaultCount, BetExact)
		if err != nil {
			t.Fatalf("play: %v", err)
		}
		if res.Sum != res.ExactValue {
			continue
		}

		if !res.IsWin {
			t.Fatalf("exact sum %d must win under exact bet", res.Sum)
		}
		if res.Multiplier != exactMultiplier {
			t.Fatalf("exact multiplier: want %d, got %d", exactMultiplier, res.Multiplier)
		}

		return
	}

	t.Fatal("no exact-sum roll in 10000 attempts; rng wiring broken")
}

func TestPlay_InvalidInputs(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 1))

	_, err := Play(rng, 0, BetLow)
	if err != ErrInvalidCount {
		t.Fatalf("zero dice: want ErrInvalidCount, got %v", err)
	}

	_, err = Play(rng, MaxCount+1, BetLow)
	if err != ErrInvalidCount {
		t.Fatalf("too many dice: want ErrInvalidCount, got %v", err)
	}

	_, err = Play(rng, DefaultCount, BetType("sideways"))
	if err != ErrInvalidBetType {
		t.Fatalf("bad bet type: want ErrInvalidBetType, got %v", err)
	}
}
