package dice

import (
	"errors"
	"math/rand"
	"testing"
)

func TestIsValidSides(t *testing.T) {
	for _, sides := range []int{4, 6, 8, 10, 12, 20, 100} {
		if !IsValidSides(sides) {
			t.Errorf("IsValidSides(%d) = false, want true", sides)
		}
	}
	for _, sides := range []int{-6, 0, 1, 2, 3, 5, 7, 16, 99, 101} {
		if IsValidSides(sides) {
			t.Errorf("IsValidSides(%d) = true, want false", sides)
		}
	}
}

func TestDeterministicStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy Strategy
		want     map[int]int
	}{
		{name: "min", strategy: Min, want: map[int]int{4: 1, 6: 1, 20: 1, 100: 1}},
		{name: "mid", strategy: Mid, want: map[int]int{4: 2, 6: 3, 10: 5, 20: 10, 100: 50}},
		{name: "max", strategy: Max, want: map[int]int{4: 4, 8: 8, 12: 12, 100: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for sides, want := range tt.want {
				if got := tt.strategy.Face(sides); got != want {
					t.Errorf("Face(%d) = %d, want %d", sides, got, want)
				}
			}
		})
	}
}

func TestRandom_Range(t *testing.T) {
	r := NewRandom(42)
	for _, sides := range ValidSides {
		for i := 0; i < 500; i++ {
			face := r.Face(sides)
			if face < 1 || face > sides {
				t.Fatalf("Face(%d) = %d, out of range [1, %d]", sides, face, sides)
			}
		}
	}
}

func TestRandom_Determinism(t *testing.T) {
	first := NewRandom(12345)
	second := NewRandom(12345)

	for i := 0; i < 50; i++ {
		a := first.Face(20)
		b := second.Face(20)
		if a != b {
			t.Fatalf("face %d differs: %d vs %d", i, a, b)
		}
	}
}

func TestRandomWithRng(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := RandomWithRng(rng)
	face := r.Face(6)
	if face < 1 || face > 6 {
		t.Errorf("Face(6) = %d, out of range", face)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "", want: ModeRandom},
		{input: "rand", want: ModeRandom},
		{input: "Random", want: ModeRandom},
		{input: "min", want: ModeMin},
		{input: " MID ", want: ModeMid},
		{input: "max", want: ModeMax},
		{input: "best", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStrategyFor(t *testing.T) {
	if s, err := StrategyFor(ModeMax, 0); err != nil || s.Face(20) != 20 {
		t.Fatalf("StrategyFor(ModeMax) = %v, %v", s, err)
	}
	if s, err := StrategyFor(ModeRandom, 7); err != nil {
		t.Fatalf("StrategyFor(ModeRandom) error = %v", err)
	} else if _, ok := s.(*Random); !ok {
		t.Fatalf("StrategyFor(ModeRandom) = %T, want *Random", s)
	}
	if _, err := StrategyFor(Mode(99), 0); !errors.Is(err, ErrUnknownMode) {
		t.Fatal("expected error for unknown mode")
	}
}

func TestDieRollString(t *testing.T) {
	roll := DieRoll{Sides: 20, Result: 17, Keep: true}
	if got := roll.String(); got != "[d20:17]" {
		t.Errorf("String() = %q, want %q", got, "[d20:17]")
	}
}
