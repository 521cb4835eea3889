// Package dice defines the die records and face-value strategies shared by
// the expression evaluator and its callers.
package dice

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// ValidSides lists every die size the notation accepts, in ascending order.
var ValidSides = []int{4, 6, 8, 10, 12, 20, 100}

// IsValidSides reports whether sides names one of the supported dice.
func IsValidSides(sides int) bool {
	for _, s := range ValidSides {
		if s == sides {
			return true
		}
	}
	return false
}

// DieRoll captures a single rolled die.
//
// Keep starts true for every fresh die and is cleared by selection operations
// (keep/drop highest/lowest, advantage, disadvantage).
type DieRoll struct {
	Sides  int
	Result int
	Keep   bool
}

// String renders the die as it appears on a roll receipt, e.g. "[d6:4]".
func (r DieRoll) String() string {
	return fmt.Sprintf("[d%d:%d]", r.Sides, r.Result)
}

// Strategy decides the face value of each die.
type Strategy interface {
	// Face returns the value in [1, sides] shown by one die.
	Face(sides int) int
}

// Mode identifies an evaluation strategy.
type Mode int

const (
	ModeRandom Mode = iota
	ModeMin
	ModeMid
	ModeMax
)

func (m Mode) String() string {
	switch m {
	case ModeRandom:
		return "random"
	case ModeMin:
		return "min"
	case ModeMid:
		return "mid"
	case ModeMax:
		return "max"
	default:
		return "unknown"
	}
}

// ErrUnknownMode reports a mode label or value outside the supported set.
var ErrUnknownMode = errors.New("unknown evaluation mode")

// ParseMode maps a mode label to a Mode. The empty string selects ModeRandom.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "random", "rand":
		return ModeRandom, nil
	case "min":
		return ModeMin, nil
	case "mid":
		return ModeMid, nil
	case "max":
		return ModeMax, nil
	default:
		return ModeRandom, fmt.Errorf("%w %q", ErrUnknownMode, value)
	}
}

// Random draws faces uniformly with replacement from a seeded source.
//
// # Determinism
//
// Two Random strategies built from the same seed produce the same sequence of
// faces for the same sequence of Face calls.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random strategy seeded with seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// RandomWithRng wraps a caller-owned random source.
// This is useful when you want to control the RNG directly.
func RandomWithRng(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Face rolls a single die with the provided number of sides.
func (r *Random) Face(sides int) int {
	return r.rng.Intn(sides) + 1
}

type minStrategy struct{}

func (minStrategy) Face(int) int { return 1 }

type midStrategy struct{}

func (midStrategy) Face(sides int) int { return sides / 2 }

type maxStrategy struct{}

func (maxStrategy) Face(sides int) int { return sides }

// Deterministic strategies for worst, average and best case evaluation.
var (
	Min Strategy = minStrategy{}
	Mid Strategy = midStrategy{}
	Max Strategy = maxStrategy{}
)

// StrategyFor returns the strategy for mode. The seed is only used by
// ModeRandom.
func StrategyFor(mode Mode, seed int64) (Strategy, error) {
	switch mode {
	case ModeRandom:
		return NewRandom(seed), nil
	case ModeMin:
		return Min, nil
	case ModeMid:
		return Mid, nil
	case ModeMax:
		return Max, nil
	default:
		return nil, fmt.Errorf("%w %d", ErrUnknownMode, mode)
	}
}
