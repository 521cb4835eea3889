// Package check resolves rolled totals against a difficulty target.
package check

// MeetsDifficulty returns true if total >= difficulty.
func MeetsDifficulty(total, difficulty int) bool {
	return total >= difficulty
}

// Margin calculates the margin of success or failure.
// Positive values indicate success, negative indicate failure.
func Margin(total, difficulty int) int {
	return total - difficulty
}

// Result represents the outcome of a difficulty check.
type Result struct {
	Difficulty int
	Success    bool
	Margin     int
}

// Check performs a difficulty check and returns the result.
func Check(total, difficulty int) Result {
	return Result{
		Difficulty: difficulty,
		Success:    MeetsDifficulty(total, difficulty),
		Margin:     Margin(total, difficulty),
	}
}

// Feasibility says whether an expression can meet a difficulty at all.
type Feasibility int

const (
	Impossible Feasibility = iota
	Possible
	Guaranteed
)

func (f Feasibility) String() string {
	switch f {
	case Impossible:
		return "impossible"
	case Possible:
		return "possible"
	case Guaranteed:
		return "guaranteed"
	default:
		return "unknown"
	}
}

// Assess classifies difficulty against the lowest and highest totals an
// expression can produce.
func Assess(lowest, highest, difficulty int) Feasibility {
	switch {
	case MeetsDifficulty(lowest, difficulty):
		return Guaranteed
	case MeetsDifficulty(highest, difficulty):
		return Possible
	default:
		return Impossible
	}
}
