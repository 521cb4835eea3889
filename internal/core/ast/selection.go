package ast

// Selection is an operation over a dice pool.
type Selection int

const (
	// KeepHighest keeps the highest n dice.
	KeepHighest Selection = iota
	// KeepLowest keeps the lowest n dice.
	KeepLowest
	// DropHighest discards the highest n dice.
	DropHighest
	// DropLowest discards the lowest n dice.
	DropLowest
	// Advantage rerolls the pool and keeps the higher total.
	Advantage
	// Disadvantage rerolls the pool and keeps the lower total.
	Disadvantage
)

func (s Selection) String() string {
	switch s {
	case KeepHighest:
		return "Keep Highest"
	case KeepLowest:
		return "Keep Lowest"
	case DropHighest:
		return "Drop Highest"
	case DropLowest:
		return "Drop Lowest"
	case Advantage:
		return "Advantage"
	case Disadvantage:
		return "Disadvantage"
	default:
		return "Unknown"
	}
}

// Notation returns the canonical word for the selection.
func (s Selection) Notation() string {
	switch s {
	case KeepHighest:
		return "kh"
	case KeepLowest:
		return "kl"
	case DropHighest:
		return "dh"
	case DropLowest:
		return "dl"
	case Advantage:
		return "adv"
	case Disadvantage:
		return "dis"
	default:
		return "?"
	}
}

// Counted reports whether the selection takes a count.
func (s Selection) Counted() bool {
	switch s {
	case KeepHighest, KeepLowest, DropHighest, DropLowest:
		return true
	default:
		return false
	}
}
