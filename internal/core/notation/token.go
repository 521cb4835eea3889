// Package notation scans and parses tabletop dice expressions such as
// "4d6kh3+2", "2d20adv" or "(1d4+1)*3".
//
// The grammar, in EBNF:
//
//	root        = sum ;
//	sum         = term { ("+" | "-") term } ;
//	term        = factor { ("*" | "/") factor } ;
//	factor      = "(" sum ")" | "[" sum "]" | "-" factor | roll-or-int ;
//	roll-or-int = integer [ "d" roll-tail ] | "d" roll-tail ;
//	roll-tail   = [ integer-sides | "%" ] [ selection ] ;
//	selection   = ( ("k" | "kh" | "kl" | "d" | "dh" | "dl") [ integer ]
//	              | "adv" | "ad" | "dis" | "da" ) [ selection ] ;
//
// Valid sides are 4, 6, 8, 10, 12, 20 and 100; "%" means 100 and an omitted
// sides value means 6. The word "d" means drop-lowest only inside a
// selection chain.
package notation

import (
	"fmt"
	"strconv"
)

// Kind identifies the class of a token.
type Kind int

const (
	KindInteger Kind = iota
	KindWord
	KindPlus
	KindMinus
	KindTimes
	KindDivide
	KindPercent
	KindOpen
	KindClose
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindWord:
		return "word"
	case KindPlus:
		return "'+'"
	case KindMinus:
		return "'-'"
	case KindTimes:
		return "'*'"
	case KindDivide:
		return "'/'"
	case KindPercent:
		return "'%'"
	case KindOpen:
		return "opening bracket"
	case KindClose:
		return "closing bracket"
	default:
		return "unknown"
	}
}

// Words lists every alphabetic token the scanner accepts.
var Words = []string{"d", "k", "kh", "kl", "dh", "dl", "adv", "ad", "dis", "da"}

// Token is one lexeme of a dice expression.
//
// Value is set for KindInteger. Text holds the recognized word for KindWord
// and the bracket character for KindOpen and KindClose. Offset is the byte
// offset of the token in the input.
type Token struct {
	Kind   Kind
	Value  int
	Text   string
	Offset int
}

// String renders the token as it would appear in an expression.
func (t Token) String() string {
	switch t.Kind {
	case KindInteger:
		return strconv.Itoa(t.Value)
	case KindWord, KindOpen, KindClose:
		return t.Text
	case KindPlus:
		return "+"
	case KindMinus:
		return "-"
	case KindTimes:
		return "*"
	case KindDivide:
		return "/"
	case KindPercent:
		return "%"
	default:
		return fmt.Sprintf("<%s>", t.Kind)
	}
}

// IsWord reports whether t is the word w.
func (t Token) IsWord(w string) bool {
	return t.Kind == KindWord && t.Text == w
}

func isValidWord(word string) bool {
	for _, w := range Words {
		if w == word {
			return true
		}
	}
	return false
}
