package notation

import (
	"iter"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Item is one element of a scanned sequence: a token, or the lexical error
// raised at that position.
type Item struct {
	Token Token
	Err   *LexError
}

// Scan returns the lazy token sequence for input.
//
// Whitespace separates tokens and is otherwise ignored. A maximal run of
// ASCII digits is one integer, a maximal run of letters is one word, and each
// of + - * × / ÷ % ( ) [ ] is one symbol, with × and ÷ read as * and /.
// Offending input yields an Item carrying a LexError; scanning then resumes
// after the consumed characters. The sequence ends at end of input with no
// terminator item.
func Scan(input string) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		s := scanner{input: input}
		for {
			item, ok := s.next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Tokenize scans the whole input and returns its tokens, or the first
// lexical error.
func Tokenize(input string) ([]Token, error) {
	var tokens []Token
	for item := range Scan(input) {
		if item.Err != nil {
			return nil, item.Err
		}
		tokens = append(tokens, item.Token)
	}
	return tokens, nil
}

type scanner struct {
	input string
	pos   int
}

func (s *scanner) peek() (rune, int) {
	if s.pos >= len(s.input) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.input[s.pos:])
}

func (s *scanner) next() (Item, bool) {
	for {
		r, size := s.peek()
		if size == 0 {
			return Item{}, false
		}
		if !unicode.IsSpace(r) {
			break
		}
		s.pos += size
	}

	start := s.pos
	r, size := s.peek()

	switch {
	case isDigit(r):
		s.consume(isDigit)
		text := s.input[start:s.pos]
		value, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return Item{Err: &LexError{Kind: InvalidInteger, Text: text, Offset: start}}, true
		}
		return Item{Token: Token{Kind: KindInteger, Value: int(value), Text: text, Offset: start}}, true

	case unicode.IsLetter(r):
		s.consume(unicode.IsLetter)
		word := s.input[start:s.pos]
		if !isValidWord(word) {
			return Item{Err: &LexError{Kind: InvalidWord, Text: word, Offset: start}}, true
		}
		return Item{Token: Token{Kind: KindWord, Text: word, Offset: start}}, true
	}

	s.pos += size
	tok := Token{Offset: start}
	switch r {
	case '+':
		tok.Kind = KindPlus
	case '-':
		tok.Kind = KindMinus
	case '*', '×':
		tok.Kind = KindTimes
	case '/', '÷':
		tok.Kind = KindDivide
	case '%':
		tok.Kind = KindPercent
	case '(', '[':
		tok.Kind = KindOpen
		tok.Text = string(r)
	case ')', ']':
		tok.Kind = KindClose
		tok.Text = string(r)
	default:
		return Item{Err: &LexError{Kind: InvalidCharacter, Text: string(r), Offset: start}}, true
	}
	return Item{Token: tok}, true
}

func (s *scanner) consume(match func(rune) bool) {
	for {
		r, size := s.peek()
		if size == 0 || !match(r) {
			return
		}
		s.pos += size
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
