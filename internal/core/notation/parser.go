package notation

import (
	"fmt"

	"github.com/louisbranch/rollexpr/internal/core/ast"
	"github.com/louisbranch/rollexpr/internal/core/dice"
	"github.com/louisbranch/rollexpr/internal/core/lookahead"
)

const (
	defaultCount = 1
	defaultSides = 6
	percentSides = 100
	// defaultSelectionCount is the count of a keep/drop word with no number.
	defaultSelectionCount = 1
)

var closingBracket = map[string]string{
	"(": ")",
	"[": "]",
}

// Parse parses a dice expression into a syntax tree.
//
// Parsing stops at the first error, which is always a *ParseError. Lexical
// errors met while parsing are wrapped with Kind Lexical. Input left over
// after a complete expression is an UnexpectedToken error.
func Parse(input string) (ast.Node, error) {
	tokens := lookahead.New(Scan(input))
	defer tokens.Close()

	p := &parser{tokens: tokens}
	root, err := p.parseSum()
	if err != nil {
		return nil, err
	}

	tok, ok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, unexpectedToken(tok, "after end of expression")
	}
	return root, nil
}

type parser struct {
	tokens *lookahead.Lookahead[Item]
}

// peek returns the next token. A pending lexical error aborts the parse.
func (p *parser) peek() (Token, bool, error) {
	item, ok := p.tokens.Peek()
	if !ok {
		return Token{}, false, nil
	}
	if item.Err != nil {
		return Token{}, false, lexical(item.Err)
	}
	return item.Token, true, nil
}

func (p *parser) advance() {
	p.tokens.Advance()
}

// sum = term { ("+" | "-") term }
func (p *parser) parseSum() (ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !ok || (tok.Kind != KindPlus && tok.Kind != KindMinus) {
			return left, nil
		}
		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindPlus {
			left = &ast.Add{Left: left, Right: right}
		} else {
			left = &ast.Subtract{Left: left, Right: right}
		}
	}
}

// term = factor { ("*" | "/") factor }
func (p *parser) parseTerm() (ast.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for {
		tok, ok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if !ok || (tok.Kind != KindTimes && tok.Kind != KindDivide) {
			return left, nil
		}
		p.advance()

		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		if tok.Kind == KindTimes {
			left = &ast.Multiply{Left: left, Right: right}
		} else {
			left = &ast.Divide{Left: left, Right: right}
		}
	}
}

// factor = "(" sum ")" | "[" sum "]" | "-" factor | roll-or-int
func (p *parser) parseFactor() (ast.Node, error) {
	tok, ok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, unexpectedEnd("unexpected end of input")
	}

	switch tok.Kind {
	case KindOpen:
		p.advance()
		return p.parseGroup(tok)

	case KindMinus:
		p.advance()
		operand, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.Negate{Operand: operand}, nil

	case KindInteger:
		p.advance()
		next, ok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if ok && next.IsWord("d") {
			p.advance()
			return p.parseRollTail(&ast.Literal{Value: tok.Value})
		}
		return &ast.Literal{Value: tok.Value}, nil

	case KindWord:
		if tok.IsWord("d") {
			p.advance()
			return p.parseRollTail(&ast.Literal{Value: defaultCount})
		}
	}

	return nil, unexpectedToken(tok, "in factor")
}

// parseGroup parses the bracketed sum after the opening bracket open.
func (p *parser) parseGroup(open Token) (ast.Node, error) {
	inner, err := p.parseSum()
	if err != nil {
		return nil, err
	}

	want := closingBracket[open.Text]
	tok, ok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &ParseError{
			Kind:    UnexpectedEnd,
			Message: fmt.Sprintf("expression ended without closing '%s'", want),
			Open:    open.Text,
		}
	}
	if tok.Kind != KindClose {
		return nil, unexpectedToken(tok, "in parenthetical")
	}
	p.advance()

	if tok.Text != want {
		return nil, &ParseError{
			Kind:    MismatchedParentheses,
			Message: fmt.Sprintf("closing '%s' does not match opening '%s'", tok.Text, open.Text),
			Token:   tok,
			Open:    open.Text,
		}
	}
	return inner, nil
}

// roll-tail = [ integer-sides | "%" ] [ selection ]
func (p *parser) parseRollTail(count ast.Node) (ast.Node, error) {
	var sides ast.Node = &ast.Literal{Value: defaultSides}

	tok, ok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if ok {
		switch tok.Kind {
		case KindInteger:
			if !dice.IsValidSides(tok.Value) {
				return nil, &ParseError{
					Kind:    InvalidDie,
					Message: fmt.Sprintf("invalid die: d%d", tok.Value),
					Token:   tok,
				}
			}
			p.advance()
			sides = &ast.Literal{Value: tok.Value}
		case KindPercent:
			p.advance()
			sides = &ast.Literal{Value: percentSides}
		}
	}

	selection, err := p.parseSelection()
	if err != nil {
		return nil, err
	}
	return &ast.Roll{Count: count, Sides: sides, Select: selection}, nil
}

// parseSelection parses a selection chain. It returns nil when the next token
// does not start a selection.
func (p *parser) parseSelection() (*ast.Select, error) {
	tok, ok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if !ok || tok.Kind != KindWord {
		return nil, nil
	}

	var selection ast.Selection
	switch tok.Text {
	case "k", "kh":
		selection = ast.KeepHighest
	case "kl":
		selection = ast.KeepLowest
	case "dh":
		selection = ast.DropHighest
	case "d", "dl":
		// "d" is drop-lowest here; it only means dice in factor position.
		selection = ast.DropLowest
	case "adv", "ad":
		selection = ast.Advantage
	case "dis", "da":
		selection = ast.Disadvantage
	default:
		return nil, nil
	}
	p.advance()

	node := &ast.Select{Selection: selection}
	if selection.Counted() {
		count, ok, err := p.peek()
		if err != nil {
			return nil, err
		}
		value := defaultSelectionCount
		if ok && count.Kind == KindInteger {
			p.advance()
			value = count.Value
		}
		node.Count = &ast.Literal{Value: value}
	}

	next, err := p.parseSelection()
	if err != nil {
		return nil, err
	}
	node.Next = next
	return node, nil
}
