package notation

import "fmt"

// LexErrorKind classifies lexical errors.
type LexErrorKind int

const (
	// InvalidCharacter is a character that starts no token.
	InvalidCharacter LexErrorKind = iota
	// InvalidWord is an alphabetic run that is not a recognized word.
	InvalidWord
	// InvalidInteger is a digit run that does not fit a 32-bit signed integer.
	InvalidInteger
)

func (k LexErrorKind) String() string {
	switch k {
	case InvalidCharacter:
		return "InvalidCharacter"
	case InvalidWord:
		return "InvalidWord"
	case InvalidInteger:
		return "InvalidInteger"
	default:
		return "Unknown"
	}
}

// LexError reports input the scanner could not turn into a token.
type LexError struct {
	Kind   LexErrorKind
	Text   string
	Offset int
}

func (e *LexError) Error() string {
	switch e.Kind {
	case InvalidCharacter:
		return fmt.Sprintf("invalid character %q", e.Text)
	case InvalidWord:
		return fmt.Sprintf("invalid word %q", e.Text)
	case InvalidInteger:
		return fmt.Sprintf("invalid integer %s: out of 32-bit range", e.Text)
	default:
		return fmt.Sprintf("lexical error at offset %d", e.Offset)
	}
}

// ParseErrorKind classifies syntactic errors.
type ParseErrorKind int

const (
	// UnexpectedToken is a token that cannot start or continue a production.
	UnexpectedToken ParseErrorKind = iota
	// UnexpectedEnd is input ending where a production needs more.
	UnexpectedEnd
	// InvalidDie is an explicit sides value outside the legal set.
	InvalidDie
	// MismatchedParentheses is a closing bracket of another family.
	MismatchedParentheses
	// Lexical wraps a LexError met while parsing.
	Lexical
)

func (k ParseErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case UnexpectedEnd:
		return "UnexpectedEnd"
	case InvalidDie:
		return "InvalidDie"
	case MismatchedParentheses:
		return "MismatchedParentheses"
	case Lexical:
		return "Lexical"
	default:
		return "Unknown"
	}
}

// ParseError reports the first syntactic error in an expression. Parsing
// stops at the first error.
//
// Token is the offending token for UnexpectedToken, the sides integer for
// InvalidDie and the closing bracket for MismatchedParentheses. Open is the
// opening bracket for MismatchedParentheses and UnexpectedEnd inside a
// bracket. Lex is set for Lexical.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
	Token   Token
	Open    string
	Lex     *LexError
}

func (e *ParseError) Error() string {
	if e.Kind == Lexical && e.Lex != nil {
		return e.Lex.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped lexical error.
func (e *ParseError) Unwrap() error {
	if e.Lex == nil {
		return nil
	}
	return e.Lex
}

func unexpectedToken(tok Token, context string) *ParseError {
	return &ParseError{
		Kind:    UnexpectedToken,
		Message: fmt.Sprintf("'%s' unexpected %s", tok, context),
		Token:   tok,
	}
}

func unexpectedEnd(message string) *ParseError {
	return &ParseError{Kind: UnexpectedEnd, Message: message}
}

func lexical(err *LexError) *ParseError {
	return &ParseError{Kind: Lexical, Lex: err}
}
