// Package errors provides structured error handling with i18n support.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Expression input errors
	CodeExpressionEmpty   Code = "DICE_EXPRESSION_EMPTY"
	CodeExpressionTooLong Code = "DICE_EXPRESSION_TOO_LONG"

	// Lexical errors
	CodeInvalidCharacter Code = "DICE_INVALID_CHARACTER"
	CodeInvalidWord      Code = "DICE_INVALID_WORD"
	CodeInvalidInteger   Code = "DICE_INVALID_INTEGER"

	// Syntax errors
	CodeUnexpectedToken       Code = "DICE_UNEXPECTED_TOKEN"
	CodeUnexpectedEnd         Code = "DICE_UNEXPECTED_END"
	CodeInvalidDie            Code = "DICE_INVALID_DIE"
	CodeMismatchedParentheses Code = "DICE_MISMATCHED_PARENTHESES"

	// Evaluation errors
	CodeInvalidSelection Code = "DICE_INVALID_SELECTION"
	CodeInvalidRoll      Code = "DICE_INVALID_ROLL"
	CodeTooManyDice      Code = "DICE_TOO_MANY_DICE"
	CodeDivideByZero     Code = "DICE_DIVIDE_BY_ZERO"

	// Request option errors
	CodeInvalidMode   Code = "DICE_INVALID_MODE"
	CodeInvalidFormat Code = "DICE_INVALID_FORMAT"

	// Random/seed errors
	CodeSeedUnavailable Code = "SEED_UNAVAILABLE"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - the expression or its options cannot be used
	case CodeExpressionEmpty,
		CodeInvalidCharacter,
		CodeInvalidWord,
		CodeInvalidInteger,
		CodeUnexpectedToken,
		CodeUnexpectedEnd,
		CodeInvalidDie,
		CodeMismatchedParentheses,
		CodeInvalidSelection,
		CodeInvalidRoll,
		CodeDivideByZero,
		CodeInvalidMode,
		CodeInvalidFormat:
		return codes.InvalidArgument

	// ResourceExhausted - the expression exceeds a configured limit
	case CodeExpressionTooLong,
		CodeTooManyDice:
		return codes.ResourceExhausted

	// Unavailable - the entropy source failed
	case CodeSeedUnavailable:
		return codes.Unavailable

	default:
		return codes.Internal
	}
}

// Codes lists every defined code except CodeUnknown.
var Codes = []Code{
	CodeExpressionEmpty,
	CodeExpressionTooLong,
	CodeInvalidCharacter,
	CodeInvalidWord,
	CodeInvalidInteger,
	CodeUnexpectedToken,
	CodeUnexpectedEnd,
	CodeInvalidDie,
	CodeMismatchedParentheses,
	CodeInvalidSelection,
	CodeInvalidRoll,
	CodeTooManyDice,
	CodeDivideByZero,
	CodeInvalidMode,
	CodeInvalidFormat,
	CodeSeedUnavailable,
}
