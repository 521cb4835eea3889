package roller

import (
	"errors"
	"strconv"

	"github.com/louisbranch/rollexpr/internal/core/dice"
	"github.com/louisbranch/rollexpr/internal/core/eval"
	"github.com/louisbranch/rollexpr/internal/core/notation"
	"github.com/louisbranch/rollexpr/internal/core/render"
	apperrors "github.com/louisbranch/rollexpr/internal/platform/errors"
)

// toDomainError converts core errors into coded errors with the metadata the
// message catalog templates expect.
func toDomainError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}

	var lexErr *notation.LexError
	if errors.As(err, &lexErr) {
		code := apperrors.CodeInvalidCharacter
		switch lexErr.Kind {
		case notation.InvalidWord:
			code = apperrors.CodeInvalidWord
		case notation.InvalidInteger:
			code = apperrors.CodeInvalidInteger
		}
		return apperrors.WrapWithMetadata(code, lexErr.Error(), map[string]string{
			"Text":     lexErr.Text,
			"Position": position(lexErr.Offset),
		}, err)
	}

	var parseErr *notation.ParseError
	if errors.As(err, &parseErr) {
		switch parseErr.Kind {
		case notation.UnexpectedToken:
			return apperrors.WrapWithMetadata(apperrors.CodeUnexpectedToken, parseErr.Error(), map[string]string{
				"Token":    parseErr.Token.String(),
				"Position": position(parseErr.Token.Offset),
			}, err)
		case notation.UnexpectedEnd:
			return apperrors.WrapWithMetadata(apperrors.CodeUnexpectedEnd, parseErr.Error(), map[string]string{
				"Open": parseErr.Open,
			}, err)
		case notation.InvalidDie:
			return apperrors.WrapWithMetadata(apperrors.CodeInvalidDie, parseErr.Error(), map[string]string{
				"Sides": strconv.Itoa(parseErr.Token.Value),
			}, err)
		case notation.MismatchedParentheses:
			return apperrors.WrapWithMetadata(apperrors.CodeMismatchedParentheses, parseErr.Error(), map[string]string{
				"Open":  parseErr.Open,
				"Close": parseErr.Token.Text,
			}, err)
		}
	}

	var selErr *eval.InvalidSelectionError
	if errors.As(err, &selErr) {
		return apperrors.WrapWithMetadata(apperrors.CodeInvalidSelection, selErr.Error(), map[string]string{
			"SelectionSize": strconv.Itoa(selErr.SelectionSize),
			"PoolSize":      strconv.Itoa(selErr.PoolSize),
		}, err)
	}

	var rollErr *eval.InvalidRollError
	if errors.As(err, &rollErr) {
		return apperrors.WrapWithMetadata(apperrors.CodeInvalidRoll, rollErr.Error(), map[string]string{
			"Count": strconv.Itoa(rollErr.Count),
			"Sides": strconv.Itoa(rollErr.Sides),
		}, err)
	}

	var limitErr *eval.TooManyDiceError
	if errors.As(err, &limitErr) {
		return apperrors.WrapWithMetadata(apperrors.CodeTooManyDice, limitErr.Error(), map[string]string{
			"Limit": strconv.Itoa(limitErr.Limit),
		}, err)
	}

	switch {
	case errors.Is(err, eval.ErrDivideByZero):
		return apperrors.Wrap(apperrors.CodeDivideByZero, err.Error(), err)
	case errors.Is(err, dice.ErrUnknownMode):
		return apperrors.Wrap(apperrors.CodeInvalidMode, err.Error(), err)
	case errors.Is(err, render.ErrUnknownFormat):
		return apperrors.Wrap(apperrors.CodeInvalidFormat, err.Error(), err)
	}

	return apperrors.Wrap(apperrors.CodeUnknown, err.Error(), err)
}

// position renders a byte offset as a 1-based position.
func position(offset int) string {
	return strconv.Itoa(offset + 1)
}
