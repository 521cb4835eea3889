package eval

import (
	"errors"
	"fmt"
)

// ErrDivideByZero indicates a division whose right operand evaluated to 0.
var ErrDivideByZero = errors.New("divide by zero")

// ErrStackUnderflow indicates a malformed tree: a node failed to produce the
// value its parent expected. Trees built by the parser never trigger it.
var ErrStackUnderflow = errors.New("evaluation stack underflow")

// InvalidSelectionError indicates a keep/drop count outside the active pool.
type InvalidSelectionError struct {
	SelectionSize int
	PoolSize      int
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("cannot select %d dice from a pool of %d", e.SelectionSize, e.PoolSize)
}

// InvalidRollError indicates a roll whose count or sides evaluated to an
// unusable value.
type InvalidRollError struct {
	Count int
	Sides int
}

func (e *InvalidRollError) Error() string {
	if e.Count < 0 {
		return fmt.Sprintf("cannot roll %d dice", e.Count)
	}
	return fmt.Sprintf("invalid die: d%d", e.Sides)
}

// TooManyDiceError indicates an evaluation that would roll more dice than the
// configured limit.
type TooManyDiceError struct {
	Limit int
}

func (e *TooManyDiceError) Error() string {
	return fmt.Sprintf("expression rolls more than %d dice", e.Limit)
}
