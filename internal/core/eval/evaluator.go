// Package eval evaluates dice expression trees.
//
// The Evaluator is a stack machine driven by ast.Visitor: every arithmetic
// node pushes one integer, Roll nodes append fresh dice to a flat roll list
// and push the sum of the kept dice, and Select nodes mark dice in the active
// pool as kept or dropped.
package eval

import (
	"cmp"
	"slices"

	"github.com/louisbranch/rollexpr/internal/core/ast"
	"github.com/louisbranch/rollexpr/internal/core/dice"
)

// pool is a half-open index range over the roll list.
type pool struct {
	start, end int
}

func (p pool) size() int {
	return p.end - p.start
}

// Evaluator reduces a tree to an integer and records every die it rolls.
//
// An Evaluator is not safe for concurrent use; evaluate expressions in
// parallel with one Evaluator each.
type Evaluator struct {
	strategy  dice.Strategy
	diceLimit int

	rolls   []dice.DieRoll
	results []int
	pools   []pool
	// rerolls holds the index of the first die of every advantage or
	// disadvantage reroll of the Roll nodes being evaluated.
	rerolls []int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithDiceLimit bounds the number of dice a single evaluation may roll,
// rerolls included. A limit <= 0 means no limit.
func WithDiceLimit(limit int) Option {
	return func(e *Evaluator) {
		e.diceLimit = limit
	}
}

// New returns an Evaluator that draws faces from strategy.
func New(strategy dice.Strategy, opts ...Option) *Evaluator {
	e := &Evaluator{strategy: strategy}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Eval clears the roll history, evaluates root and returns its value.
func (e *Evaluator) Eval(root ast.Node) (int, error) {
	e.rolls = nil
	e.results = e.results[:0]
	e.pools = e.pools[:0]
	e.rerolls = e.rerolls[:0]

	if root == nil {
		return 0, ErrStackUnderflow
	}
	if err := root.Accept(e); err != nil {
		return 0, err
	}
	if len(e.results) != 1 {
		return 0, ErrStackUnderflow
	}
	return e.results[0], nil
}

// Rolls returns the dice rolled by the last Eval, in generation order. The
// dice of one pool, and of each reroll of it, are left sorted by descending
// result.
func (e *Evaluator) Rolls() []dice.DieRoll {
	return slices.Clone(e.rolls)
}

func (e *Evaluator) push(value int) {
	e.results = append(e.results, value)
}

func (e *Evaluator) pop() (int, error) {
	if len(e.results) == 0 {
		return 0, ErrStackUnderflow
	}
	value := e.results[len(e.results)-1]
	e.results = e.results[:len(e.results)-1]
	return value, nil
}

// eval visits n and pops the value it pushed.
func (e *Evaluator) eval(n ast.Node) (int, error) {
	if n == nil {
		return 0, ErrStackUnderflow
	}
	if err := n.Accept(e); err != nil {
		return 0, err
	}
	return e.pop()
}

// withPool visits sel with p as the active pool.
func (e *Evaluator) withPool(p pool, sel *ast.Select) error {
	e.pools = append(e.pools, p)
	err := sel.Accept(e)
	e.pools = e.pools[:len(e.pools)-1]
	return err
}

func (e *Evaluator) rollDie(sides int) {
	e.rolls = append(e.rolls, dice.DieRoll{
		Sides:  sides,
		Result: e.strategy.Face(sides),
		Keep:   true,
	})
}

func (e *Evaluator) checkLimit(extra int) error {
	if e.diceLimit > 0 && len(e.rolls)+extra > e.diceLimit {
		return &TooManyDiceError{Limit: e.diceLimit}
	}
	return nil
}

func (e *Evaluator) VisitLiteral(n *ast.Literal) error {
	e.push(n.Value)
	return nil
}

func (e *Evaluator) VisitRoll(n *ast.Roll) error {
	count, err := e.eval(n.Count)
	if err != nil {
		return err
	}
	sides, err := e.eval(n.Sides)
	if err != nil {
		return err
	}
	if count < 0 || !dice.IsValidSides(sides) {
		return &InvalidRollError{Count: count, Sides: sides}
	}
	if err := e.checkLimit(count); err != nil {
		return err
	}

	start := len(e.rolls)
	for i := 0; i < count; i++ {
		e.rollDie(sides)
	}

	mark := len(e.rerolls)
	if n.Select != nil {
		if err := e.withPool(pool{start: start, end: len(e.rolls)}, n.Select); err != nil {
			e.rerolls = e.rerolls[:mark]
			return err
		}
	}

	// The pool now also holds any rerolls appended by the selection chain.
	// Each block is sorted on its own so a receipt still shows which dice
	// were rolled together.
	bounds := append(append([]int{start}, e.rerolls[mark:]...), len(e.rolls))
	e.rerolls = e.rerolls[:mark]
	for i := 0; i+1 < len(bounds); i++ {
		slices.SortStableFunc(e.rolls[bounds[i]:bounds[i+1]], byResultDescending)
	}

	rolled := e.rolls[start:]
	total := 0
	for _, r := range rolled {
		if r.Keep {
			total += r.Result
		}
	}
	e.push(total)
	return nil
}

func (e *Evaluator) VisitSelect(n *ast.Select) error {
	if len(e.pools) == 0 {
		return ErrStackUnderflow
	}
	active := e.pools[len(e.pools)-1]

	switch n.Selection {
	case ast.Advantage, ast.Disadvantage:
		return e.reroll(n, active)
	default:
		return e.keepOrDrop(n, active)
	}
}

// keepOrDrop applies keep/drop highest/lowest to the active pool.
func (e *Evaluator) keepOrDrop(n *ast.Select, active pool) error {
	high := n.Selection == ast.KeepHighest || n.Selection == ast.DropHighest
	keep := n.Selection == ast.KeepHighest || n.Selection == ast.KeepLowest

	count := 1
	if n.Count != nil {
		var err error
		if count, err = e.eval(n.Count); err != nil {
			return err
		}
	}
	if count < 0 || count > active.size() {
		return &InvalidSelectionError{SelectionSize: count, PoolSize: active.size()}
	}

	selected := e.rolls[active.start:active.end]
	if high {
		slices.SortStableFunc(selected, byResultDescending)
	} else {
		slices.SortStableFunc(selected, byResultAscending)
	}
	for i := range selected {
		selected[i].Keep = (i < count) == keep
	}

	if n.Next == nil {
		return nil
	}
	remaining := pool{start: active.start + count, end: active.end}
	if keep {
		remaining = pool{start: active.start, end: active.start + count}
	}
	return e.withPool(remaining, n.Next)
}

// reroll applies advantage or disadvantage: the active pool is rolled again
// and the pool with the winning total is kept. Ties keep the original pool
// for advantage and the reroll for disadvantage.
func (e *Evaluator) reroll(n *ast.Select, active pool) error {
	if err := e.checkLimit(active.size()); err != nil {
		return err
	}
	for i := active.start; i < active.end; i++ {
		e.rollDie(e.rolls[i].Sides)
	}

	old := active
	fresh := pool{start: len(e.rolls) - active.size(), end: len(e.rolls)}
	if fresh.size() > 0 {
		e.rerolls = append(e.rerolls, fresh.start)
	}

	useFresh := (e.sum(fresh) > e.sum(old)) == (n.Selection == ast.Advantage)
	kept, dropped := old, fresh
	if useFresh {
		kept, dropped = fresh, old
	}
	for i := dropped.start; i < dropped.end; i++ {
		e.rolls[i].Keep = false
	}

	if n.Next == nil {
		return nil
	}
	return e.withPool(kept, n.Next)
}

func (e *Evaluator) sum(p pool) int {
	total := 0
	for _, r := range e.rolls[p.start:p.end] {
		total += r.Result
	}
	return total
}

func (e *Evaluator) VisitNegate(n *ast.Negate) error {
	value, err := e.eval(n.Operand)
	if err != nil {
		return err
	}
	e.push(-value)
	return nil
}

func (e *Evaluator) VisitAdd(n *ast.Add) error {
	return e.binary(n.Left, n.Right, func(a, b int) (int, error) { return a + b, nil })
}

func (e *Evaluator) VisitSubtract(n *ast.Subtract) error {
	return e.binary(n.Left, n.Right, func(a, b int) (int, error) { return a - b, nil })
}

func (e *Evaluator) VisitMultiply(n *ast.Multiply) error {
	return e.binary(n.Left, n.Right, func(a, b int) (int, error) { return a * b, nil })
}

func (e *Evaluator) VisitDivide(n *ast.Divide) error {
	return e.binary(n.Left, n.Right, func(a, b int) (int, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	})
}

// binary evaluates left then right and pushes op(left, right).
func (e *Evaluator) binary(left, right ast.Node, op func(a, b int) (int, error)) error {
	a, err := e.eval(left)
	if err != nil {
		return err
	}
	b, err := e.eval(right)
	if err != nil {
		return err
	}
	value, err := op(a, b)
	if err != nil {
		return err
	}
	e.push(value)
	return nil
}

func byResultDescending(a, b dice.DieRoll) int {
	return cmp.Compare(b.Result, a.Result)
}

func byResultAscending(a, b dice.DieRoll) int {
	return cmp.Compare(a.Result, b.Result)
}
