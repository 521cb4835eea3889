// Package ast defines the syntax tree produced by the dice notation parser.
//
// The node set is closed: Literal, Roll, Select, Negate, Add, Subtract,
// Multiply and Divide. Every tree is strictly owned by its parent and is
// read-only after parsing. Collaborators (printers, graph writers, the
// evaluator) traverse a tree through Visitor and need no other access.
package ast

// Node is one node of the syntax tree.
type Node interface {
	// Accept dispatches to the Visitor method matching the node variant and
	// returns whatever error the visitor reports.
	Accept(v Visitor) error

	node()
}

// Visitor receives exactly one call per visited node. Implementations visit
// children themselves, in the order given by Children.
type Visitor interface {
	VisitLiteral(n *Literal) error
	VisitRoll(n *Roll) error
	VisitSelect(n *Select) error
	VisitNegate(n *Negate) error
	VisitAdd(n *Add) error
	VisitSubtract(n *Subtract) error
	VisitMultiply(n *Multiply) error
	VisitDivide(n *Divide) error
}

// Literal is an integer constant.
type Literal struct {
	Value int
}

// Roll rolls Count dice of Sides sides each and optionally applies a chain of
// selections to the resulting pool.
type Roll struct {
	Count  Node
	Sides  Node
	Select *Select
}

// Select applies a selection to the active dice pool. The parser sets Count to
// Literal(1) for a keep/drop word written without a number and leaves it nil
// for advantage and disadvantage; evaluation treats a nil Count as 1. Next
// chains a further selection over the kept dice.
type Select struct {
	Selection Selection
	Count     Node
	Next      *Select
}

// Negate is unary minus.
type Negate struct {
	Operand Node
}

// Add is Left + Right.
type Add struct {
	Left, Right Node
}

// Subtract is Left - Right.
type Subtract struct {
	Left, Right Node
}

// Multiply is Left * Right.
type Multiply struct {
	Left, Right Node
}

// Divide is Left / Right, truncating toward zero.
type Divide struct {
	Left, Right Node
}

func (n *Literal) Accept(v Visitor) error  { return v.VisitLiteral(n) }
func (n *Roll) Accept(v Visitor) error     { return v.VisitRoll(n) }
func (n *Select) Accept(v Visitor) error   { return v.VisitSelect(n) }
func (n *Negate) Accept(v Visitor) error   { return v.VisitNegate(n) }
func (n *Add) Accept(v Visitor) error      { return v.VisitAdd(n) }
func (n *Subtract) Accept(v Visitor) error { return v.VisitSubtract(n) }
func (n *Multiply) Accept(v Visitor) error { return v.VisitMultiply(n) }
func (n *Divide) Accept(v Visitor) error   { return v.VisitDivide(n) }

func (*Literal) node()  {}
func (*Roll) node()     {}
func (*Select) node()   {}
func (*Negate) node()   {}
func (*Add) node()      {}
func (*Subtract) node() {}
func (*Multiply) node() {}
func (*Divide) node()   {}

// Children returns the direct children of n in traversal order: left then
// right for binary nodes, count then sides then selection for Roll, count
// then next for Select. Absent optional children are omitted.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Literal:
		return nil
	case *Roll:
		children := []Node{n.Count, n.Sides}
		if n.Select != nil {
			children = append(children, n.Select)
		}
		return children
	case *Select:
		var children []Node
		if n.Count != nil {
			children = append(children, n.Count)
		}
		if n.Next != nil {
			children = append(children, n.Next)
		}
		return children
	case *Negate:
		return []Node{n.Operand}
	case *Add:
		return []Node{n.Left, n.Right}
	case *Subtract:
		return []Node{n.Left, n.Right}
	case *Multiply:
		return []Node{n.Left, n.Right}
	case *Divide:
		return []Node{n.Left, n.Right}
	default:
		return nil
	}
}

// Walk calls fn for n and then every descendant in pre-order, following the
// Children order. The first error returned by fn stops the walk.
func Walk(n Node, fn func(Node) error) error {
	if n == nil {
		return nil
	}
	if err := fn(n); err != nil {
		return err
	}
	for _, child := range Children(n) {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}
