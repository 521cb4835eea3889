// Package render turns dice expression trees back into text: the canonical
// notation and Graphviz or Mermaid graphs of the tree.
package render

import (
	"strconv"
	"strings"

	"github.com/louisbranch/rollexpr/internal/core/ast"
)

// Print returns the canonical notation for root. Parsing the output yields a
// tree equal to root for any tree the parser produced.
//
// Rolls always spell out count and sides ("1d6", "2d100"), selections use
// their long words ("kh", "dl", "adv"), sums and differences are spaced and
// multiplication prints as "×".
func Print(root ast.Node) (string, error) {
	p := &printer{}
	if err := p.print(root); err != nil {
		return "", err
	}
	return p.b.String(), nil
}

type printer struct {
	b strings.Builder
}

func (p *printer) print(n ast.Node) error {
	if n == nil {
		return errMissingNode
	}
	return n.Accept(p)
}

// group prints n wrapped in parentheses when wrap is true.
func (p *printer) group(n ast.Node, wrap bool) error {
	if !wrap {
		return p.print(n)
	}
	p.b.WriteByte('(')
	if err := p.print(n); err != nil {
		return err
	}
	p.b.WriteByte(')')
	return nil
}

func (p *printer) binary(left, right ast.Node, op string, wrapLeft, wrapRight func(ast.Node) bool) error {
	if err := p.group(left, wrapLeft(left)); err != nil {
		return err
	}
	p.b.WriteString(op)
	return p.group(right, wrapRight(right))
}

func (p *printer) VisitLiteral(n *ast.Literal) error {
	p.b.WriteString(strconv.Itoa(n.Value))
	return nil
}

func (p *printer) VisitRoll(n *ast.Roll) error {
	if err := p.group(n.Count, !isLiteral(n.Count)); err != nil {
		return err
	}
	p.b.WriteByte('d')
	if err := p.group(n.Sides, !isLiteral(n.Sides)); err != nil {
		return err
	}
	if n.Select == nil {
		return nil
	}
	return n.Select.Accept(p)
}

func (p *printer) VisitSelect(n *ast.Select) error {
	p.b.WriteString(n.Selection.Notation())
	if n.Count != nil {
		if err := p.group(n.Count, !isLiteral(n.Count)); err != nil {
			return err
		}
	}
	if n.Next == nil {
		return nil
	}
	// Two words in a row would scan as one.
	if n.Count == nil {
		p.b.WriteByte(' ')
	}
	return n.Next.Accept(p)
}

func (p *printer) VisitNegate(n *ast.Negate) error {
	p.b.WriteByte('-')
	return p.group(n.Operand, isBinary(n.Operand))
}

func (p *printer) VisitAdd(n *ast.Add) error {
	return p.binary(n.Left, n.Right, " + ", never, isSum)
}

func (p *printer) VisitSubtract(n *ast.Subtract) error {
	return p.binary(n.Left, n.Right, " - ", never, isSum)
}

func (p *printer) VisitMultiply(n *ast.Multiply) error {
	return p.binary(n.Left, n.Right, " × ", isSum, isBinary)
}

func (p *printer) VisitDivide(n *ast.Divide) error {
	return p.binary(n.Left, n.Right, " / ", isSum, isBinary)
}

func never(ast.Node) bool { return false }

func isLiteral(n ast.Node) bool {
	_, ok := n.(*ast.Literal)
	return ok
}

func isSum(n ast.Node) bool {
	switch n.(type) {
	case *ast.Add, *ast.Subtract:
		return true
	}
	return false
}

func isBinary(n ast.Node) bool {
	switch n.(type) {
	case *ast.Add, *ast.Subtract, *ast.Multiply, *ast.Divide:
		return true
	}
	return false
}
