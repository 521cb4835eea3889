package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/louisbranch/rollexpr/internal/core/ast"
)

// Format names an output rendering of an expression tree.
type Format string

const (
	FormatText    Format = "text"
	FormatDot     Format = "dot"
	FormatMermaid Format = "mermaid"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatDot, FormatMermaid}

var (
	// ErrUnknownFormat indicates a format name outside Formats.
	ErrUnknownFormat = errors.New("unknown render format")

	errMissingNode = errors.New("render: missing node")
)

// ParseFormat maps a format name to a Format. The empty string selects
// FormatText.
func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatDot, FormatMermaid:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// Render writes root to w in the given format. Text output ends with a
// newline like the graph formats do.
func Render(w io.Writer, root ast.Node, format Format) error {
	switch format {
	case FormatText:
		text, err := Print(root)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, text)
		return err
	case FormatDot, FormatMermaid:
		return WriteGraph(w, root, format)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// WriteGraph writes root as a Graphviz DOT or Mermaid flowchart. Nodes get
// sequential ids (node0001, node0002, ...) in pre-order and edges are
// labelled with the child's role: count, sides, select, next, operand, left
// or right. The first write error stops the traversal.
func WriteGraph(w io.Writer, root ast.Node, format Format) error {
	if format != FormatDot && format != FormatMermaid {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	g := &graphWriter{w: w, format: format, nextID: 1}

	if format == FormatDot {
		if err := g.lines("graph {", "    graph [rankdir=TB]", "    node [shape=rect]", "    edge [fontsize=10]"); err != nil {
			return err
		}
	} else if err := g.lines("graph TB"); err != nil {
		return err
	}

	if _, err := g.visit(root); err != nil {
		return err
	}

	if format == FormatDot {
		return g.lines("}")
	}
	return nil
}

// edge is a labelled child of a graph node.
type edge struct {
	label string
	node  ast.Node
}

type graphWriter struct {
	w      io.Writer
	format Format
	nextID int
	ids    []string
}

func (g *graphWriter) lines(lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(g.w, line); err != nil {
			return err
		}
	}
	return nil
}

// visit writes n and its subtree and returns the id assigned to n.
func (g *graphWriter) visit(n ast.Node) (string, error) {
	if n == nil {
		return "", errMissingNode
	}
	if err := n.Accept(g); err != nil {
		return "", err
	}
	id := g.ids[len(g.ids)-1]
	g.ids = g.ids[:len(g.ids)-1]
	return id, nil
}

// emit writes a node labelled label, then each child and the edge leading to
// it, and leaves the node id on the id stack.
func (g *graphWriter) emit(label string, children ...edge) error {
	id := fmt.Sprintf("node%04x", g.nextID)
	g.nextID++

	var err error
	if g.format == FormatDot {
		_, err = fmt.Fprintf(g.w, "    %s [label=%q]\n", id, label)
	} else {
		_, err = fmt.Fprintf(g.w, "    %s(%q)\n", id, label)
	}
	if err != nil {
		return err
	}

	for _, child := range children {
		childID, err := g.visit(child.node)
		if err != nil {
			return err
		}
		if g.format == FormatDot {
			_, err = fmt.Fprintf(g.w, "    %s -- %s [label=%q]\n", id, childID, child.label)
		} else {
			_, err = fmt.Fprintf(g.w, "    %s --%s--- %s\n", id, child.label, childID)
		}
		if err != nil {
			return err
		}
	}

	g.ids = append(g.ids, id)
	return nil
}

func (g *graphWriter) VisitLiteral(n *ast.Literal) error {
	return g.emit(fmt.Sprint(n.Value))
}

func (g *graphWriter) VisitRoll(n *ast.Roll) error {
	children := []edge{{"count", n.Count}, {"sides", n.Sides}}
	if n.Select != nil {
		children = append(children, edge{"select", n.Select})
	}
	return g.emit("Roll", children...)
}

func (g *graphWriter) VisitSelect(n *ast.Select) error {
	var children []edge
	if n.Count != nil {
		children = append(children, edge{"count", n.Count})
	}
	if n.Next != nil {
		children = append(children, edge{"next", n.Next})
	}
	return g.emit(n.Selection.String(), children...)
}

func (g *graphWriter) VisitNegate(n *ast.Negate) error {
	return g.emit("-", edge{"operand", n.Operand})
}

func (g *graphWriter) VisitAdd(n *ast.Add) error {
	return g.emit("Add", edge{"left", n.Left}, edge{"right", n.Right})
}

func (g *graphWriter) VisitSubtract(n *ast.Subtract) error {
	return g.emit("Subtract", edge{"left", n.Left}, edge{"right", n.Right})
}

func (g *graphWriter) VisitMultiply(n *ast.Multiply) error {
	return g.emit("Multiply", edge{"left", n.Left}, edge{"right", n.Right})
}

func (g *graphWriter) VisitDivide(n *ast.Divide) error {
	return g.emit("Divide", edge{"left", n.Left}, edge{"right", n.Right})
}
