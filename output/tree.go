package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jortega/sqlens/pipeline"
	"github.com/jortega/sqlens/sql"
)

// TreeFormatter dumps the syntax tree as indented text, one node per
// line, two spaces per depth level.
type TreeFormatter struct {
	writer io.Writer
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(w io.Writer) *TreeFormatter {
	return &TreeFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TreeFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes the syntax tree of res. A run that faulted before the
// parse produced a tree yields a short notice instead.
func (t *TreeFormatter) Format(res *pipeline.Result) error {
	if res.Statement == nil {
		_, err := fmt.Fprintf(t.writer, "no syntax tree: analysis stopped in the %s phase\n", res.Phase)
		return err
	}
	var sb strings.Builder
	writeTree(&sb, statementTree(res.Statement), 0)
	_, err := io.WriteString(t.writer, sb.String())
	return err
}

func writeTree(sb *strings.Builder, n *treeNode, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(n.label)
	sb.WriteByte('\n')
	for _, child := range n.children {
		writeTree(sb, child, depth+1)
	}
}

// treeNode is the display form of one syntax tree node, shared by the
// tree, dot, and json formatters.
type treeNode struct {
	label    string
	children []*treeNode
}

func (n *treeNode) add(child *treeNode) *treeNode {
	n.children = append(n.children, child)
	return child
}

func statementTree(stmt *sql.SelectStatement) *treeNode {
	root := &treeNode{label: "SELECT"}
	if stmt.Wildcard {
		root.add(&treeNode{label: "*"})
	}
	for _, proj := range stmt.Projections {
		label := operandLabel(proj.Expr)
		if proj.Alias != "" {
			label += " AS " + proj.Alias
		}
		root.add(&treeNode{label: label})
	}
	root.add(&treeNode{label: "FROM " + stmt.From.Name})
	if stmt.Where != nil {
		root.add(&treeNode{label: "WHERE"}).add(exprTree(stmt.Where))
	}
	return root
}

func exprTree(e sql.Expr) *treeNode {
	switch n := e.(type) {
	case *sql.BinaryExpr:
		node := &treeNode{label: n.Op.String()}
		node.add(exprTree(n.Left))
		node.add(exprTree(n.Right))
		return node
	case *sql.Grouped:
		node := &treeNode{label: "(...)"}
		node.add(exprTree(n.Inner))
		return node
	case *sql.Comparison:
		node := &treeNode{label: n.Op.String()}
		node.add(&treeNode{label: operandLabel(n.Left)})
		node.add(&treeNode{label: operandLabel(n.Right)})
		return node
	}
	return &treeNode{label: e.String()}
}

func operandLabel(op sql.Operand) string {
	switch n := op.(type) {
	case *sql.ColumnRef:
		return "column " + n.Name
	case *sql.Literal:
		return "literal " + n.Text
	}
	return op.String()
}
