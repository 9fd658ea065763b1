package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jortega/sqlens/pipeline"
)

// DOTFormatter emits the syntax tree as Graphviz DOT source, one
// digraph per result, ready for `dot -Tsvg`.
type DOTFormatter struct {
	writer io.Writer
}

// NewDOTFormatter creates a new Graphviz formatter
func NewDOTFormatter(w io.Writer) *DOTFormatter {
	return &DOTFormatter{writer: w}
}

// SetOutput sets the output writer
func (d *DOTFormatter) SetOutput(w io.Writer) {
	d.writer = w
}

// Format writes the syntax tree of res as a digraph.
func (d *DOTFormatter) Format(res *pipeline.Result) error {
	if res.Statement == nil {
		return fmt.Errorf("no syntax tree: analysis stopped in the %s phase", res.Phase)
	}

	var sb strings.Builder
	sb.WriteString("digraph ast {\n")
	sb.WriteString("  node [shape=box, fontname=\"monospace\"];\n")
	next := 0
	writeDOT(&sb, statementTree(res.Statement), &next)
	sb.WriteString("}\n")

	_, err := io.WriteString(d.writer, sb.String())
	return err
}

// writeDOT declares node n and its edges, returning n's identifier.
func writeDOT(sb *strings.Builder, n *treeNode, next *int) int {
	id := *next
	*next++
	fmt.Fprintf(sb, "  n%d [label=%q];\n", id, n.label)
	for _, child := range n.children {
		childID := writeDOT(sb, child, next)
		fmt.Fprintf(sb, "  n%d -> n%d;\n", id, childID)
	}
	return id
}
