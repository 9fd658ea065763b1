package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/jortega/sqlens/pipeline"
	"github.com/jortega/sqlens/sql"
)

// TableFormatter renders a result as aligned text tables, one section
// per phase, the way the step-by-step classroom display shows them.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes every populated section of res. Sections for phases
// that never ran are omitted rather than rendered empty.
func (t *TableFormatter) Format(res *pipeline.Result) error {
	if _, err := fmt.Fprintf(t.writer, "query: %s\n\n", res.Query); err != nil {
		return err
	}

	t.tokenSection(res.Tokens)
	if res.Statement != nil {
		t.treeSection(res)
	}
	if res.Symbols != nil && res.Symbols.Len() > 0 {
		t.symbolSection(res)
	}
	t.diagnosticSection(res)

	_, err := fmt.Fprintf(t.writer, "metrics: %d tokens, %d ast nodes, %d symbols\n",
		res.Metrics.Tokens, res.Metrics.ASTNodes, res.Metrics.Symbols)
	return err
}

func (t *TableFormatter) tokenSection(tokens []sql.Token) {
	fmt.Fprintln(t.writer, "tokens:")
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader([]string{"#", "Kind", "Lexeme", "Position"})
	n := 0
	for _, tok := range tokens {
		if tok.Kind == sql.TokenEOF {
			continue
		}
		table.Append([]string{
			strconv.Itoa(n),
			tok.Kind.String(),
			tok.Lexeme,
			tok.Pos.String(),
		})
		n++
	}
	table.Render()
	fmt.Fprintln(t.writer)
}

func (t *TableFormatter) treeSection(res *pipeline.Result) {
	fmt.Fprintln(t.writer, "syntax tree:")
	tree := NewTreeFormatter(t.writer)
	tree.Format(res)
	fmt.Fprintln(t.writer)
}

func (t *TableFormatter) symbolSection(res *pipeline.Result) {
	fmt.Fprintln(t.writer, "symbols:")
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader([]string{"Name", "Table", "Column", "Type", "Scope", "Position"})
	for _, sym := range res.Symbols.Symbols() {
		table.Append([]string{
			sym.Name,
			sym.Table,
			sym.Column,
			sym.Type.String(),
			sym.Scope,
			sym.Pos.String(),
		})
	}
	table.Render()
	fmt.Fprintln(t.writer)
}

func (t *TableFormatter) diagnosticSection(res *pipeline.Result) {
	if len(res.Diagnostics) == 0 {
		fmt.Fprintln(t.writer, "no errors found")
	} else {
		fmt.Fprintln(t.writer, "diagnostics:")
		table := tablewriter.NewWriter(t.writer)
		table.SetHeader([]string{"Phase", "Severity", "Position", "Message"})
		for _, d := range res.Diagnostics {
			at := ""
			if d.Pos != nil {
				at = d.Pos.String()
			}
			table.Append([]string{d.Phase.String(), d.Severity.String(), at, d.Message})
		}
		table.Render()
	}
	for _, hint := range res.Hints {
		fmt.Fprintf(t.writer, "hint: %s\n", hint)
	}
	fmt.Fprintln(t.writer)
}
