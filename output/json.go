package output

import (
	"encoding/json"
	"io"

	"github.com/jortega/sqlens/pipeline"
	"github.com/jortega/sqlens/semantic"
	"github.com/jortega/sqlens/sql"
)

// JSONFormatter outputs one analysis result as a single JSON document
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes res as an indented JSON document.
func (j *JSONFormatter) Format(res *pipeline.Result) error {
	encoder := json.NewEncoder(j.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(resultView(res))
}

// The view types pin down a stable wire shape independent of the
// in-memory structs, so internal refactors cannot silently change
// what machine consumers see.

type tokenJSON struct {
	Kind   string `json:"kind"`
	Lexeme string `json:"lexeme"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Offset int    `json:"offset"`
}

type nodeJSON struct {
	Label    string     `json:"label"`
	Children []nodeJSON `json:"children,omitempty"`
}

type symbolJSON struct {
	Name   string `json:"name"`
	Table  string `json:"table"`
	Column string `json:"column"`
	Type   string `json:"type"`
	Size   int    `json:"size,omitempty"`
	Scope  string `json:"scope"`
	At     string `json:"at"`
}

type diagnosticJSON struct {
	Phase    string `json:"phase"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

type runJSON struct {
	ID          string           `json:"id"`
	Query       string           `json:"query"`
	Phase       string           `json:"phase"`
	Valid       bool             `json:"valid"`
	Tokens      []tokenJSON      `json:"tokens"`
	AST         *nodeJSON        `json:"ast,omitempty"`
	Symbols     []symbolJSON     `json:"symbols,omitempty"`
	Diagnostics []diagnosticJSON `json:"diagnostics"`
	Hints       []string         `json:"hints,omitempty"`
	Metrics     pipeline.Metrics `json:"metrics"`
}

func resultView(res *pipeline.Result) runJSON {
	view := runJSON{
		ID:          res.ID,
		Query:       res.Query,
		Phase:       res.Phase.String(),
		Valid:       !res.HasErrors(),
		Tokens:      tokenViews(res.Tokens),
		Diagnostics: diagnosticViews(res.Diagnostics),
		Hints:       res.Hints,
		Metrics:     res.Metrics,
	}
	if res.Statement != nil {
		ast := nodeView(statementTree(res.Statement))
		view.AST = &ast
	}
	if res.Symbols != nil {
		view.Symbols = symbolViews(res.Symbols.Symbols())
	}
	return view
}

func tokenViews(tokens []sql.Token) []tokenJSON {
	out := make([]tokenJSON, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind == sql.TokenEOF {
			continue
		}
		out = append(out, tokenJSON{
			Kind:   tok.Kind.String(),
			Lexeme: tok.Lexeme,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
			Offset: tok.Pos.Offset,
		})
	}
	return out
}

func nodeView(n *treeNode) nodeJSON {
	view := nodeJSON{Label: n.label}
	for _, child := range n.children {
		view.Children = append(view.Children, nodeView(child))
	}
	return view
}

func symbolViews(symbols []semantic.Symbol) []symbolJSON {
	out := make([]symbolJSON, len(symbols))
	for i, sym := range symbols {
		out[i] = symbolJSON{
			Name:   sym.Name,
			Table:  sym.Table,
			Column: sym.Column,
			Type:   sym.Type.String(),
			Size:   sym.Size,
			Scope:  sym.Scope,
			At:     sym.Pos.String(),
		}
	}
	return out
}

func diagnosticViews(diags []sql.Diagnostic) []diagnosticJSON {
	out := make([]diagnosticJSON, len(diags))
	for i, d := range diags {
		out[i] = diagnosticJSON{
			Phase:    d.Phase.String(),
			Severity: d.Severity.String(),
			Message:  d.Message,
		}
		if d.Pos != nil {
			out[i].Line = d.Pos.Line
			out[i].Column = d.Pos.Column
		}
	}
	return out
}
