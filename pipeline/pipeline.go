// Package pipeline runs the analysis phases in strict sequence over
// one query (tokenize, then parse, then validate) and gathers
// everything a host or visualization layer needs into a single Result.
//
// The pipeline owns no shared state: every Run call builds its own
// token sequence, AST, symbol table, and diagnostics, so concurrent
// runs over one read-only schema registry are safe.
//
// Example usage:
//
//	res := pipeline.Run("SELECT id, apellido FROM students;", schema.Demo())
//	for _, d := range res.Diagnostics {
//	    fmt.Println(d)
//	}
package pipeline

import (
	"github.com/google/uuid"

	"github.com/jortega/sqlens/schema"
	"github.com/jortega/sqlens/semantic"
	"github.com/jortega/sqlens/sql"
)

// Options adjusts analysis behavior.
type Options struct {
	// StrictNumeric requires exact declared-type equality in
	// comparisons instead of Integer/Float unification.
	StrictNumeric bool
}

// Metrics summarizes one run for the step-by-step display.
type Metrics struct {
	Tokens   int `json:"tokens"`
	ASTNodes int `json:"ast_nodes"`
	Symbols  int `json:"symbols"`
}

// Result is the complete outcome of analyzing one query. Fields past
// the phase that faulted stay zero: a lexical fault leaves Statement
// nil, a syntactic fault leaves Symbols nil. An empty Diagnostics
// slice signals a fully valid query.
type Result struct {
	// ID uniquely names this run so a visualization layer can key
	// rendered artifacts to it.
	ID    string
	Query string

	Tokens      []sql.Token
	Statement   *sql.SelectStatement
	Symbols     *semantic.SymbolTable
	Diagnostics []sql.Diagnostic
	Hints       []string

	// Phase is the last phase that executed, whether or not it
	// succeeded.
	Phase   sql.Phase
	Metrics Metrics
}

// HasErrors reports whether any diagnostic is an error.
func (r *Result) HasErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == sql.SeverityError {
			return true
		}
	}
	return false
}

// Run analyzes query against reg with default options.
func Run(query string, reg *schema.Registry) *Result {
	return RunWith(query, reg, Options{})
}

// RunWith analyzes query against reg. Lexical and syntactic faults
// are fail-fast and yield exactly one diagnostic; semantic findings
// accumulate. The function never panics and never logs; every
// outcome is data on the Result.
func RunWith(query string, reg *schema.Registry, opts Options) *Result {
	res := &Result{
		ID:    uuid.NewString(),
		Query: query,
		Phase: sql.PhaseLexical,
	}

	tokens, err := sql.Tokenize(query)
	res.Tokens = tokens
	res.Metrics.Tokens = countNonEOF(tokens)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, lexDiagnostic(err))
		return res
	}

	res.Phase = sql.PhaseSyntactic
	stmt, err := sql.ParseStatement(tokens)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, syntaxDiagnostic(err))
		res.Hints = append(res.Hints, syntaxHints(err)...)
		return res
	}
	res.Statement = stmt
	res.Metrics.ASTNodes = sql.CountNodes(stmt)

	res.Phase = sql.PhaseSemantic
	analyzer := &semantic.Analyzer{StrictNumeric: opts.StrictNumeric}
	symbols, diags, hints := analyzer.Analyze(stmt, reg)
	res.Symbols = symbols
	res.Diagnostics = append(res.Diagnostics, diags...)
	res.Hints = append(res.Hints, hints...)
	res.Metrics.Symbols = symbols.Len()

	return res
}

func countNonEOF(tokens []sql.Token) int {
	n := 0
	for _, t := range tokens {
		if t.Kind != sql.TokenEOF {
			n++
		}
	}
	return n
}

func lexDiagnostic(err error) sql.Diagnostic {
	if lexErr, ok := err.(*sql.LexError); ok {
		pos := lexErr.Pos
		return sql.Errorf(sql.PhaseLexical, &pos, "%s", lexErr.Msg)
	}
	return sql.Errorf(sql.PhaseLexical, nil, "%s", err)
}

func syntaxDiagnostic(err error) sql.Diagnostic {
	if synErr, ok := err.(*sql.SyntaxError); ok {
		pos := synErr.Found.Pos
		return sql.Errorf(sql.PhaseSyntactic, &pos, "expected %s, found %s",
			synErr.Expected, synErr.Found.Describe())
	}
	return sql.Errorf(sql.PhaseSyntactic, nil, "%s", err)
}

// syntaxHints turns the expectation of a syntax fault into a short
// teaching hint.
func syntaxHints(err error) []string {
	synErr, ok := err.(*sql.SyntaxError)
	if !ok {
		return nil
	}
	switch synErr.Expected {
	case "FROM":
		return []string{"add a FROM clause: FROM <table>"}
	case "table name":
		return []string{"FROM must be followed by a table name"}
	case "closing parenthesis":
		return []string{"check that parentheses in the WHERE expression are balanced"}
	case "comparison operator (=, <>, <, <=, >, >=)":
		return []string{"a comparison needs an operator: =, <>, <, <=, >, >="}
	case "alias name after AS":
		return []string{"AS must be followed by an alias: SELECT col AS alias"}
	case "end of statement":
		return []string{"only a single SELECT statement is supported"}
	}
	return nil
}
