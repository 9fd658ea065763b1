package semantic

import (
	"fmt"
	"strings"

	"github.com/jortega/sqlens/schema"
	"github.com/jortega/sqlens/sql"
)

// Analyzer validates statements against a catalog. The zero value is
// ready to use; an Analyzer holds no per-query state and is safe to
// reuse across sequential analyses.
type Analyzer struct {
	// StrictNumeric requires comparison operands to have exactly the
	// same declared type. The default treats INTEGER and FLOAT as one
	// numeric category, which is the usual SQL teaching rule.
	StrictNumeric bool
}

// Analyze is a convenience wrapper using the default rules.
func Analyze(stmt *sql.SelectStatement, reg *schema.Registry) (*SymbolTable, []sql.Diagnostic, []string) {
	return (&Analyzer{}).Analyze(stmt, reg)
}

// Analyze resolves stmt against reg. It returns the symbol table of
// successful resolutions, every diagnostic found in one pass, and
// spelling hints for unknown names. The statement and registry are
// only read, never modified.
func (a *Analyzer) Analyze(stmt *sql.SelectStatement, reg *schema.Registry) (*SymbolTable, []sql.Diagnostic, []string) {
	run := &analysis{
		analyzer: a,
		registry: reg,
		symbols:  newSymbolTable(),
	}
	run.statement(stmt)
	return run.symbols, run.diags, run.hints
}

// analysis is the per-query state of one Analyze call.
type analysis struct {
	analyzer *Analyzer
	registry *schema.Registry
	table    *schema.Table
	symbols  *SymbolTable
	diags    []sql.Diagnostic
	hints    []string
}

func (run *analysis) errorf(pos sql.Position, format string, args ...interface{}) {
	p := pos
	run.diags = append(run.diags, sql.Errorf(sql.PhaseSemantic, &p, format, args...))
}

func (run *analysis) hintf(format string, args ...interface{}) {
	run.hints = append(run.hints, fmt.Sprintf(format, args...))
}

func (run *analysis) statement(stmt *sql.SelectStatement) {
	// Table identity is required context for every column check, so
	// an unknown table aborts resolution instead of cascading into a
	// spurious "unknown column" per reference.
	table, ok := run.registry.Table(stmt.From.Name)
	if !ok {
		run.errorf(stmt.From.NamePos, "unknown table %q", stmt.From.Name)
		if matches := closest(stmt.From.Name, run.registry.TableNames()); len(matches) > 0 {
			run.hintf("did you mean table %s?", strings.Join(matches, ", "))
		} else {
			run.hintf("available tables: %s", strings.Join(run.registry.TableNames(), ", "))
		}
		return
	}
	run.table = table
	run.symbols.tables[stmt.From] = table.Name()

	run.projections(stmt)
	if stmt.Where != nil {
		run.expr(stmt.Where)
	}
}

func (run *analysis) projections(stmt *sql.SelectStatement) {
	if stmt.Wildcard {
		// SELECT * exposes every column of the table.
		for _, col := range run.table.Columns() {
			run.symbols.add(nil, Symbol{
				Name:   col.Name,
				Table:  run.table.Name(),
				Column: col.Name,
				Type:   col.Type,
				Size:   col.Size,
				Scope:  "SELECT." + run.table.Name(),
				Pos:    stmt.SelectPos,
			})
		}
		return
	}

	seenAliases := make(map[string]bool)
	for _, proj := range stmt.Projections {
		if proj.Alias != "" {
			if seenAliases[proj.Alias] {
				run.errorf(proj.AliasPos, "duplicate alias %q in projection list", proj.Alias)
			}
			seenAliases[proj.Alias] = true
		}

		ref, isColumn := proj.Expr.(*sql.ColumnRef)
		if !isColumn {
			// Literal projections need no catalog lookup.
			continue
		}

		if _, ok := run.resolveColumn(ref, "SELECT"); ok && proj.Alias != "" {
			// Re-expose the column under its alias.
			run.symbols.symbols[len(run.symbols.symbols)-1].Name = proj.Alias
		}
	}
}

// resolveColumn looks up ref in the statement's table, recording
// either a symbol or an "unknown column" diagnostic with hints.
func (run *analysis) resolveColumn(ref *sql.ColumnRef, clause string) (schema.Column, bool) {
	col, ok := run.table.Column(ref.Name)
	if !ok {
		run.errorf(ref.NamePos, "unknown column %q in table %s", ref.Name, run.table.Name())
		if matches := closest(ref.Name, run.table.ColumnNames()); len(matches) > 0 {
			run.hintf("did you mean %s?", strings.Join(matches, ", "))
		} else {
			run.hintf("columns in table %s: %s", run.table.Name(), strings.Join(run.table.ColumnNames(), ", "))
		}
		return schema.Column{}, false
	}
	run.symbols.add(ref, Symbol{
		Name:   ref.Name,
		Table:  run.table.Name(),
		Column: col.Name,
		Type:   col.Type,
		Size:   col.Size,
		Scope:  clause + "." + run.table.Name(),
		Pos:    ref.NamePos,
	})
	return col, true
}

// expr walks a WHERE expression. AND/OR operands are boolean by
// grammar construction, so only comparisons need semantic work.
func (run *analysis) expr(e sql.Expr) {
	switch n := e.(type) {
	case *sql.BinaryExpr:
		run.expr(n.Left)
		run.expr(n.Right)
	case *sql.Grouped:
		run.expr(n.Inner)
	case *sql.Comparison:
		run.comparison(n)
	}
}

func (run *analysis) comparison(cmp *sql.Comparison) {
	leftType, leftOK := run.operandType(cmp.Left)
	rightType, rightOK := run.operandType(cmp.Right)

	// An unresolved operand already produced its own diagnostic;
	// checking types against it would only add noise.
	if !leftOK || !rightOK {
		return
	}

	if !run.compatible(leftType, rightType) {
		run.errorf(cmp.OpPos, "incompatible types in comparison: %s %s %s (%s vs %s)",
			cmp.Left.String(), cmp.Op, cmp.Right.String(), leftType, rightType)
	}
}

// operandType resolves a comparison operand to its declared or
// literal type.
func (run *analysis) operandType(op sql.Operand) (schema.Type, bool) {
	switch n := op.(type) {
	case *sql.ColumnRef:
		col, ok := run.resolveColumn(n, "WHERE")
		if !ok {
			return 0, false
		}
		return col.Type, true
	case *sql.Literal:
		switch n.Kind {
		case sql.IntegerLit:
			return schema.TypeInteger, true
		case sql.FloatLit:
			return schema.TypeFloat, true
		default:
			return schema.TypeString, true
		}
	}
	return 0, false
}

// compatible applies the comparison type rule: strings only compare
// with strings, and numerics with numerics (or, under StrictNumeric,
// only with the identical type).
func (run *analysis) compatible(left, right schema.Type) bool {
	if run.analyzer.StrictNumeric {
		return left == right
	}
	return category(left) == category(right)
}

// category collapses the type lattice for the default rule: INTEGER
// and FLOAT unify as numeric, STRING stands alone.
func category(t schema.Type) schema.Type {
	if t == schema.TypeFloat {
		return schema.TypeInteger
	}
	return t
}
