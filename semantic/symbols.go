package semantic

import (
	"github.com/jortega/sqlens/schema"
	"github.com/jortega/sqlens/sql"
)

// Symbol is one resolved reference: the exposed name (the alias when
// one is declared, otherwise the column name), the schema entity it
// resolved to, and the scope that introduced it ("SELECT.students",
// "WHERE.students").
type Symbol struct {
	Name   string
	Table  string
	Column string
	Type   schema.Type
	Size   int
	Scope  string
	Pos    sql.Position
}

// SymbolTable is the analyzer's output: resolutions in source order,
// plus identity lookups from AST nodes to their resolution. It is
// built once per analysis and discarded with the AST.
type SymbolTable struct {
	symbols []Symbol
	columns map[*sql.ColumnRef]int
	tables  map[*sql.TableRef]string
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{
		columns: make(map[*sql.ColumnRef]int),
		tables:  make(map[*sql.TableRef]string),
	}
}

// add records a symbol, optionally bound to the ColumnRef node that
// produced it (nil for wildcard expansions, which have no node per
// column).
func (st *SymbolTable) add(ref *sql.ColumnRef, sym Symbol) {
	st.symbols = append(st.symbols, sym)
	if ref != nil {
		st.columns[ref] = len(st.symbols) - 1
	}
}

// Symbols returns all resolutions in source order.
func (st *SymbolTable) Symbols() []Symbol {
	out := make([]Symbol, len(st.symbols))
	copy(out, st.symbols)
	return out
}

// Len returns the number of resolved symbols.
func (st *SymbolTable) Len() int { return len(st.symbols) }

// ResolveColumn returns the resolution for a specific ColumnRef node.
// The second result is false for references that failed to resolve.
func (st *SymbolTable) ResolveColumn(ref *sql.ColumnRef) (Symbol, bool) {
	i, ok := st.columns[ref]
	if !ok {
		return Symbol{}, false
	}
	return st.symbols[i], true
}

// ResolveTable returns the resolved table name for a TableRef node.
func (st *SymbolTable) ResolveTable(ref *sql.TableRef) (string, bool) {
	name, ok := st.tables[ref]
	return name, ok
}
