package schema

import (
	"fmt"
	"strings"
)

// Type is a declared column type. The teaching subset knows three
// types; Integer and Float together form the numeric category used
// by the semantic phase's comparison check.
type Type int

const (
	TypeInteger Type = iota + 1
	TypeFloat
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeFloat:
		return "FLOAT"
	case TypeString:
		return "STRING"
	}
	return "UNKNOWN"
}

// ParseType maps a declared type name onto the three teaching types.
// Common SQL spellings (TEXT, REAL, INT, ...) are accepted so schema
// files written against a real database carry over unchanged.
func ParseType(name string) (Type, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "INTEGER", "INT", "BIGINT", "SMALLINT":
		return TypeInteger, nil
	case "FLOAT", "REAL", "DOUBLE", "NUMERIC", "DECIMAL":
		return TypeFloat, nil
	case "STRING", "TEXT", "VARCHAR", "CHAR":
		return TypeString, nil
	}
	return 0, fmt.Errorf("unknown column type %q", name)
}

// Column is one typed column. Size is the declared storage size in
// bytes; zero means unspecified.
type Column struct {
	Name string
	Type Type
	Size int
}

// Table is an ordered set of columns with unique names.
type Table struct {
	name    string
	columns []Column
	index   map[string]int
}

// NewTable builds a table, rejecting duplicate column names.
func NewTable(name string, columns []Column) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("table name cannot be empty")
	}
	t := &Table{
		name:    name,
		columns: make([]Column, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	copy(t.columns, columns)
	for i, c := range columns {
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("table %s: duplicate column %q", name, c.Name)
		}
		t.index[c.Name] = i
	}
	return t, nil
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Columns returns the columns in declaration order. The returned
// slice is a copy; the table itself stays immutable.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column looks up a column by name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Registry is the catalog: an ordered set of tables with unique
// names. Populate it up front, then treat it as read-only.
type Registry struct {
	names  []string
	tables map[string]*Table
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*Table)}
}

// Add registers a table, rejecting duplicate table names.
func (r *Registry) Add(t *Table) error {
	if _, dup := r.tables[t.name]; dup {
		return fmt.Errorf("duplicate table %q", t.name)
	}
	r.names = append(r.names, t.name)
	r.tables[t.name] = t
	return nil
}

// Table looks up a table by name.
func (r *Registry) Table(name string) (*Table, bool) {
	t, ok := r.tables[name]
	return t, ok
}

// TableNames returns the table names in registration order.
func (r *Registry) TableNames() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered tables.
func (r *Registry) Len() int { return len(r.names) }
