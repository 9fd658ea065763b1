package sql

import (
	"strings"
)

// Node is an element of the abstract syntax tree. Every node records
// the position of the token that introduced it, and renders a
// canonical text form via String(). The tree is strictly owned: each
// node owns its children outright, nothing is shared, and the whole
// tree is discarded after one analysis.
type Node interface {
	Pos() Position
	String() string
}

// Operand is an expression allowed on either side of a comparison or
// in a projection: a column reference or a literal.
type Operand interface {
	Node
	operandNode()
}

// Expr is a boolean-producing WHERE expression: a comparison, an
// AND/OR combination, or a parenthesized group. The grammar only
// builds boolean expressions here, so no separate boolean-ness check
// is needed later.
type Expr interface {
	Node
	exprNode()
}

// SelectStatement is the root of the tree: a projection list (or the
// * wildcard), one source table, and an optional filter.
type SelectStatement struct {
	SelectPos   Position
	Wildcard    bool // SELECT *; mutually exclusive with Projections
	Projections []*Projection
	From        *TableRef
	Where       Expr // nil when there is no WHERE clause
}

func (s *SelectStatement) Pos() Position { return s.SelectPos }

func (s *SelectStatement) String() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if s.Wildcard {
		b.WriteString("*")
	} else {
		for i, p := range s.Projections {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
	}
	b.WriteString(" FROM ")
	b.WriteString(s.From.String())
	if s.Where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(s.Where.String())
	}
	return b.String()
}

// Projection is one SELECT list entry: a column or literal with an
// optional AS alias.
type Projection struct {
	Expr     Operand
	Alias    string // empty when no alias
	AliasPos Position
}

func (p *Projection) Pos() Position { return p.Expr.Pos() }

func (p *Projection) String() string {
	if p.Alias == "" {
		return p.Expr.String()
	}
	return p.Expr.String() + " AS " + p.Alias
}

// TableRef names the single FROM table.
type TableRef struct {
	Name    string
	NamePos Position
}

func (t *TableRef) Pos() Position  { return t.NamePos }
func (t *TableRef) String() string { return t.Name }

// ColumnRef names a column of the FROM table. The semantic analyzer
// resolves each ColumnRef node, by identity, to a schema column.
type ColumnRef struct {
	Name    string
	NamePos Position
}

func (c *ColumnRef) Pos() Position  { return c.NamePos }
func (c *ColumnRef) String() string { return c.Name }
func (c *ColumnRef) operandNode()   {}

// LiteralKind discriminates literal values.
type LiteralKind int

const (
	IntegerLit LiteralKind = iota
	FloatLit
	StringLit
)

func (k LiteralKind) String() string {
	switch k {
	case IntegerLit:
		return "INTEGER"
	case FloatLit:
		return "FLOAT"
	case StringLit:
		return "STRING"
	}
	return "UNKNOWN"
}

// Literal is a numeric or string constant. Text preserves the source
// spelling; the typed fields carry the decoded value for whichever
// kind applies.
type Literal struct {
	Kind   LiteralKind
	Text   string // source spelling, quotes included for strings
	Int    int64
	Float  float64
	Str    string
	LitPos Position
}

func (l *Literal) Pos() Position  { return l.LitPos }
func (l *Literal) String() string { return l.Text }
func (l *Literal) operandNode()   {}

// CompareOp is a comparison operator.
type CompareOp int

const (
	OpEq CompareOp = iota // =
	OpNe                  // <> (also spelled !=)
	OpLt                  // <
	OpLe                  // <=
	OpGt                  // >
	OpGe                  // >=
)

// String returns the canonical spelling; != normalizes to <>.
func (op CompareOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNe:
		return "<>"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	}
	return "?"
}

// Comparison is `operand op operand`, the highest-precedence boolean
// expression.
type Comparison struct {
	Left  Operand
	Op    CompareOp
	OpPos Position
	Right Operand
}

func (c *Comparison) Pos() Position { return c.Left.Pos() }
func (c *Comparison) String() string {
	return c.Left.String() + " " + c.Op.String() + " " + c.Right.String()
}
func (c *Comparison) exprNode() {}

// LogicalOp is a boolean connective.
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
)

func (op LogicalOp) String() string {
	if op == OpAnd {
		return "AND"
	}
	return "OR"
}

// BinaryExpr combines two boolean expressions with AND or OR. The
// parser encodes precedence structurally: OR binds loosest, AND
// tighter, comparisons tightest.
type BinaryExpr struct {
	Left  Expr
	Op    LogicalOp
	OpPos Position
	Right Expr
}

func (b *BinaryExpr) Pos() Position { return b.Left.Pos() }
func (b *BinaryExpr) String() string {
	return b.Left.String() + " " + b.Op.String() + " " + b.Right.String()
}
func (b *BinaryExpr) exprNode() {}

// Grouped is a parenthesized boolean expression. It is kept as its
// own node so the tree the learner sees matches the parentheses they
// typed.
type Grouped struct {
	LParen Position
	Inner  Expr
}

func (g *Grouped) Pos() Position  { return g.LParen }
func (g *Grouped) String() string { return "(" + g.Inner.String() + ")" }
func (g *Grouped) exprNode()      {}

// Walk calls fn for node and every node below it, parents first.
func Walk(node Node, fn func(Node)) {
	if node == nil {
		return
	}
	fn(node)
	switch n := node.(type) {
	case *SelectStatement:
		for _, p := range n.Projections {
			Walk(p, fn)
		}
		Walk(n.From, fn)
		if n.Where != nil {
			Walk(n.Where, fn)
		}
	case *Projection:
		Walk(n.Expr, fn)
	case *Comparison:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Grouped:
		Walk(n.Inner, fn)
	}
}

// CountNodes returns the number of nodes in the tree rooted at node.
func CountNodes(node Node) int {
	count := 0
	Walk(node, func(Node) { count++ })
	return count
}
