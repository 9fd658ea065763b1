package sql

import (
	"strings"
	"testing"
)

func TestParse_Projections(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		wantTable     string
		wantCount     int
		wantWildcard  bool
		wantAliases   []string
		wantHasFilter bool
	}{
		{
			name:        "three columns no filter",
			query:       "SELECT id, name, age FROM students;",
			wantTable:   "students",
			wantCount:   3,
			wantAliases: []string{"", "", ""},
		},
		{
			name:         "wildcard",
			query:        "SELECT * FROM courses",
			wantTable:    "courses",
			wantWildcard: true,
		},
		{
			name:        "aliases with AS",
			query:       "SELECT name AS estudiante, gpa AS promedio FROM students",
			wantTable:   "students",
			wantCount:   2,
			wantAliases: []string{"estudiante", "promedio"},
		},
		{
			name:          "filter present",
			query:         "SELECT id, title FROM courses WHERE credits >= 3;",
			wantTable:     "courses",
			wantCount:     2,
			wantAliases:   []string{"", ""},
			wantHasFilter: true,
		},
		{
			name:      "literal projection",
			query:     "SELECT 1, 'x' AS tag FROM students",
			wantTable: "students",
			wantCount: 2,
			wantAliases: []string{
				"", "tag",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if stmt.From.Name != tt.wantTable {
				t.Errorf("table = %q, want %q", stmt.From.Name, tt.wantTable)
			}
			if stmt.Wildcard != tt.wantWildcard {
				t.Errorf("wildcard = %v, want %v", stmt.Wildcard, tt.wantWildcard)
			}
			if len(stmt.Projections) != tt.wantCount {
				t.Fatalf("projections = %d, want %d", len(stmt.Projections), tt.wantCount)
			}
			for i, want := range tt.wantAliases {
				if got := stmt.Projections[i].Alias; got != want {
					t.Errorf("projection %d alias = %q, want %q", i, got, want)
				}
			}
			if (stmt.Where != nil) != tt.wantHasFilter {
				t.Errorf("filter present = %v, want %v", stmt.Where != nil, tt.wantHasFilter)
			}
		})
	}
}

func TestParse_FilterStructure(t *testing.T) {
	stmt, err := Parse("SELECT name, gpa FROM students WHERE age > 18 AND gpa >= 3.5")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	and, ok := stmt.Where.(*BinaryExpr)
	if !ok || and.Op != OpAnd {
		t.Fatalf("filter = %T (%v), want AND BinaryExpr", stmt.Where, stmt.Where)
	}

	left, ok := and.Left.(*Comparison)
	if !ok || left.Op != OpGt {
		t.Fatalf("left = %v, want age > 18", and.Left)
	}
	if col, ok := left.Left.(*ColumnRef); !ok || col.Name != "age" {
		t.Errorf("left operand = %v, want column age", left.Left)
	}
	if lit, ok := left.Right.(*Literal); !ok || lit.Kind != IntegerLit || lit.Int != 18 {
		t.Errorf("right operand = %v, want integer 18", left.Right)
	}

	right, ok := and.Right.(*Comparison)
	if !ok || right.Op != OpGe {
		t.Fatalf("right = %v, want gpa >= 3.5", and.Right)
	}
	if lit, ok := right.Right.(*Literal); !ok || lit.Kind != FloatLit || lit.Float != 3.5 {
		t.Errorf("right operand = %v, want float 3.5", right.Right)
	}
}

func TestParse_Precedence(t *testing.T) {
	// a = 1 OR b = 2 AND c = 3 must parse as a = 1 OR (b = 2 AND c = 3).
	stmt, err := Parse("SELECT id FROM t WHERE a = 1 OR b = 2 AND c = 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	or, ok := stmt.Where.(*BinaryExpr)
	if !ok || or.Op != OpOr {
		t.Fatalf("root = %v, want OR", stmt.Where)
	}
	if _, ok := or.Left.(*Comparison); !ok {
		t.Errorf("OR left = %T, want Comparison", or.Left)
	}
	and, ok := or.Right.(*BinaryExpr)
	if !ok || and.Op != OpAnd {
		t.Errorf("OR right = %T, want AND", or.Right)
	}
}

func TestParse_ParenthesesOverride(t *testing.T) {
	stmt, err := Parse("SELECT id FROM t WHERE (a = 1 OR b = 2) AND c = 3")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	and, ok := stmt.Where.(*BinaryExpr)
	if !ok || and.Op != OpAnd {
		t.Fatalf("root = %v, want AND", stmt.Where)
	}
	group, ok := and.Left.(*Grouped)
	if !ok {
		t.Fatalf("AND left = %T, want Grouped", and.Left)
	}
	if or, ok := group.Inner.(*BinaryExpr); !ok || or.Op != OpOr {
		t.Errorf("group inner = %v, want OR", group.Inner)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantExpected string
		wantFound    string
	}{
		{
			name:         "missing FROM",
			query:        "SELECT id, name students;",
			wantExpected: "FROM",
			wantFound:    `identifier "students"`,
		},
		{
			name:         "missing table name",
			query:        "SELECT id FROM WHERE age > 1",
			wantExpected: "table name",
			wantFound:    "WHERE",
		},
		{
			name:         "wildcard mixed into projection list",
			query:        "SELECT id, * FROM students",
			wantExpected: "column name or literal",
			wantFound:    `"*"`,
		},
		{
			name:         "wildcard followed by comma",
			query:        "SELECT *, id FROM students",
			wantExpected: "FROM",
			wantFound:    `","`,
		},
		{
			name:         "missing comparison operand",
			query:        "SELECT id FROM t WHERE age >",
			wantExpected: "column name or literal",
			wantFound:    "end of input",
		},
		{
			name:         "missing comparison operator",
			query:        "SELECT id FROM t WHERE age 18",
			wantExpected: "comparison operator (=, <>, <, <=, >, >=)",
			wantFound:    "number 18",
		},
		{
			name:         "dangling AND",
			query:        "SELECT id FROM t WHERE a = 1 AND",
			wantExpected: "column name or literal",
			wantFound:    "end of input",
		},
		{
			name:         "unbalanced parenthesis",
			query:        "SELECT id FROM t WHERE (a = 1",
			wantExpected: "closing parenthesis",
			wantFound:    "end of input",
		},
		{
			name:         "trailing tokens after statement",
			query:        "SELECT id FROM t; extra",
			wantExpected: "end of statement",
			wantFound:    `identifier "extra"`,
		},
		{
			name:         "missing projection list",
			query:        "SELECT FROM students",
			wantExpected: "column name or literal",
			wantFound:    "FROM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.query)
			if err == nil {
				t.Fatalf("Parse() expected error for query: %s", tt.query)
			}
			synErr, ok := err.(*SyntaxError)
			if !ok {
				t.Fatalf("Parse() error type = %T, want *SyntaxError", err)
			}
			if synErr.Expected != tt.wantExpected {
				t.Errorf("expected = %q, want %q", synErr.Expected, tt.wantExpected)
			}
			if got := synErr.Found.Describe(); got != tt.wantFound {
				t.Errorf("found = %q, want %q", got, tt.wantFound)
			}
		})
	}
}

func TestParse_MissingFromMessage(t *testing.T) {
	_, err := Parse("SELECT id, name students;")
	if err == nil {
		t.Fatal("Parse() expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "expected FROM") || !strings.Contains(msg, `identifier "students"`) {
		t.Errorf("message = %q, want expected FROM / found identifier", msg)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	// The canonical String() form of a parsed statement must itself
	// parse into an identical structure.
	queries := []string{
		"SELECT id, name, age FROM students;",
		"select * from courses",
		"SELECT name AS estudiante, gpa AS promedio FROM students WHERE gpa > 4.0;",
		"SELECT id FROM t WHERE (a = 1 OR b <> 2) AND c <= 'x'",
		"SELECT id FROM t WHERE a != 1",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			first, err := Parse(q)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			second, err := Parse(first.String())
			if err != nil {
				t.Fatalf("Parse(canonical) error = %v", err)
			}
			if first.String() != second.String() {
				t.Errorf("round trip mismatch: %q vs %q", first.String(), second.String())
			}
		})
	}
}

func TestParse_DepthLimit(t *testing.T) {
	query := "SELECT id FROM t WHERE " + strings.Repeat("(", MaxExpressionDepth+1) +
		"a = 1" + strings.Repeat(")", MaxExpressionDepth+1)
	if _, err := Parse(query); err == nil {
		t.Error("Parse() expected error for over-deep expression")
	}
}

func TestCountNodes(t *testing.T) {
	stmt, err := Parse("SELECT id FROM students WHERE age > 18")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// SelectStatement, Projection, ColumnRef(id), TableRef,
	// Comparison, ColumnRef(age), Literal(18).
	if got := CountNodes(stmt); got != 7 {
		t.Errorf("CountNodes() = %d, want 7", got)
	}
}
