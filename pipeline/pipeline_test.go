package pipeline

import (
	"strings"
	"testing"

	"github.com/jortega/sqlens/schema"
	"github.com/jortega/sqlens/sql"
)

func TestRun_ValidQuery(t *testing.T) {
	res := Run("SELECT id, name, age FROM students;", schema.Demo())

	if res.HasErrors() {
		t.Fatalf("diagnostics = %v, want none", res.Diagnostics)
	}
	if res.Phase != sql.PhaseSemantic {
		t.Errorf("phase = %v, want semantic", res.Phase)
	}
	if res.Statement == nil || len(res.Statement.Projections) != 3 {
		t.Errorf("statement = %+v, want 3 projections", res.Statement)
	}
	if res.Statement.Where != nil {
		t.Error("unexpected filter")
	}
	if res.Metrics.Tokens == 0 || res.Metrics.ASTNodes == 0 || res.Metrics.Symbols != 3 {
		t.Errorf("metrics = %+v", res.Metrics)
	}
	if res.ID == "" {
		t.Error("run ID is empty")
	}
}

func TestRun_DistinctIDs(t *testing.T) {
	reg := schema.Demo()
	a := Run("SELECT id FROM students", reg)
	b := Run("SELECT id FROM students", reg)
	if a.ID == b.ID {
		t.Errorf("two runs share ID %q", a.ID)
	}
}

func TestRun_LexicalFault(t *testing.T) {
	res := Run("SELECT id @ FROM students", schema.Demo())

	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Phase != sql.PhaseLexical || d.Severity != sql.SeverityError {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Pos == nil || d.Pos.Column != 11 {
		t.Errorf("position = %v, want column 11", d.Pos)
	}
	if res.Phase != sql.PhaseLexical {
		t.Errorf("phase = %v, want lexical", res.Phase)
	}
	// Tokens up to the fault are still surfaced for display.
	if res.Metrics.Tokens != 2 {
		t.Errorf("partial tokens = %d, want 2", res.Metrics.Tokens)
	}
	if res.Statement != nil || res.Symbols != nil {
		t.Error("later phases must not run after a lexical fault")
	}
}

func TestRun_SyntacticFault(t *testing.T) {
	res := Run("SELECT id, name students;", schema.Demo())

	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Phase != sql.PhaseSyntactic {
		t.Errorf("phase = %v, want syntactic", d.Phase)
	}
	if !strings.Contains(d.Message, "expected FROM") ||
		!strings.Contains(d.Message, `identifier "students"`) {
		t.Errorf("message = %q", d.Message)
	}
	if len(res.Hints) == 0 || !strings.Contains(res.Hints[0], "FROM") {
		t.Errorf("hints = %v, want a FROM hint", res.Hints)
	}
	if res.Statement != nil || res.Symbols != nil {
		t.Error("semantic phase must not run after a syntactic fault")
	}
}

func TestRun_SemanticFault(t *testing.T) {
	res := Run("SELECT id, apellido FROM students;", schema.Demo())

	if len(res.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %v, want exactly one", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Phase != sql.PhaseSemantic {
		t.Errorf("phase = %v, want semantic", d.Phase)
	}
	if !strings.Contains(d.Message, "unknown column") {
		t.Errorf("message = %q", d.Message)
	}
	// The AST is still available for rendering.
	if res.Statement == nil {
		t.Error("statement missing despite successful parse")
	}
}

func TestRun_StrictNumericOption(t *testing.T) {
	reg := schema.Demo()
	query := "SELECT id FROM students WHERE age >= 3.5"

	if res := Run(query, reg); res.HasErrors() {
		t.Errorf("default: diagnostics = %v, want none", res.Diagnostics)
	}
	if res := RunWith(query, reg, Options{StrictNumeric: true}); !res.HasErrors() {
		t.Error("strict: expected an incompatible-types error")
	}
}

// TestRun_SmokeWalkthrough mirrors the classic demo walkthrough: a
// mix of valid queries and queries with one expected fault each.
func TestRun_SmokeWalkthrough(t *testing.T) {
	reg := schema.Demo()
	tests := []struct {
		query     string
		wantPhase sql.Phase
		wantErrs  int
	}{
		{"SELECT id, name, age FROM students;", sql.PhaseSemantic, 0},
		{"SELECT id, title FROM courses WHERE credits >= 3;", sql.PhaseSemantic, 0},
		{"SELECT name, gpa FROM students WHERE age > 18 AND gpa >= 3.5;", sql.PhaseSemantic, 0},
		{"SELECT name AS estudiante, gpa AS promedio FROM students WHERE gpa > 4.0;", sql.PhaseSemantic, 0},
		{"SELECT id, apellido FROM students;", sql.PhaseSemantic, 1},
		{"SELECT id, name students;", sql.PhaseSyntactic, 1},
		{"SELECT id FROM nosuchtable;", sql.PhaseSemantic, 1},
		{"SELECT id FROM students WHERE name > 5;", sql.PhaseSemantic, 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res := Run(tt.query, reg)
			if res.Phase != tt.wantPhase {
				t.Errorf("phase = %v, want %v", res.Phase, tt.wantPhase)
			}
			if len(res.Diagnostics) != tt.wantErrs {
				t.Errorf("diagnostics = %v, want %d", res.Diagnostics, tt.wantErrs)
			}
		})
	}
}

// TestRun_StructuralRoundTrip re-analyzes the canonical text form of
// every valid statement and checks the structure survives.
func TestRun_StructuralRoundTrip(t *testing.T) {
	reg := schema.Demo()
	queries := []string{
		"select id , name from students",
		"SELECT * FROM courses;",
		"SELECT name AS n FROM students WHERE (age > 18 OR gpa >= 3.5) AND name <> 'Ana';",
	}
	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			first := Run(q, reg)
			if first.HasErrors() {
				t.Fatalf("diagnostics = %v", first.Diagnostics)
			}
			second := Run(first.Statement.String(), reg)
			if second.HasErrors() {
				t.Fatalf("canonical form does not re-analyze: %v", second.Diagnostics)
			}
			if first.Statement.String() != second.Statement.String() {
				t.Errorf("round trip mismatch: %q vs %q",
					first.Statement.String(), second.Statement.String())
			}
			if first.Metrics.Symbols != second.Metrics.Symbols {
				t.Errorf("symbol count changed: %d vs %d",
					first.Metrics.Symbols, second.Metrics.Symbols)
			}
		})
	}
}
