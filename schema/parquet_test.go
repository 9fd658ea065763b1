package schema

import (
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type studentRow struct {
	ID   int64   `parquet:"id"`
	Name string  `parquet:"name"`
	Age  int32   `parquet:"age"`
	GPA  float64 `parquet:"gpa"`
}

func writeStudentsFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "students.parquet")
	rows := []studentRow{
		{ID: 1, Name: "Ana Torres", Age: 20, GPA: 3.4},
		{ID: 2, Name: "Luis Perez", Age: 22, GPA: 3.8},
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestFromParquet(t *testing.T) {
	path := writeStudentsFile(t)

	table, err := FromParquet(path, "")
	if err != nil {
		t.Fatalf("FromParquet() error = %v", err)
	}
	if table.Name() != "students" {
		t.Errorf("Name() = %q, want %q (from file base name)", table.Name(), "students")
	}

	wantTypes := map[string]Type{
		"id":   TypeInteger,
		"name": TypeString,
		"age":  TypeInteger,
		"gpa":  TypeFloat,
	}
	if got := len(table.Columns()); got != len(wantTypes) {
		t.Fatalf("column count = %d, want %d (columns: %v)", got, len(wantTypes), table.ColumnNames())
	}
	for name, want := range wantTypes {
		col, ok := table.Column(name)
		if !ok {
			t.Errorf("column %s missing", name)
			continue
		}
		if col.Type != want {
			t.Errorf("column %s type = %v, want %v", name, col.Type, want)
		}
	}
}

func TestFromParquet_ExplicitName(t *testing.T) {
	path := writeStudentsFile(t)
	table, err := FromParquet(path, "alumni")
	if err != nil {
		t.Fatalf("FromParquet() error = %v", err)
	}
	if table.Name() != "alumni" {
		t.Errorf("Name() = %q, want %q", table.Name(), "alumni")
	}
}

func TestFromParquet_MissingFile(t *testing.T) {
	if _, err := FromParquet(filepath.Join(t.TempDir(), "absent.parquet"), ""); err == nil {
		t.Error("FromParquet() expected error for missing file")
	}
}
