// Package schema provides the simulated catalog the semantic phase
// resolves against: tables with ordered, typed columns.
//
// A Registry is built once by the host (from the built-in demo
// catalog, a JSON description, or a real parquet file) and is
// read-only afterwards, so a single Registry is safe to share across
// concurrent analyses.
//
// Example usage:
//
//	reg := schema.Demo()
//	tbl, ok := reg.Table("students")
//	if ok {
//	    col, _ := tbl.Column("gpa")
//	    fmt.Println(col.Type) // FLOAT
//	}
package schema
