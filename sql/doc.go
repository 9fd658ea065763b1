// Package sql implements the language front end of the analyzer: a
// position-tracking tokenizer and a recursive descent parser for a
// small teaching subset of SQL.
//
// The subset covers a single SELECT statement:
//
//	SELECT id, name AS alias FROM students WHERE age > 18 AND gpa >= 3.5;
//
// with a projection list (or a lone *), one source table, and an
// optional WHERE clause built from comparisons combined with AND/OR
// and parentheses. Joins, subqueries, and DML/DDL statements are
// deliberately out of scope.
//
// Both phases are fail-fast: the tokenizer stops at the first lexical
// fault and the parser stops at the first unexpected token, so a
// learner is shown exactly one fault with its precise line and column.
// Faults are returned as values (*LexError, *SyntaxError), never
// panics.
//
// Example usage:
//
//	tokens, err := sql.Tokenize("SELECT id FROM students")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	stmt, err := sql.ParseStatement(tokens)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(stmt.String())
package sql
