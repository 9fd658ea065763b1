package sql

import (
	"fmt"
	"strings"
)

// TokenKind represents the category of a lexical token.
type TokenKind int

const (
	// TokenKeyword is a reserved word: SELECT, FROM, WHERE, AS, AND, OR.
	TokenKeyword TokenKind = iota
	// TokenIdentifier is a non-reserved word such as a table or column name.
	TokenIdentifier
	// TokenInteger is a whole-number literal like 42.
	TokenInteger
	// TokenFloat is a fractional literal like 3.5.
	TokenFloat
	// TokenString is a single-quoted text literal like 'hello'.
	TokenString
	// TokenOperator is a comparison operator: = <> != < <= > >=.
	TokenOperator
	// TokenPunct is punctuation: * , ( ) ;
	TokenPunct
	// TokenEOF marks the end of input.
	TokenEOF
)

// String returns a human-readable name for the token kind. The names
// are surfaced directly in token tables and diagnostics, so they stay
// short and learner-friendly.
func (k TokenKind) String() string {
	switch k {
	case TokenKeyword:
		return "KEYWORD"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenInteger:
		return "INTEGER"
	case TokenFloat:
		return "FLOAT"
	case TokenString:
		return "STRING"
	case TokenOperator:
		return "OPERATOR"
	case TokenPunct:
		return "PUNCTUATION"
	case TokenEOF:
		return "EOF"
	}
	return "UNKNOWN"
}

// Position is a location in the query text. Line and Column are
// 1-based because they are surfaced to the learner; Offset is the
// 0-based byte offset into the input.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String formats the position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical unit. Lexeme is the exact source text of
// the token, quotes included for string literals, so token tables
// mirror the input character for character.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Pos    Position
}

// Describe renders the token for diagnostics, e.g. `identifier
// "students"` or `end of input`.
func (t Token) Describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenKeyword:
		return strings.ToUpper(t.Lexeme)
	case TokenIdentifier:
		return fmt.Sprintf("identifier %q", t.Lexeme)
	case TokenInteger, TokenFloat:
		return fmt.Sprintf("number %s", t.Lexeme)
	case TokenString:
		return fmt.Sprintf("string %s", t.Lexeme)
	default:
		return fmt.Sprintf("%q", t.Lexeme)
	}
}

// keywords is the reserved word set of the subset grammar.
var keywords = map[string]bool{
	"SELECT": true,
	"FROM":   true,
	"WHERE":  true,
	"AS":     true,
	"AND":    true,
	"OR":     true,
}

// IsKeyword reports whether word is reserved, case-insensitively.
func IsKeyword(word string) bool {
	return keywords[strings.ToUpper(word)]
}

// isKeywordToken reports whether t is the given keyword, matched
// case-insensitively so "select" and "SELECT" are interchangeable.
func (t Token) isKeywordToken(kw string) bool {
	return t.Kind == TokenKeyword && strings.EqualFold(t.Lexeme, kw)
}

// isPunct reports whether t is the given punctuation lexeme.
func (t Token) isPunct(p string) bool {
	return t.Kind == TokenPunct && t.Lexeme == p
}
