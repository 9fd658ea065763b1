package sql

import "fmt"

// Input guards. A teaching query is one short statement, so the
// ceilings are generous; they exist so a hostile or accidental input
// cannot exhaust the host embedding the pipeline.
const (
	// MaxQueryLength is the maximum query string length in bytes.
	MaxQueryLength = 64 * 1024

	// MaxTokens is the maximum number of tokens in one query.
	MaxTokens = 1000

	// MaxExpressionDepth bounds WHERE expression nesting.
	MaxExpressionDepth = 64

	// MaxIdentifierLength bounds table and column names.
	MaxIdentifierLength = 128
)

// depthCounter tracks expression nesting during parsing.
type depthCounter struct {
	depth int
}

func (c *depthCounter) enter(at Position) error {
	c.depth++
	if c.depth > MaxExpressionDepth {
		return &SyntaxError{
			Expected: fmt.Sprintf("expression nested at most %d levels deep", MaxExpressionDepth),
			Found:    Token{Kind: TokenPunct, Lexeme: "(", Pos: at},
		}
	}
	return nil
}

func (c *depthCounter) exit() {
	c.depth--
}
