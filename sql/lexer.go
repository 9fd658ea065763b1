package sql

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// LexError is a lexical fault: an invalid character, an unterminated
// string, or a malformed numeric literal. Tokenization halts at the
// first fault; Pos points at the offending character (for strings, at
// the opening quote).
type LexError struct {
	Msg string
	Pos Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexical error at %s: %s", e.Pos, e.Msg)
}

// Lexer transforms a query string into a stream of tokens while
// tracking the exact line and column of every token. A Lexer is
// single-use and analysis-local; create a fresh one per query.
type Lexer struct {
	input string
	ch    rune // current rune, 0 at end of input
	width int  // byte width of ch
	pos   Position
	err   *LexError
}

// NewLexer creates a lexer positioned at the first rune of input.
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, pos: Position{Line: 1, Column: 1, Offset: 0}}
	l.decode()
	return l
}

// decode loads the rune at the current offset without advancing.
func (l *Lexer) decode() {
	if l.pos.Offset >= len(l.input) {
		l.ch = 0
		l.width = 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos.Offset:])
}

// advance consumes the current rune and updates line/column tracking.
func (l *Lexer) advance() {
	if l.ch == 0 {
		return
	}
	if l.ch == '\n' {
		l.pos.Line++
		l.pos.Column = 1
	} else {
		l.pos.Column++
	}
	l.pos.Offset += l.width
	l.decode()
}

// peek returns the rune after the current one without advancing.
func (l *Lexer) peek() rune {
	next := l.pos.Offset + l.width
	if next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[next:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.advance()
	}
}

// failf records a lexical fault at pos and returns an error token.
func (l *Lexer) failf(pos Position, format string, args ...interface{}) (Token, error) {
	l.err = &LexError{Msg: fmt.Sprintf(format, args...), Pos: pos}
	return Token{Kind: TokenEOF, Pos: pos}, l.err
}

// Next returns the next token. After the first lexical fault every
// subsequent call returns the same error.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{Kind: TokenEOF, Pos: l.err.Pos}, l.err
	}

	l.skipWhitespace()
	start := l.pos

	switch {
	case l.ch == 0:
		return Token{Kind: TokenEOF, Pos: start}, nil
	case unicode.IsLetter(l.ch) || l.ch == '_':
		return l.scanWord(start)
	case unicode.IsDigit(l.ch):
		return l.scanNumber(start)
	case l.ch == '\'':
		return l.scanString(start)
	case l.ch == '=', l.ch == '<', l.ch == '>', l.ch == '!':
		return l.scanOperator(start)
	case l.ch == '*', l.ch == ',', l.ch == '(', l.ch == ')', l.ch == ';':
		ch := l.ch
		l.advance()
		return Token{Kind: TokenPunct, Lexeme: string(ch), Pos: start}, nil
	}
	return l.failf(start, "unexpected character %q", l.ch)
}

// scanWord consumes an identifier or keyword. Identifiers are
// letters, digits, and underscores, starting with a letter or
// underscore.
func (l *Lexer) scanWord(start Position) (Token, error) {
	for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' {
		l.advance()
	}
	lexeme := l.input[start.Offset:l.pos.Offset]
	if len(lexeme) > MaxIdentifierLength {
		return l.failf(start, "identifier exceeds %d characters", MaxIdentifierLength)
	}
	if IsKeyword(lexeme) {
		return Token{Kind: TokenKeyword, Lexeme: lexeme, Pos: start}, nil
	}
	return Token{Kind: TokenIdentifier, Lexeme: lexeme, Pos: start}, nil
}

// scanNumber consumes an integer or float literal. A single decimal
// point followed by digits makes the literal a float; a second point,
// or a point with no digits after it, is a malformed literal.
func (l *Lexer) scanNumber(start Position) (Token, error) {
	for unicode.IsDigit(l.ch) {
		l.advance()
	}

	kind := TokenInteger
	if l.ch == '.' {
		dot := l.pos
		if !unicode.IsDigit(l.peek()) {
			return l.failf(dot, "malformed numeric literal: expected digits after %q", '.')
		}
		l.advance() // consume the point
		for unicode.IsDigit(l.ch) {
			l.advance()
		}
		kind = TokenFloat
	}

	// A trailing second point ("1.2.3") is a lexical fault, not two
	// tokens, so the learner sees the real mistake.
	if l.ch == '.' {
		return l.failf(l.pos, "malformed numeric literal: unexpected second %q", '.')
	}

	return Token{Kind: kind, Lexeme: l.input[start.Offset:l.pos.Offset], Pos: start}, nil
}

// scanString consumes a single-quoted literal with backslash escapes.
// The lexeme keeps the quotes; Unquote recovers the value. An
// unterminated string is reported at the opening quote.
func (l *Lexer) scanString(start Position) (Token, error) {
	l.advance() // opening quote
	for l.ch != '\'' {
		if l.ch == 0 {
			return l.failf(start, "unterminated string literal")
		}
		if l.ch == '\\' {
			l.advance()
			if l.ch == 0 {
				return l.failf(start, "unterminated string literal")
			}
		}
		l.advance()
	}
	l.advance() // closing quote
	return Token{Kind: TokenString, Lexeme: l.input[start.Offset:l.pos.Offset], Pos: start}, nil
}

// scanOperator consumes a comparison operator using longest match, so
// <= wins over <, and <> is a single token. The original grammar
// accepts != as an alternate spelling of <>.
func (l *Lexer) scanOperator(start Position) (Token, error) {
	ch := l.ch
	l.advance()

	switch ch {
	case '=':
		return Token{Kind: TokenOperator, Lexeme: "=", Pos: start}, nil
	case '<':
		switch l.ch {
		case '=':
			l.advance()
			return Token{Kind: TokenOperator, Lexeme: "<=", Pos: start}, nil
		case '>':
			l.advance()
			return Token{Kind: TokenOperator, Lexeme: "<>", Pos: start}, nil
		}
		return Token{Kind: TokenOperator, Lexeme: "<", Pos: start}, nil
	case '>':
		if l.ch == '=' {
			l.advance()
			return Token{Kind: TokenOperator, Lexeme: ">=", Pos: start}, nil
		}
		return Token{Kind: TokenOperator, Lexeme: ">", Pos: start}, nil
	case '!':
		if l.ch == '=' {
			l.advance()
			return Token{Kind: TokenOperator, Lexeme: "!=", Pos: start}, nil
		}
		return l.failf(start, "unexpected character %q: did you mean %q?", '!', "!=")
	}
	return l.failf(start, "unexpected character %q", ch)
}

// Tokenize converts input into tokens terminated by an EOF token.
// On a lexical fault it returns the tokens produced so far together
// with the *LexError, so a learner still sees how far the lexer got.
// Tokenize holds no hidden state: calling it twice with the same
// input yields identical results.
func Tokenize(input string) ([]Token, error) {
	if len(input) > MaxQueryLength {
		return nil, &LexError{
			Msg: fmt.Sprintf("query exceeds %d bytes", MaxQueryLength),
			Pos: Position{Line: 1, Column: 1},
		}
	}

	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
		if len(tokens) > MaxTokens {
			return tokens, &LexError{
				Msg: fmt.Sprintf("query exceeds %d tokens", MaxTokens),
				Pos: tok.Pos,
			}
		}
	}
}

// Unquote recovers the value of a string literal lexeme: the quotes
// are stripped and backslash escapes resolved.
func Unquote(lexeme string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(lexeme, "'"), "'")
	if !strings.Contains(body, "\\") {
		return body
	}
	var b strings.Builder
	escaped := false
	for _, r := range body {
		if escaped {
			switch r {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			default:
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
