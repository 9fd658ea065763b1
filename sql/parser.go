package sql

import (
	"fmt"
	"strconv"
)

// SyntaxError is a syntactic fault: the parser found a token it did
// not expect. Parsing stops at the first fault, so one analysis run
// surfaces exactly one SyntaxError.
type SyntaxError struct {
	Expected string
	Found    Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: expected %s, found %s",
		e.Found.Pos, e.Expected, e.Found.Describe())
}

// Parser consumes a token sequence and builds the AST for a single
// SELECT statement. A Parser is single-use; create one per query.
type Parser struct {
	tokens []Token
	pos    int
	depth  depthCounter
}

// NewParser creates a parser over tokens, which must be terminated by
// an EOF token as produced by Tokenize.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes and parses query in one call.
func Parse(query string) (*SelectStatement, error) {
	tokens, err := Tokenize(query)
	if err != nil {
		return nil, err
	}
	return ParseStatement(tokens)
}

// ParseStatement parses one SELECT statement from tokens.
func ParseStatement(tokens []Token) (*SelectStatement, error) {
	return NewParser(tokens).parseSelect()
}

// current returns the token under the cursor.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

// advance moves the cursor to the next token.
func (p *Parser) advance() {
	p.pos++
}

// errExpected builds the single fail-fast fault for this parse.
func (p *Parser) errExpected(expected string) error {
	return &SyntaxError{Expected: expected, Found: p.current()}
}

// expectKeyword consumes the given keyword or fails.
func (p *Parser) expectKeyword(kw string) error {
	if !p.current().isKeywordToken(kw) {
		return p.errExpected(kw)
	}
	p.advance()
	return nil
}

// expectPunct consumes the given punctuation or fails.
func (p *Parser) expectPunct(lexeme, expected string) error {
	if !p.current().isPunct(lexeme) {
		return p.errExpected(expected)
	}
	p.advance()
	return nil
}

// parseSelect parses:
//
//	SELECT projection_list FROM table [WHERE expr] [;]
func (p *Parser) parseSelect() (*SelectStatement, error) {
	selectPos := p.current().Pos
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}

	stmt := &SelectStatement{SelectPos: selectPos}

	// Projection list: a lone * or named projections. Mixing * with
	// named projections is rejected here by construction: after * the
	// parser expects FROM, and inside a named list * is not a valid
	// projection.
	if p.current().isPunct("*") {
		stmt.Wildcard = true
		p.advance()
	} else {
		for {
			proj, err := p.parseProjection()
			if err != nil {
				return nil, err
			}
			stmt.Projections = append(stmt.Projections, proj)
			if !p.current().isPunct(",") {
				break
			}
			p.advance()
		}
	}

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}

	table := p.current()
	if table.Kind != TokenIdentifier {
		return nil, p.errExpected("table name")
	}
	p.advance()
	stmt.From = &TableRef{Name: table.Lexeme, NamePos: table.Pos}

	if p.current().isKeywordToken("WHERE") {
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		stmt.Where = expr
	}

	// Optional statement terminator.
	if p.current().isPunct(";") {
		p.advance()
	}

	if p.current().Kind != TokenEOF {
		return nil, p.errExpected("end of statement")
	}
	return stmt, nil
}

// parseProjection parses `(column | literal) [AS alias]`.
func (p *Parser) parseProjection() (*Projection, error) {
	operand, err := p.parseOperand("column name or literal")
	if err != nil {
		return nil, err
	}

	proj := &Projection{Expr: operand}
	if p.current().isKeywordToken("AS") {
		p.advance()
		alias := p.current()
		if alias.Kind != TokenIdentifier {
			return nil, p.errExpected("alias name after AS")
		}
		p.advance()
		proj.Alias = alias.Lexeme
		proj.AliasPos = alias.Pos
	}
	return proj, nil
}

// parseOr parses OR expressions, the lowest precedence level.
func (p *Parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.current().isKeywordToken("OR") {
		opPos := p.current().Pos
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: OpOr, OpPos: opPos, Right: right}
	}
	return left, nil
}

// parseAnd parses AND expressions, binding tighter than OR.
func (p *Parser) parseAnd() (Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for p.current().isKeywordToken("AND") {
		opPos := p.current().Pos
		p.advance()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Left: left, Op: OpAnd, OpPos: opPos, Right: right}
	}
	return left, nil
}

// parseFactor parses a comparison or a parenthesized expression.
func (p *Parser) parseFactor() (Expr, error) {
	if p.current().isPunct("(") {
		lparen := p.current().Pos
		if err := p.depth.enter(lparen); err != nil {
			return nil, err
		}
		defer p.depth.exit()
		p.advance()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if err := p.expectPunct(")", "closing parenthesis"); err != nil {
			return nil, err
		}
		return &Grouped{LParen: lparen, Inner: inner}, nil
	}

	left, err := p.parseOperand("column name or literal")
	if err != nil {
		return nil, err
	}

	op, opPos, err := p.parseCompareOp()
	if err != nil {
		return nil, err
	}

	right, err := p.parseOperand("column name or literal")
	if err != nil {
		return nil, err
	}

	return &Comparison{Left: left, Op: op, OpPos: opPos, Right: right}, nil
}

// parseOperand parses a column reference or a literal.
func (p *Parser) parseOperand(expected string) (Operand, error) {
	tok := p.current()
	switch tok.Kind {
	case TokenIdentifier:
		p.advance()
		return &ColumnRef{Name: tok.Lexeme, NamePos: tok.Pos}, nil
	case TokenInteger:
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errExpected("integer literal in range")
		}
		p.advance()
		return &Literal{Kind: IntegerLit, Text: tok.Lexeme, Int: v, LitPos: tok.Pos}, nil
	case TokenFloat:
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, p.errExpected("float literal in range")
		}
		p.advance()
		return &Literal{Kind: FloatLit, Text: tok.Lexeme, Float: v, LitPos: tok.Pos}, nil
	case TokenString:
		p.advance()
		return &Literal{Kind: StringLit, Text: tok.Lexeme, Str: Unquote(tok.Lexeme), LitPos: tok.Pos}, nil
	}
	return nil, p.errExpected(expected)
}

// parseCompareOp consumes one of = <> != < <= > >=.
func (p *Parser) parseCompareOp() (CompareOp, Position, error) {
	tok := p.current()
	if tok.Kind != TokenOperator {
		return 0, Position{}, p.errExpected("comparison operator (=, <>, <, <=, >, >=)")
	}
	var op CompareOp
	switch tok.Lexeme {
	case "=":
		op = OpEq
	case "<>", "!=":
		op = OpNe
	case "<":
		op = OpLt
	case "<=":
		op = OpLe
	case ">":
		op = OpGt
	case ">=":
		op = OpGe
	default:
		return 0, Position{}, p.errExpected("comparison operator (=, <>, <, <=, >, >=)")
	}
	p.advance()
	return op, tok.Pos, nil
}
