package parser

import (
	"errors"
	"fmt"
	"slices"

	"github.com/artuross/lox/internal/lox/ast"
	"github.com/artuross/lox/internal/lox/report"
	"github.com/artuross/lox/internal/lox/token"
)

const (
	MessageExpectExpression = "Expect expression."
	MessageExpectRightParen = "Expect ')' after expression."
	MessageExpectEnd        = "Expect end of expression."
	MessageExpectSemicolon  = "Expect ';' after expression."
)

var ErrParse = errors.New("parse error")

// ParseError is returned for a syntax error. It has already been passed to
// the reporter when the caller sees it.
type ParseError struct {
	Token   token.Token
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, report.Where(e.Token), e.Message)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// DefaultUnaryOperators is the prefix operator set of the grammar:
//
//	unary → ( "!" | "/" ) unary | primary
var DefaultUnaryOperators = []token.Type{token.TypeBang, token.TypeSlash}

// statement boundaries used to resynchronize after a syntax error
var synchronizeKeywords = []token.Type{
	token.TypeClass,
	token.TypeFor,
	token.TypeFun,
	token.TypeIf,
	token.TypePrint,
	token.TypeReturn,
	token.TypeVar,
	token.TypeWhile,
}

// Parser is a recursive descent parser with one token of lookahead.
//
//	expression → comma
//	comma      → equality ( "," equality )*
//	equality   → comparison ( ( "!=" | "==" ) comparison )*
//	comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
//	term       → factor ( ( "-" | "+" ) factor )*
//	factor     → unary ( ( "/" | "*" ) unary )*
//	unary      → ( "!" | "/" ) unary | primary
//	primary    → NUMBER | STRING | "true" | "false" | "nil" | "(" expression ")"
type Parser struct {
	tokens         []token.Token
	reporter       report.Reporter
	unaryOperators []token.Type
	current        int
}

func New(tokens []token.Token, reporter report.Reporter, options ...func(*Parser)) *Parser {
	tokens = slices.Clone(tokens)

	// the cursor relies on a trailing EOF
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != token.TypeEOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}

		tokens = append(tokens, token.Token{Type: token.TypeEOF, Line: line})
	}

	parser := Parser{
		tokens:         tokens,
		reporter:       reporter,
		unaryOperators: DefaultUnaryOperators,
	}

	for _, apply := range options {
		apply(&parser)
	}

	return &parser
}

// Parse parses the tokens as a single expression. Any syntax error aborts
// the whole parse: the result is nil and the error is a *ParseError.
func (p *Parser) Parse() (ast.Expr, error) {
	p.current = 0

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if !p.isAtEnd() {
		return nil, p.newError(p.peek(), MessageExpectEnd)
	}

	return expr, nil
}

// ParseProgram parses a sequence of ';' terminated expressions. After a
// syntax error it skips to the next statement boundary and keeps going, so
// every error in the input is reported. The returned error joins all of
// them.
func (p *Parser) ParseProgram() ([]ast.Expr, error) {
	p.current = 0

	exprs := make([]ast.Expr, 0)
	errs := make([]error, 0)

	for !p.isAtEnd() {
		expr, err := p.parseStatement()
		if err != nil {
			errs = append(errs, err)
			p.synchronize()

			continue
		}

		exprs = append(exprs, expr)
	}

	return exprs, errors.Join(errs...)
}

func (p *Parser) parseStatement() (ast.Expr, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.consume(token.TypeSemicolon, MessageExpectSemicolon); err != nil {
		return nil, err
	}

	return expr, nil
}

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseComma()
}

func (p *Parser) parseComma() (ast.Expr, error) {
	return p.parseLeftAssociative(p.parseEquality, token.TypeComma)
}

func (p *Parser) parseEquality() (ast.Expr, error) {
	return p.parseLeftAssociative(p.parseComparison, token.TypeBangEqual, token.TypeEqualEqual)
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.parseLeftAssociative(
		p.parseTerm,
		token.TypeGreater,
		token.TypeGreaterEqual,
		token.TypeLess,
		token.TypeLessEqual,
	)
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	return p.parseLeftAssociative(p.parseFactor, token.TypeMinus, token.TypePlus)
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	return p.parseLeftAssociative(p.parseUnary, token.TypeSlash, token.TypeStar)
}

// parseLeftAssociative parses operand ( operator operand )* and folds the
// result into a left leaning tree.
func (p *Parser) parseLeftAssociative(operand func() (ast.Expr, error), operators ...token.Type) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}

	for p.match(operators...) {
		operator := p.previous()

		right, err := operand()
		if err != nil {
			return nil, err
		}

		expr = ast.NewBinary(expr, operator, right)
	}

	return expr, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if p.match(p.unaryOperators...) {
		operator := p.previous()

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}

		return ast.NewUnary(operator, right), nil
	}

	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch {
	case p.match(token.TypeFalse):
		return ast.NewLiteral(false), nil

	case p.match(token.TypeTrue):
		return ast.NewLiteral(true), nil

	case p.match(token.TypeNil):
		return ast.NewLiteral(nil), nil

	case p.match(token.TypeNumber, token.TypeString):
		return ast.NewLiteral(p.previous().Literal), nil

	case p.match(token.TypeLeftParen):
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		if _, err := p.consume(token.TypeRightParen, MessageExpectRightParen); err != nil {
			return nil, err
		}

		return ast.NewGrouping(expr), nil
	}

	return nil, p.newError(p.peek(), MessageExpectExpression)
}

// synchronize discards tokens until the start of the next statement.
func (p *Parser) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Type == token.TypeSemicolon {
			return
		}

		if slices.Contains(synchronizeKeywords, p.peek().Type) {
			return
		}

		p.advance()
	}
}

func (p *Parser) consume(tokenType token.Type, message string) (token.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}

	return token.Token{}, p.newError(p.peek(), message)
}

func (p *Parser) newError(tok token.Token, message string) *ParseError {
	p.reporter.ReportToken(tok, message)

	return &ParseError{
		Token:   tok,
		Message: message,
	}
}

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}

	return false
}

func (p *Parser) check(tokenType token.Type) bool {
	if p.isAtEnd() {
		return false
	}

	return p.peek().Type == tokenType
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.TypeEOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func WithUnaryOperators(types ...token.Type) func(*Parser) {
	for _, t := range types {
		if !ast.IsUnaryOperator(t) {
			panic(fmt.Sprintf("WithUnaryOperators: %s is not a unary operator", t))
		}
	}

	return func(p *Parser) {
		p.unaryOperators = slices.Clone(types)
	}
}
