package scanner

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/artuross/lox/internal/lox/report"
	"github.com/artuross/lox/internal/lox/token"
)

const (
	MessageUnexpectedCharacter      = "Unexpected character."
	MessageUnterminatedString       = "Unterminated string."
	MessageUnterminatedBlockComment = "Unterminated block comment."
)

// Scanner turns source text into tokens. Lexical errors go to the reporter
// and never stop the scan.
type Scanner struct {
	source   []byte
	reporter report.Reporter
	tokens   []token.Token

	start   int // first byte of the current lexeme
	current int // next byte to consume
	line    int
}

func New(source string, reporter report.Reporter) *Scanner {
	return &Scanner{
		source:   []byte(source),
		reporter: reporter,
	}
}

// ScanTokens scans the whole source. The result always ends with exactly one
// EOF token.
func (s *Scanner) ScanTokens() []token.Token {
	s.tokens = make([]token.Token, 0, len(s.source)/2+1)
	s.start = 0
	s.current = 0
	s.line = 1

	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}

	s.tokens = append(s.tokens, token.Token{
		Type:   token.TypeEOF,
		Lexeme: "",
		Line:   s.line,
	})

	return s.tokens
}

func (s *Scanner) scanToken() {
	r := s.advance()

	switch r {
	case '(':
		s.addToken(token.TypeLeftParen, nil)
	case ')':
		s.addToken(token.TypeRightParen, nil)
	case '{':
		s.addToken(token.TypeLeftBrace, nil)
	case '}':
		s.addToken(token.TypeRightBrace, nil)
	case ',':
		s.addToken(token.TypeComma, nil)
	case '.':
		s.addToken(token.TypeDot, nil)
	case '-':
		s.addToken(token.TypeMinus, nil)
	case '+':
		s.addToken(token.TypePlus, nil)
	case ';':
		s.addToken(token.TypeSemicolon, nil)
	case '*':
		s.addToken(token.TypeStar, nil)

	case '!':
		s.addToken(s.either('=', token.TypeBangEqual, token.TypeBang), nil)
	case '=':
		s.addToken(s.either('=', token.TypeEqualEqual, token.TypeEqual), nil)
	case '<':
		s.addToken(s.either('=', token.TypeLessEqual, token.TypeLess), nil)
	case '>':
		s.addToken(s.either('=', token.TypeGreaterEqual, token.TypeGreater), nil)

	case '/':
		switch {
		case s.match('/'):
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}

		case s.match('*'):
			s.skipBlockComment()

		default:
			s.addToken(token.TypeSlash, nil)
		}

	case ' ', '\r', '\t':
		// ignored

	case '\n':
		s.line++

	case '"':
		s.readString()

	default:
		switch {
		case isDigit(r):
			s.readNumber()

		case isAlpha(r):
			s.readIdentifier()

		default:
			s.reporter.Report(s.line, "", MessageUnexpectedCharacter)
		}
	}
}

// skipBlockComment consumes a comment whose opening "/*" is already read.
// Comments nest: every "/*" must be closed by its own "*/".
func (s *Scanner) skipBlockComment() {
	depth := 1

	for depth > 0 && !s.isAtEnd() {
		switch {
		case s.peek() == '*' && s.peekNext() == '/':
			s.advance()
			s.advance()
			depth--

		case s.peek() == '/' && s.peekNext() == '*':
			s.advance()
			s.advance()
			depth++

		default:
			if s.advance() == '\n' {
				s.line++
			}
		}
	}

	if depth > 0 {
		s.reporter.Report(s.line, "", MessageUnterminatedBlockComment)
	}
}

func (s *Scanner) readIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	text := string(s.source[s.start:s.current])

	s.addToken(token.Lookup(text), nil)
}

func (s *Scanner) readNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}

	// the dot belongs to the number only when a digit follows it
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()

		for isDigit(s.peek()) {
			s.advance()
		}
	}

	// out of range literals keep the ±Inf ParseFloat returns
	value, err := strconv.ParseFloat(string(s.source[s.start:s.current]), 64)
	invariant(err != nil && !errors.Is(err, strconv.ErrRange), "readNumber: digits did not parse as float")

	s.addToken(token.TypeNumber, value)
}

func (s *Scanner) readString() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}

		s.advance()
	}

	if s.isAtEnd() {
		s.reporter.Report(s.line, "", MessageUnterminatedString)
		return
	}

	// closing quote
	s.advance()

	value := string(s.source[s.start+1 : s.current-1])
	s.addToken(token.TypeString, value)
}

func (s *Scanner) addToken(tokenType token.Type, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Type:    tokenType,
		Lexeme:  string(s.source[s.start:s.current]),
		Literal: literal,
		Line:    s.line,
	})
}

func (s *Scanner) either(expected rune, matched token.Type, bare token.Type) token.Type {
	if s.match(expected) {
		return matched
	}

	return bare
}

func (s *Scanner) match(expected rune) bool {
	if s.isAtEnd() {
		return false
	}

	r, size := utf8.DecodeRune(s.source[s.current:])
	if r != expected {
		return false
	}

	s.current += size

	return true
}

func (s *Scanner) advance() rune {
	r, size := utf8.DecodeRune(s.source[s.current:])
	invariant(size == 0, "advance() called at end of input")

	s.current += size

	return r
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}

	r, _ := utf8.DecodeRune(s.source[s.current:])

	return r
}

func (s *Scanner) peekNext() rune {
	if s.isAtEnd() {
		return 0
	}

	_, size := utf8.DecodeRune(s.source[s.current:])
	if s.current+size >= len(s.source) {
		return 0
	}

	r, _ := utf8.DecodeRune(s.source[s.current+size:])

	return r
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func isAlphaNumeric(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

func invariant(assertion bool, message string) {
	if assertion {
		panic(message)
	}
}
