package token

import "fmt"

type Type string

const (
	// punctuation
	TypeLeftParen  Type = "LEFT_PAREN"
	TypeRightParen Type = "RIGHT_PAREN"
	TypeLeftBrace  Type = "LEFT_BRACE"
	TypeRightBrace Type = "RIGHT_BRACE"
	TypeComma      Type = "COMMA"
	TypeDot        Type = "DOT"
	TypeMinus      Type = "MINUS"
	TypePlus       Type = "PLUS"
	TypeSemicolon  Type = "SEMICOLON"
	TypeSlash      Type = "SLASH"
	TypeStar       Type = "STAR"

	// one or two character operators
	TypeBang         Type = "BANG"
	TypeBangEqual    Type = "BANG_EQUAL"
	TypeEqual        Type = "EQUAL"
	TypeEqualEqual   Type = "EQUAL_EQUAL"
	TypeGreater      Type = "GREATER"
	TypeGreaterEqual Type = "GREATER_EQUAL"
	TypeLess         Type = "LESS"
	TypeLessEqual    Type = "LESS_EQUAL"

	// literals
	TypeIdentifier Type = "IDENTIFIER"
	TypeString     Type = "STRING"
	TypeNumber     Type = "NUMBER"

	// keywords
	TypeAnd    Type = "AND"
	TypeClass  Type = "CLASS"
	TypeElse   Type = "ELSE"
	TypeFalse  Type = "FALSE"
	TypeFor    Type = "FOR"
	TypeFun    Type = "FUN"
	TypeIf     Type = "IF"
	TypeNil    Type = "NIL"
	TypeOr     Type = "OR"
	TypePrint  Type = "PRINT"
	TypeReturn Type = "RETURN"
	TypeSuper  Type = "SUPER"
	TypeThis   Type = "THIS"
	TypeTrue   Type = "TRUE"
	TypeVar    Type = "VAR"
	TypeWhile  Type = "WHILE"

	TypeEOF Type = "EOF"
)

var keywords = map[string]Type{
	"and":    TypeAnd,
	"class":  TypeClass,
	"else":   TypeElse,
	"false":  TypeFalse,
	"for":    TypeFor,
	"fun":    TypeFun,
	"if":     TypeIf,
	"nil":    TypeNil,
	"or":     TypeOr,
	"print":  TypePrint,
	"return": TypeReturn,
	"super":  TypeSuper,
	"this":   TypeThis,
	"true":   TypeTrue,
	"var":    TypeVar,
	"while":  TypeWhile,
}

// Lookup classifies an identifier, returning the keyword type when ident is
// reserved and TypeIdentifier otherwise.
func Lookup(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}

	return TypeIdentifier
}

// Token is produced once by the scanner and never mutated.
type Token struct {
	Type    Type   `yaml:"type"`
	Lexeme  string `yaml:"lexeme"`
	Literal any    `yaml:"literal,omitempty"`
	Line    int    `yaml:"line"`
}

func (t Token) String() string {
	literal := "nil"
	if t.Literal != nil {
		literal = fmt.Sprint(t.Literal)
	}

	return fmt.Sprintf("%s %s %s", t.Type, t.Lexeme, literal)
}
