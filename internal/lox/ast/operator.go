package ast

import (
	"slices"

	"github.com/artuross/lox/internal/lox/token"
)

var (
	// BinaryOperators lists every token type a Binary node may carry.
	BinaryOperators = []token.Type{
		token.TypeComma,

		token.TypeBangEqual,
		token.TypeEqualEqual,

		token.TypeGreater,
		token.TypeGreaterEqual,
		token.TypeLess,
		token.TypeLessEqual,

		token.TypeMinus,
		token.TypePlus,

		token.TypeSlash,
		token.TypeStar,
	}

	// UnaryOperators lists every token type a Unary node may carry. It is
	// wider than what the default parser accepts so that the prefix set can
	// be changed without touching the tree.
	UnaryOperators = []token.Type{
		token.TypeBang,
		token.TypeMinus,
		token.TypeSlash,
	}
)

func IsBinaryOperator(t token.Type) bool {
	return slices.Contains(BinaryOperators, t)
}

func IsUnaryOperator(t token.Type) bool {
	return slices.Contains(UnaryOperators, t)
}
