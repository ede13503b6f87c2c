package ast

import (
	"fmt"

	"github.com/artuross/lox/internal/lox/token"
)

var (
	_ Expr = (*Binary)(nil)
	_ Expr = (*Grouping)(nil)
	_ Expr = (*Literal)(nil)
	_ Expr = (*Unary)(nil)
)

// Expr is a node of the expression tree. The set of node types is closed;
// operations over the tree are added by implementing Visitor.
type Expr interface {
	Accept(v Visitor) any
	isExpr()
}

// Visitor has one method per node type. Accept calls the method matching
// the node it is invoked on.
type Visitor interface {
	VisitBinary(expr *Binary) any
	VisitGrouping(expr *Grouping) any
	VisitLiteral(expr *Literal) any
	VisitUnary(expr *Unary) any
}

type (
	Binary struct {
		Left     Expr
		Operator token.Token
		Right    Expr
	}

	Grouping struct {
		Expression Expr
	}

	// Literal holds a float64, string, bool or nil.
	Literal struct {
		Value any
	}

	Unary struct {
		Operator token.Token
		Right    Expr
	}
)

func NewBinary(left Expr, operator token.Token, right Expr) *Binary {
	invariant(!IsBinaryOperator(operator.Type), fmt.Sprintf("NewBinary: %s is not a binary operator", operator.Type))

	return &Binary{
		Left:     left,
		Operator: operator,
		Right:    right,
	}
}

func NewGrouping(expression Expr) *Grouping {
	return &Grouping{
		Expression: expression,
	}
}

func NewLiteral(value any) *Literal {
	return &Literal{
		Value: value,
	}
}

func NewUnary(operator token.Token, right Expr) *Unary {
	invariant(!IsUnaryOperator(operator.Type), fmt.Sprintf("NewUnary: %s is not a unary operator", operator.Type))

	return &Unary{
		Operator: operator,
		Right:    right,
	}
}

func (e *Binary) Accept(v Visitor) any   { return v.VisitBinary(e) }
func (e *Grouping) Accept(v Visitor) any { return v.VisitGrouping(e) }
func (e *Literal) Accept(v Visitor) any  { return v.VisitLiteral(e) }
func (e *Unary) Accept(v Visitor) any    { return v.VisitUnary(e) }

func (e Binary) isExpr()   {}
func (e Grouping) isExpr() {}
func (e Literal) isExpr()  {}
func (e Unary) isExpr()    {}

func invariant(assertion bool, message string) {
	if assertion {
		panic(message)
	}
}
