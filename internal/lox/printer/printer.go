package printer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/artuross/lox/internal/lox/ast"
)

var (
	_ ast.Visitor = (*Printer)(nil)
	_ ast.Visitor = (*RPN)(nil)
)

// Printer renders a tree in parenthesized prefix form, e.g.
// "(* (- 123.0) (group 45.67))".
type Printer struct{}

func New() *Printer {
	return &Printer{}
}

func (p *Printer) Print(expr ast.Expr) string {
	return expr.Accept(p).(string)
}

func (p *Printer) VisitBinary(expr *ast.Binary) any {
	return p.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right)
}

func (p *Printer) VisitGrouping(expr *ast.Grouping) any {
	return p.parenthesize("group", expr.Expression)
}

func (p *Printer) VisitLiteral(expr *ast.Literal) any {
	return FormatValue(expr.Value)
}

func (p *Printer) VisitUnary(expr *ast.Unary) any {
	return p.parenthesize(expr.Operator.Lexeme, expr.Right)
}

func (p *Printer) parenthesize(name string, exprs ...ast.Expr) string {
	var sb strings.Builder

	sb.WriteString("(")
	sb.WriteString(name)

	for _, expr := range exprs {
		sb.WriteString(" ")
		sb.WriteString(expr.Accept(p).(string))
	}

	sb.WriteString(")")

	return sb.String()
}

// RPN renders a tree in reverse Polish notation, e.g. "1.0 2.0 3.0 * +".
// Groupings disappear since the order of operands already encodes them.
type RPN struct{}

func NewRPN() *RPN {
	return &RPN{}
}

func (r *RPN) Print(expr ast.Expr) string {
	return expr.Accept(r).(string)
}

func (r *RPN) VisitBinary(expr *ast.Binary) any {
	left := expr.Left.Accept(r).(string)
	right := expr.Right.Accept(r).(string)

	return left + " " + right + " " + expr.Operator.Lexeme
}

func (r *RPN) VisitGrouping(expr *ast.Grouping) any {
	return expr.Expression.Accept(r)
}

func (r *RPN) VisitLiteral(expr *ast.Literal) any {
	return FormatValue(expr.Value)
}

func (r *RPN) VisitUnary(expr *ast.Unary) any {
	return expr.Right.Accept(r).(string) + " " + expr.Operator.Lexeme
}

// FormatValue renders a literal value. Numbers keep at least one fractional
// digit so that 10 prints as "10.0"; magnitudes from 1e16 up and below 1e-4
// switch to exponent form ("1e+21", "1e-05").
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"

	case float64:
		return formatNumber(v)

	case bool:
		return strconv.FormatBool(v)

	case string:
		return v

	default:
		return fmt.Sprint(v)
	}
}

func formatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"

	case math.IsInf(v, 1):
		return "inf"

	case math.IsInf(v, -1):
		return "-inf"
	}

	// shortest digits, e.g. "1.5e+300"
	scientific := strconv.FormatFloat(v, 'e', -1, 64)

	exponent, err := strconv.Atoi(scientific[strings.IndexByte(scientific, 'e')+1:])
	if err != nil {
		panic("formatNumber: malformed exponent in " + scientific)
	}

	if v != 0 && (exponent < -4 || exponent >= 16) {
		return scientific
	}

	text := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}

	return text
}
