package parser_test

import (
	"errors"
	"testing"

	"github.com/artuross/lox/internal/lox/ast"
	"github.com/artuross/lox/internal/lox/parser"
	"github.com/artuross/lox/internal/lox/printer"
	"github.com/artuross/lox/internal/lox/report"
	"github.com/artuross/lox/internal/lox/scanner"
	"github.com/artuross/lox/internal/lox/token"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(tokenType token.Type, lexeme string, literal any) token.Token {
	return token.Token{Type: tokenType, Lexeme: lexeme, Literal: literal, Line: 1}
}

func parse(t *testing.T, source string, options ...func(*parser.Parser)) (ast.Expr, []report.Diagnostic, error) {
	t.Helper()

	collector := report.NewCollector()
	tokens := scanner.New(source, collector).ScanTokens()
	require.Empty(t, collector.Diagnostics(), "unexpected lexical errors")

	expr, err := parser.New(tokens, collector, options...).Parse()

	t.Logf("source: %q", source)
	t.Log(pretty.Sprint(expr))

	return expr, collector.Diagnostics(), err
}

func TestParser(t *testing.T) {
	t.Run("literals", func(t *testing.T) {
		type testCase struct {
			name        string
			inputTokens []token.Token
			outputExpr  ast.Expr
		}

		testCases := []testCase{
			{
				name:        "literal / number",
				inputTokens: []token.Token{tok(token.TypeNumber, "12", 12.0)},
				outputExpr:  &ast.Literal{Value: 12.0},
			},
			{
				name:        "literal / string",
				inputTokens: []token.Token{tok(token.TypeString, `"output"`, "output")},
				outputExpr:  &ast.Literal{Value: "output"},
			},
			{
				name:        "literal / true",
				inputTokens: []token.Token{tok(token.TypeTrue, "true", nil)},
				outputExpr:  &ast.Literal{Value: true},
			},
			{
				name:        "literal / false",
				inputTokens: []token.Token{tok(token.TypeFalse, "false", nil)},
				outputExpr:  &ast.Literal{Value: false},
			},
			{
				name:        "literal / nil",
				inputTokens: []token.Token{tok(token.TypeNil, "nil", nil)},
				outputExpr:  &ast.Literal{Value: nil},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				collector := report.NewCollector()

				// no EOF, the parser appends it
				p := parser.New(tc.inputTokens, collector)

				t.Log("input tokens:")
				t.Log(pretty.Sprint(tc.inputTokens))

				expr, err := p.Parse()
				require.NoError(t, err)
				require.Empty(t, collector.Diagnostics())

				t.Log("got expr:")
				t.Log(pretty.Sprint(expr))

				require.Equal(t, tc.outputExpr, expr)
			})
		}
	})

	t.Run("tree shape", func(t *testing.T) {
		one := tok(token.TypeNumber, "1", 1.0)
		two := tok(token.TypeNumber, "2", 2.0)
		three := tok(token.TypeNumber, "3", 3.0)
		plus := tok(token.TypePlus, "+", nil)
		star := tok(token.TypeStar, "*", nil)

		tokens := []token.Token{one, plus, two, star, three, tok(token.TypeEOF, "", nil)}

		expr, err := parser.New(tokens, report.NewCollector()).Parse()
		require.NoError(t, err)

		expected := &ast.Binary{
			Left:     &ast.Literal{Value: 1.0},
			Operator: plus,
			Right: &ast.Binary{
				Left:     &ast.Literal{Value: 2.0},
				Operator: star,
				Right:    &ast.Literal{Value: 3.0},
			},
		}

		assert.Equal(t, expected, expr)
	})

	t.Run("precedence and associativity", func(t *testing.T) {
		type testCase struct {
			input  string
			output string
		}

		testCases := []testCase{
			{"1 + 2 * 3", "(+ 1.0 (* 2.0 3.0))"},
			{"1 * 2 + 3", "(+ (* 1.0 2.0) 3.0)"},
			{"1 - 2 - 3", "(- (- 1.0 2.0) 3.0)"},
			{"8 / 4 / 2", "(/ (/ 8.0 4.0) 2.0)"},
			{"(1 + 2) * 3", "(* (group (+ 1.0 2.0)) 3.0)"},
			{"1 < 2 == 3 >= 4", "(== (< 1.0 2.0) (>= 3.0 4.0))"},
			{"1 != 2 == 3", "(== (!= 1.0 2.0) 3.0)"},
			{"1 + 2 > 3 * 4", "(> (+ 1.0 2.0) (* 3.0 4.0))"},
			{"1, 2", "(, 1.0 2.0)"},
			{"1, 2, 3", "(, (, 1.0 2.0) 3.0)"},
			{"1 == 2, 3", "(, (== 1.0 2.0) 3.0)"},
			{"!true", "(! true)"},
			{"!!false", "(! (! false))"},
			{"/1", "(/ 1.0)"},
			{"!1 * 2", "(* (! 1.0) 2.0)"},
			{"((nil))", "(group (group nil))"},
			{`"a" + "b"`, "(+ a b)"},
			{"(1, 2) + 3", "(+ (group (, 1.0 2.0)) 3.0)"},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				expr, diagnostics, err := parse(t, tc.input)
				require.NoError(t, err)
				require.Empty(t, diagnostics)

				assert.Equal(t, tc.output, printer.New().Print(expr))
			})
		}
	})
}

func TestParser_Errors(t *testing.T) {
	type testCase struct {
		name       string
		input      string
		diagnostic report.Diagnostic
	}

	testCases := []testCase{
		{
			name:       "missing paren and operand",
			input:      "(1 + ",
			diagnostic: report.Diagnostic{Line: 1, Where: " at end", Message: parser.MessageExpectExpression},
		},
		{
			name:       "missing closing paren",
			input:      "(1 + 2",
			diagnostic: report.Diagnostic{Line: 1, Where: " at end", Message: parser.MessageExpectRightParen},
		},
		{
			name:       "wrong closing token",
			input:      "(1 + 2;",
			diagnostic: report.Diagnostic{Line: 1, Where: " at ';'", Message: parser.MessageExpectRightParen},
		},
		{
			name:       "empty input",
			input:      "",
			diagnostic: report.Diagnostic{Line: 1, Where: " at end", Message: parser.MessageExpectExpression},
		},
		{
			name:       "binary without left operand",
			input:      "* 2",
			diagnostic: report.Diagnostic{Line: 1, Where: " at '*'", Message: parser.MessageExpectExpression},
		},
		{
			name:       "minus is not a prefix operator by default",
			input:      "-1",
			diagnostic: report.Diagnostic{Line: 1, Where: " at '-'", Message: parser.MessageExpectExpression},
		},
		{
			name:       "identifiers are not expressions",
			input:      "foo",
			diagnostic: report.Diagnostic{Line: 1, Where: " at 'foo'", Message: parser.MessageExpectExpression},
		},
		{
			name:       "trailing tokens",
			input:      "1 2",
			diagnostic: report.Diagnostic{Line: 1, Where: " at '2'", Message: parser.MessageExpectEnd},
		},
		{
			name:       "error on later line",
			input:      "1 +\n\n)",
			diagnostic: report.Diagnostic{Line: 3, Where: " at ')'", Message: parser.MessageExpectExpression},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			expr, diagnostics, err := parse(t, tc.input)

			require.Error(t, err)
			assert.Nil(t, expr, "no partial tree on failure")
			assert.ErrorIs(t, err, parser.ErrParse)

			var parseErr *parser.ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.diagnostic.Message, parseErr.Message)

			assert.Equal(t, []report.Diagnostic{tc.diagnostic}, diagnostics, "exactly one syntax error")
		})
	}
}

func TestParser_UnaryOperators(t *testing.T) {
	options := parser.WithUnaryOperators(token.TypeBang, token.TypeMinus)

	t.Run("minus accepted", func(t *testing.T) {
		expr, diagnostics, err := parse(t, "-1 - -2", options)
		require.NoError(t, err)
		require.Empty(t, diagnostics)

		assert.Equal(t, "(- (- 1.0) (- 2.0))", printer.New().Print(expr))
	})

	t.Run("slash rejected", func(t *testing.T) {
		_, diagnostics, err := parse(t, "/1", options)
		require.ErrorIs(t, err, parser.ErrParse)
		require.Len(t, diagnostics, 1)
	})

	t.Run("non unary operator panics", func(t *testing.T) {
		assert.Panics(t, func() {
			parser.WithUnaryOperators(token.TypePlus)
		})
	})
}

func TestParser_ParseProgram(t *testing.T) {
	parseProgram := func(t *testing.T, source string) ([]string, []report.Diagnostic, error) {
		t.Helper()

		collector := report.NewCollector()
		tokens := scanner.New(source, collector).ScanTokens()

		exprs, err := parser.New(tokens, collector).ParseProgram()

		printed := make([]string, 0, len(exprs))
		for _, expr := range exprs {
			printed = append(printed, printer.New().Print(expr))
		}

		t.Log(pretty.Sprint(printed))

		return printed, collector.Diagnostics(), err
	}

	t.Run("all valid", func(t *testing.T) {
		printed, diagnostics, err := parseProgram(t, "1 + 2;\n3 * 4;")
		require.NoError(t, err)
		require.Empty(t, diagnostics)

		assert.Equal(t, []string{"(+ 1.0 2.0)", "(* 3.0 4.0)"}, printed)
	})

	t.Run("empty", func(t *testing.T) {
		printed, diagnostics, err := parseProgram(t, "")
		require.NoError(t, err)
		require.Empty(t, diagnostics)

		assert.Empty(t, printed)
	})

	t.Run("recovers after semicolon", func(t *testing.T) {
		printed, diagnostics, err := parseProgram(t, "1 +;\n(2;\n3;")
		require.ErrorIs(t, err, parser.ErrParse)

		assert.Equal(t, []string{"3.0"}, printed)
		assert.Equal(t, []report.Diagnostic{
			{Line: 1, Where: " at ';'", Message: parser.MessageExpectExpression},
			{Line: 2, Where: " at ';'", Message: parser.MessageExpectRightParen},
		}, diagnostics)
	})

	t.Run("recovers at statement keyword", func(t *testing.T) {
		printed, diagnostics, err := parseProgram(t, "1 2 print 3;")
		require.ErrorIs(t, err, parser.ErrParse)

		// "print" starts a statement the expression grammar cannot parse
		assert.Empty(t, printed)
		assert.Equal(t, []report.Diagnostic{
			{Line: 1, Where: " at '2'", Message: parser.MessageExpectSemicolon},
			{Line: 1, Where: " at 'print'", Message: parser.MessageExpectExpression},
		}, diagnostics)
	})

	t.Run("missing final semicolon", func(t *testing.T) {
		printed, diagnostics, err := parseProgram(t, "1; 2")
		require.ErrorIs(t, err, parser.ErrParse)

		assert.Equal(t, []string{"1.0"}, printed)
		assert.Equal(t, []report.Diagnostic{
			{Line: 1, Where: " at end", Message: parser.MessageExpectSemicolon},
		}, diagnostics)
	})
}
