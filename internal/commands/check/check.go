package check

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/artuross/lox/internal/log/semconv"
	"github.com/artuross/lox/internal/lox/ast"
	"github.com/artuross/lox/internal/lox/parser"
	"github.com/artuross/lox/internal/lox/report"
	"github.com/artuross/lox/internal/lox/scanner"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type Result struct {
	File        string              `yaml:"file"`
	Expressions []ast.Expr          `yaml:"-"`
	Diagnostics []report.Diagnostic `yaml:"diagnostics"`
}

func (r Result) HasErrors() bool {
	return len(r.Diagnostics) > 0
}

// Files parses every file as a sequence of ';' terminated expressions.
// Files are handled concurrently, each with its own scanner, parser and
// reporter. Results keep the order of paths. Only I/O failures are returned
// as errors; syntax errors end up in the results.
func Files(ctx context.Context, paths []string, parserOptions ...func(*parser.Parser)) ([]Result, error) {
	results := make([]Result, len(paths))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for index, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read source file: %w", err)
			}

			results[index] = File(ctx, path, string(data), parserOptions...)

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// File parses a single source.
func File(ctx context.Context, path string, source string, parserOptions ...func(*parser.Parser)) Result {
	collector := report.NewCollector()

	tokens := scanner.New(source, collector).ScanTokens()

	// every syntax error is in the collector already
	exprs, _ := parser.New(tokens, collector, parserOptions...).ParseProgram()

	result := Result{
		File:        path,
		Expressions: exprs,
		Diagnostics: collector.Diagnostics(),
	}

	zerolog.Ctx(ctx).Debug().
		Str(semconv.SourceFile, path).
		Int("expressions", len(exprs)).
		Int(semconv.DiagnosticCount, len(result.Diagnostics)).
		Msg("checked file")

	return result
}
