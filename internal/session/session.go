package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/artuross/lox/internal/defaults"
	"github.com/artuross/lox/internal/log/semconv"
	"github.com/artuross/lox/internal/lox/ast"
	"github.com/artuross/lox/internal/lox/parser"
	"github.com/artuross/lox/internal/lox/printer"
	"github.com/artuross/lox/internal/lox/report"
	"github.com/artuross/lox/internal/lox/scanner"
	"github.com/artuross/lox/internal/lox/token"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "github.com/artuross/lox/internal/session"

	DefaultPrompt = "> "

	// MaxLineSize bounds a single prompt line.
	MaxLineSize = 16 << 20
)

var ErrHadError = errors.New("source has errors")

// Reporter is a diagnostic sink the session can query and clear.
type Reporter interface {
	report.Reporter
	HadError() bool
	Reset()
}

// Session drives the front end: it scans and parses source text and prints
// the resulting tree. It owns the had-error state, nothing is global.
type Session struct {
	id            uuid.UUID
	reporter      Reporter
	output        io.Writer
	prompt        string
	parserOptions []func(*parser.Parser)
	tracer        trace.Tracer
}

func New(options ...func(*Session)) *Session {
	session := Session{
		id:       uuid.New(),
		reporter: report.NewConsole(os.Stderr),
		output:   defaults.Output,
		prompt:   DefaultPrompt,
		tracer:   defaults.TracerProvider.Tracer(tracerName),
	}

	for _, apply := range options {
		apply(&session)
	}

	return &session
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) HadError() bool {
	return s.reporter.HadError()
}

// Run scans and parses source and prints the tree. Diagnostics go to the
// reporter; ErrHadError is returned when there were any.
func (s *Session) Run(ctx context.Context, source string) error {
	ctx, span := s.tracer.Start(ctx, "run", trace.WithAttributes(
		attribute.String(semconv.SessionID, s.id.String()),
	))
	defer span.End()

	tokens := s.scan(ctx, source)

	// a parse error has already been reported
	expr, err := s.parse(ctx, tokens)
	if err != nil || s.reporter.HadError() {
		span.SetStatus(codes.Error, ErrHadError.Error())
		return ErrHadError
	}

	if err := s.print(ctx, expr); err != nil {
		return fmt.Errorf("print tree: %w", err)
	}

	return nil
}

// RunFile runs the content of the file at path.
func (s *Session) RunFile(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx).With().
		Str(semconv.SessionID, s.id.String()).
		Str(semconv.SessionMode, "file").
		Str(semconv.SourceFile, path).
		Logger()

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source file: %w", err)
	}

	logger.Debug().Int("bytes", len(data)).Msg("running file")

	return s.Run(logger.WithContext(ctx), string(data))
}

// RunPrompt reads lines from in and runs each one. Errors in a line are
// reported and forgotten before the next line is read. It returns at end of
// input or when ctx is done.
func (s *Session) RunPrompt(ctx context.Context, in io.Reader) error {
	logger := zerolog.Ctx(ctx).With().
		Str(semconv.SessionID, s.id.String()).
		Str(semconv.SessionMode, "prompt").
		Logger()

	lines := bufio.NewScanner(in)
	lines.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineSize)

	for lineNumber := 1; ; lineNumber++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := io.WriteString(s.output, s.prompt); err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}

		if !lines.Scan() {
			break
		}

		s.reporter.Reset()

		lineLogger := logger.With().Int(semconv.PromptLine, lineNumber).Logger()

		err := s.Run(lineLogger.WithContext(ctx), lines.Text())
		if errors.Is(err, ErrHadError) {
			lineLogger.Debug().Msg("line has errors")
			continue
		}
		if err != nil {
			return err
		}
	}

	if err := lines.Err(); err != nil {
		return fmt.Errorf("read prompt input: %w", err)
	}

	// leave the terminal on a fresh line after ^D
	if _, err := io.WriteString(s.output, "\n"); err != nil {
		return fmt.Errorf("write prompt: %w", err)
	}

	return nil
}

func (s *Session) scan(ctx context.Context, source string) []token.Token {
	_, span := s.tracer.Start(ctx, "scan")
	defer span.End()

	tokens := scanner.New(source, s.reporter).ScanTokens()

	span.SetAttributes(attribute.Int(semconv.TokenCount, len(tokens)))
	zerolog.Ctx(ctx).Debug().Int(semconv.TokenCount, len(tokens)).Msg("scanned source")

	return tokens
}

func (s *Session) parse(ctx context.Context, tokens []token.Token) (ast.Expr, error) {
	_, span := s.tracer.Start(ctx, "parse")
	defer span.End()

	expr, err := parser.New(tokens, s.reporter, s.parserOptions...).Parse()
	if err != nil {
		span.RecordError(err)
		zerolog.Ctx(ctx).Debug().Err(err).Msg("parse failed")

		return nil, err
	}

	return expr, nil
}

func (s *Session) print(ctx context.Context, expr ast.Expr) error {
	_, span := s.tracer.Start(ctx, "print")
	defer span.End()

	if _, err := fmt.Fprintln(s.output, printer.New().Print(expr)); err != nil {
		return err
	}

	return nil
}

func WithOutput(output io.Writer) func(*Session) {
	return func(s *Session) {
		s.output = output
	}
}

func WithParserOptions(options ...func(*parser.Parser)) func(*Session) {
	return func(s *Session) {
		s.parserOptions = append(s.parserOptions, options...)
	}
}

func WithPrompt(prompt string) func(*Session) {
	return func(s *Session) {
		s.prompt = prompt
	}
}

func WithReporter(reporter Reporter) func(*Session) {
	return func(s *Session) {
		s.reporter = reporter
	}
}

func WithTracerProvider(tp trace.TracerProvider) func(*Session) {
	return func(s *Session) {
		s.tracer = tp.Tracer(tracerName)
	}
}
