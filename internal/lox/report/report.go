package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/artuross/lox/internal/lox/token"
	"github.com/rs/zerolog"
)

var (
	_ Reporter = (*Collector)(nil)
	_ Reporter = (*Console)(nil)
	_ Reporter = Fanout(nil)
)

// Reporter receives lexical and syntax errors from the scanner and parser.
type Reporter interface {
	Report(line int, where string, message string)
	ReportToken(tok token.Token, message string)
}

type Diagnostic struct {
	Line    int    `yaml:"line"`
	Where   string `yaml:"where,omitempty"`
	Message string `yaml:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[line %d] Error%s: %s", d.Line, d.Where, d.Message)
}

// Where formats the location part of a diagnostic for tok.
func Where(tok token.Token) string {
	if tok.Type == token.TypeEOF {
		return " at end"
	}

	return fmt.Sprintf(" at '%s'", tok.Lexeme)
}

// Console writes diagnostics to a writer and remembers whether any were
// reported since the last Reset.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	logger   zerolog.Logger
	hadError bool
}

func NewConsole(out io.Writer, options ...func(*Console)) *Console {
	console := Console{
		out:    out,
		logger: zerolog.Nop(),
	}

	for _, apply := range options {
		apply(&console)
	}

	return &console
}

func (c *Console) Report(line int, where string, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	diagnostic := Diagnostic{Line: line, Where: where, Message: message}

	c.logger.Debug().
		Int("line", line).
		Str("where", where).
		Msg(message)

	// nothing sensible to do when the diagnostic sink itself fails
	_, _ = fmt.Fprintln(c.out, diagnostic.String())

	c.hadError = true
}

func (c *Console) ReportToken(tok token.Token, message string) {
	c.Report(tok.Line, Where(tok), message)
}

func (c *Console) HadError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.hadError
}

func (c *Console) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.hadError = false
}

func WithLogger(logger zerolog.Logger) func(*Console) {
	return func(c *Console) {
		c.logger = logger
	}
}

// Collector keeps every diagnostic in the order it was reported.
type Collector struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Report(line int, where string, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.diagnostics = append(c.diagnostics, Diagnostic{
		Line:    line,
		Where:   where,
		Message: message,
	})
}

func (c *Collector) ReportToken(tok token.Token, message string) {
	c.Report(tok.Line, Where(tok), message)
}

func (c *Collector) Diagnostics() []Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Diagnostic, len(c.diagnostics))
	copy(out, c.diagnostics)

	return out
}

func (c *Collector) HadError() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.diagnostics) > 0
}

func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.diagnostics = nil
}

// Fanout forwards every diagnostic to all reporters.
type Fanout []Reporter

func (f Fanout) Report(line int, where string, message string) {
	for _, r := range f {
		r.Report(line, where, message)
	}
}

func (f Fanout) ReportToken(tok token.Token, message string) {
	for _, r := range f {
		r.ReportToken(tok, message)
	}
}
