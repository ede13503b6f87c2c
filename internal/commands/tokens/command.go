package tokens

import (
	"fmt"
	"io"
	"os"

	"github.com/artuross/lox/internal/commandinit"
	"github.com/artuross/lox/internal/commands/config"
	"github.com/artuross/lox/internal/commands/exitcode"
	"github.com/artuross/lox/internal/log/semconv"
	"github.com/artuross/lox/internal/lox/report"
	"github.com/artuross/lox/internal/lox/scanner"
	"github.com/artuross/lox/internal/lox/token"
	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "Scans a file and prints its tokens.",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text or yaml.",
				Value: FormatText,
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	if cliCtx.NArg() != 1 {
		return cli.Exit("Usage: lox tokens [--format text|yaml] <file>", exitcode.Usage)
	}

	format := cliCtx.String("format")
	if format != FormatText && format != FormatYAML {
		return cli.Exit(fmt.Sprintf("unsupported format: %s", format), exitcode.Usage)
	}

	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid config: %s", err), exitcode.Config)
	}

	logger, err := commandinit.NewLogger(cliCtx.App.ErrWriter, cfg.LogLevel, "tokens")
	if err != nil {
		return cli.Exit(fmt.Sprintf("create logger: %s", err), exitcode.Config)
	}

	config.Print(logger, cfg)

	path := cliCtx.Args().First()

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error().Err(err).Msg("read source file")
		return cli.Exit("", exitcode.IOErr)
	}

	collector := report.NewCollector()
	reporter := report.Fanout{
		report.NewConsole(cliCtx.App.ErrWriter, report.WithLogger(logger)),
		collector,
	}

	tokens := scanner.New(string(data), reporter).ScanTokens()

	logger.Debug().
		Str(semconv.SourceFile, path).
		Int(semconv.TokenCount, len(tokens)).
		Int(semconv.DiagnosticCount, len(collector.Diagnostics())).
		Msg("scanned file")

	if err := Write(cliCtx.App.Writer, format, tokens); err != nil {
		logger.Error().Err(err).Msg("write tokens")
		return cli.Exit("", exitcode.IOErr)
	}

	if collector.HadError() {
		return cli.Exit("", exitcode.DataErr)
	}

	return nil
}

// Write renders tokens in the given format.
func Write(w io.Writer, format string, tokens []token.Token) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(tokens); err != nil {
			return fmt.Errorf("encode tokens: %w", err)
		}

		return encoder.Close()

	case FormatText:
		for _, tok := range tokens {
			if _, err := fmt.Fprintf(w, "%4d %s\n", tok.Line, tok); err != nil {
				return err
			}
		}

		return nil

	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
