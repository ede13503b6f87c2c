package check

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/artuross/lox/internal/commandinit"
	"github.com/artuross/lox/internal/commands/config"
	"github.com/artuross/lox/internal/commands/exitcode"
	"github.com/artuross/lox/internal/lox/ast"
	"github.com/artuross/lox/internal/lox/printer"
	cli "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"

	NotationPrefix = "prefix"
	NotationRPN    = "rpn"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parses files of ';' terminated expressions and reports every syntax error.",
		ArgsUsage: "<file>...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: text or yaml.",
				Value: FormatText,
			},
			&cli.StringFlag{
				Name:  "tree",
				Usage: "Print parsed expressions in the given notation: prefix or rpn. Text format only.",
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	if cliCtx.NArg() == 0 {
		return cli.Exit("Usage: lox check [--format text|yaml] [--tree prefix|rpn] <file>...", exitcode.Usage)
	}

	format := cliCtx.String("format")
	if format != FormatText && format != FormatYAML {
		return cli.Exit(fmt.Sprintf("unsupported format: %s", format), exitcode.Usage)
	}

	notation := cliCtx.String("tree")
	if notation != "" && notation != NotationPrefix && notation != NotationRPN {
		return cli.Exit(fmt.Sprintf("unsupported notation: %s", notation), exitcode.Usage)
	}

	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid config: %s", err), exitcode.Config)
	}

	logger, err := commandinit.NewLogger(cliCtx.App.ErrWriter, cfg.LogLevel, "check")
	if err != nil {
		return cli.Exit(fmt.Sprintf("create logger: %s", err), exitcode.Config)
	}

	config.Print(logger, cfg)

	tracerProvider, tpShutdown, err := commandinit.NewOpenTelemetry(ctx, "lox", cfg.OtelEndpoint)
	if err != nil {
		logger.Error().Err(err).Msg("init OTEL provider")
		return cli.Exit("", exitcode.Config)
	}
	defer func() {
		if err := tpShutdown(context.WithoutCancel(ctx)); err != nil {
			logger.Warn().Err(err).Msg("shutdown OTEL provider")
		}
	}()

	ctx, span := tracerProvider.Tracer("github.com/artuross/lox/internal/commands/check").Start(ctx, "check")
	defer span.End()

	ctx = logger.WithContext(ctx)

	results, err := Files(ctx, cliCtx.Args().Slice(), cfg.ParserOptions()...)
	if err != nil {
		logger.Error().Err(err).Msg("check files")
		return cli.Exit("", exitcode.IOErr)
	}

	if err := Write(cliCtx.App.Writer, format, notation, results); err != nil {
		logger.Error().Err(err).Msg("write results")
		return cli.Exit("", exitcode.IOErr)
	}

	for _, result := range results {
		if result.HasErrors() {
			return cli.Exit("", exitcode.DataErr)
		}
	}

	return nil
}

// Write renders results. notation selects how parsed expressions are
// printed in text format, empty skips them.
func Write(w io.Writer, format string, notation string, results []Result) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(results); err != nil {
			return fmt.Errorf("encode results: %w", err)
		}

		return encoder.Close()

	case FormatText:
		for _, result := range results {
			if err := writeText(w, notation, result); err != nil {
				return err
			}
		}

		return nil

	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeText(w io.Writer, notation string, result Result) error {
	for _, diagnostic := range result.Diagnostics {
		if _, err := fmt.Fprintf(w, "%s: %s\n", result.File, diagnostic); err != nil {
			return err
		}
	}

	if !result.HasErrors() {
		if _, err := fmt.Fprintf(w, "%s: ok, %d expressions\n", result.File, len(result.Expressions)); err != nil {
			return err
		}
	}

	var render func(expr ast.Expr) string
	switch notation {
	case NotationPrefix:
		render = printer.New().Print

	case NotationRPN:
		render = printer.NewRPN().Print

	default:
		return nil
	}

	for _, expr := range result.Expressions {
		if _, err := fmt.Fprintf(w, "%s: %s\n", result.File, render(expr)); err != nil {
			return err
		}
	}

	return nil
}
