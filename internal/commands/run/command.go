package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/artuross/lox/internal/commandinit"
	"github.com/artuross/lox/internal/commands/config"
	"github.com/artuross/lox/internal/commands/exitcode"
	"github.com/artuross/lox/internal/lox/report"
	"github.com/artuross/lox/internal/session"
	cli "github.com/urfave/cli/v2"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Parses a file, or every line typed at the prompt, and prints the syntax tree.",
		ArgsUsage: "[file]",
		Action:    run,
	}
}

func run(cliCtx *cli.Context) error {
	ctx := cliCtx.Context

	if cliCtx.NArg() > 1 {
		return cli.Exit("Usage: lox run [file]", exitcode.Usage)
	}

	cfg, err := config.Read(cliCtx, os.Getenv)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid config: %s", err), exitcode.Config)
	}

	logger, err := commandinit.NewLogger(cliCtx.App.ErrWriter, cfg.LogLevel, "run")
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

	ctx = logger.WithContext(ctx)

	sess := session.New(
		session.WithOutput(cliCtx.App.Writer),
		session.WithPrompt(cfg.Prompt),
		session.WithReporter(report.NewConsole(cliCtx.App.ErrWriter, report.WithLogger(logger))),
		session.WithParserOptions(cfg.ParserOptions()...),
		session.WithTracerProvider(tracerProvider),
	)

	logger.Debug().Str("session_id", sess.ID().String()).Msg("session created")

	if cliCtx.NArg() == 0 {
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()

		err := sess.RunPrompt(ctx, cliCtx.App.Reader)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("run prompt")
			return cli.Exit("", exitcode.IOErr)
		}

		return nil
	}

	err = sess.RunFile(ctx, cliCtx.Args().First())
	switch {
	case errors.Is(err, session.ErrHadError):
		return cli.Exit("", exitcode.DataErr)

	case err != nil:
		logger.Error().Err(err).Msg("run file")
		return cli.Exit("", exitcode.IOErr)
	}

	return nil
}
