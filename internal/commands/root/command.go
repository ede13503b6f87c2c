package root

import (
	"github.com/artuross/lox/internal/commands/check"
	"github.com/artuross/lox/internal/commands/run"
	"github.com/artuross/lox/internal/commands/tokens"
	cli "github.com/urfave/cli/v2"
)

func NewCommand() *cli.App {
	return &cli.App{
		Name:  "lox",
		Usage: "Scans and parses Lox expressions.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path of the TOML config file.",
				Value: "lox.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: trace, debug, info, warn, error. Overrides LOX_LOG_LEVEL.",
			},
			&cli.StringFlag{
				Name:  "otel-endpoint",
				Usage: "OTLP/gRPC endpoint receiving traces. Overrides LOX_OTEL_ENDPOINT. Tracing is off when empty.",
			},
			&cli.BoolFlag{
				Name:  "unary-minus",
				Usage: "Accept '!' and '-' as prefix operators instead of '!' and '/'.",
			},
		},
		Commands: []*cli.Command{
			run.NewCommand(),
			tokens.NewCommand(),
			check.NewCommand(),
		},
	}
}
