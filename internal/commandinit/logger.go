package commandinit

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// NewLogger builds the console logger used by all commands. Diagnostics of
// the language itself are not logs and never go through it.
func NewLogger(out io.Writer, level string, command string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}

	// ParseLevel maps "" to NoLevel, which would log everything
	if lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}

	writer := zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = out
	})

	logger := zerolog.New(writer).
		Level(lvl).
		With().
		Timestamp().
		Str("command", command).
		Logger()

	return logger, nil
}
