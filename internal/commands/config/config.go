package config

import (
	"fmt"

	"github.com/artuross/lox/internal/lox/parser"
	"github.com/artuross/lox/internal/lox/token"
	"github.com/artuross/lox/internal/loxconfig"
	"github.com/artuross/lox/internal/session"
	"github.com/rs/zerolog"
)

const (
	DefaultConfigFile = "lox.toml"
	DefaultLogLevel   = "warn"
)

type Flagger interface {
	Bool(name string) bool
	IsSet(name string) bool
	String(name string) string
}

type Config struct {
	ConfigFilePath string
	LogLevel       string
	OtelEndpoint   string
	Prompt         string
	UnaryMinus     bool
}

// Read merges flags, environment and the config file, in that order of
// precedence.
func Read(flags Flagger, getEnv func(string) string) (*Config, error) {
	configFile := flags.String("config")
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	// the default file may be absent, an explicit one may not
	fileConfig, err := loxconfig.ReadConfigFile(configFile, !flags.IsSet("config"))
	if err != nil {
		return nil, err
	}

	logLevel := firstNonEmpty(flags.String("log-level"), getEnv("LOX_LOG_LEVEL"), fileConfig.LogLevel, DefaultLogLevel)
	if _, err := zerolog.ParseLevel(logLevel); err != nil {
		return nil, fmt.Errorf("invalid log level %q", logLevel)
	}

	otelEndpoint := firstNonEmpty(flags.String("otel-endpoint"), getEnv("LOX_OTEL_ENDPOINT"), fileConfig.OtelEndpoint)

	unaryMinus := false
	if fileConfig.UnaryMinus != nil {
		unaryMinus = *fileConfig.UnaryMinus
	}
	if flags.IsSet("unary-minus") {
		unaryMinus = flags.Bool("unary-minus")
	}

	cfg := Config{
		ConfigFilePath: configFile,
		LogLevel:       logLevel,
		OtelEndpoint:   otelEndpoint,
		Prompt:         firstNonEmpty(fileConfig.Prompt, session.DefaultPrompt),
		UnaryMinus:     unaryMinus,
	}

	return &cfg, nil
}

// ParserOptions translates the config into parser options.
func (c *Config) ParserOptions() []func(*parser.Parser) {
	if !c.UnaryMinus {
		return nil
	}

	return []func(*parser.Parser){
		parser.WithUnaryOperators(token.TypeBang, token.TypeMinus),
	}
}

func Print(logger zerolog.Logger, cfg *Config) {
	logger.Debug().
		Str("config_file", cfg.ConfigFilePath).
		Str("log_level", cfg.LogLevel).
		Str("otel_endpoint", cfg.OtelEndpoint).
		Str("prompt", cfg.Prompt).
		Bool("unary_minus", cfg.UnaryMinus).
		Msg("running with config")
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}
