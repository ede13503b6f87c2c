package loxconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the content of a lox.toml file. Every field is optional.
//
//	prompt = "lox> "
//	log_level = "debug"
//	unary_minus = true
//	otel_endpoint = "localhost:4317"
type Config struct {
	Prompt       string `toml:"prompt,omitempty"`
	LogLevel     string `toml:"log_level,omitempty"`
	UnaryMinus   *bool  `toml:"unary_minus,omitempty"`
	OtelEndpoint string `toml:"otel_endpoint,omitempty"`
}

func SaveConfigFile(path string, config *Config) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open lox config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("encode lox config file: %w", err)
	}

	return nil
}

// ReadConfigFile reads the config at path. A missing file yields an empty
// config when optional is set.
func ReadConfigFile(path string, optional bool) (*Config, error) {
	var config Config

	meta, err := toml.DecodeFile(path, &config)
	if errors.Is(err, fs.ErrNotExist) && optional {
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read lox config file: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("read lox config file: unknown key %q", undecoded[0].String())
	}

	return &config, nil
}
