// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Storage backends.
const (
	StorageBadger = "badger"
	StorageMemory = "memory"
	StorageOff    = "off"
)

// Config is the process configuration. Command-line flags may override it.
type Config struct {
	DataDir      string `env:"CHESSRULES_DATA_DIR"`
	LogLevel     string `env:"CHESSRULES_LOG_LEVEL" envDefault:"info"`
	PerftWorkers int    `env:"CHESSRULES_PERFT_WORKERS" envDefault:"0"`
	Storage      string `env:"CHESSRULES_STORAGE" envDefault:"badger"`
	NoColor      bool   `env:"CHESSRULES_NO_COLOR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads and validates Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated and bounded fields.
func (c Config) Validate() error {
	switch strings.ToLower(c.Storage) {
	case StorageBadger, StorageMemory, StorageOff:
	default:
		return fmt.Errorf("config: CHESSRULES_STORAGE %q: want badger, memory or off", c.Storage)
	}
	if c.PerftWorkers < 0 {
		return fmt.Errorf("config: CHESSRULES_PERFT_WORKERS must not be negative, got %d", c.PerftWorkers)
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("config: CHESSRULES_LOG_LEVEL: %w", err)
	}
	return nil
}

// NewLogger builds the root logger writing human-readable lines to w.
func NewLogger(w io.Writer, level string, noColor bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: noColor}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
