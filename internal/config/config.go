// Package config loads process settings for the validations CLI from the
// environment, optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/reoring/validations/i18n"
	"github.com/reoring/validations/internal/logger"
)

// Prefix is prepended to every variable name.
const Prefix = "VALIDATIONS_"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed.
	ErrParsingConfig = errors.New("config: failed to parse environment variables")
	// ErrInvalidConfig is returned by Validate.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config holds every setting. Flags may override fields after Load.
type Config struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Lang selects the built-in message dictionary ("en", "ja") or the
	// catalog language when Catalog is set.
	Lang    string `env:"LANG" envDefault:"en"`
	Catalog string `env:"CATALOG"`

	Schema          string        `env:"SCHEMA"`
	Addr            string        `env:"ADDR" envDefault:":8080"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads dotenv files (default ".env"; missing files are skipped), then
// parses VALIDATIONS_* variables. Variables already set in the process win
// over dotenv values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Join(ErrParsingConfig, fmt.Errorf("%s: %w", f, err))
		}
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// Validate checks values that env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		errs = append(errs, err)
	}
	if c.Catalog == "" && !slices.Contains(i18n.Languages(), c.Lang) {
		errs = append(errs, fmt.Errorf("%w: %q (built-in: %s)", i18n.ErrLanguageNotSupported, c.Lang, strings.Join(i18n.Languages(), ", ")))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes))
	}
	if c.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}

// Logger builds the process logger. Call Validate first; unparsable values
// fall back to info/json here.
func (c Config) Logger(opts ...logger.Option) *slog.Logger {
	level, _ := logger.ParseLevel(c.LogLevel)
	format, err := logger.ParseFormat(c.LogFormat)
	if err != nil {
		format = logger.FormatJSON
	}
	base := []logger.Option{logger.WithLevel(level), logger.WithFormat(format)}
	return logger.New(append(base, opts...)...)
}

// ApplyMessages installs the message translator: the catalog's language when
// Catalog is set, otherwise the built-in dictionary for Lang.
func (c Config) ApplyMessages() error {
	if c.Catalog == "" {
		i18n.SetLanguage(c.Lang)
		return nil
	}
	cat, err := i18n.LoadCatalogFile(c.Catalog)
	if err != nil {
		return err
	}
	tr, err := cat.Translator(c.Lang)
	if err != nil {
		return err
	}
	i18n.SetTranslator(tr)
	return nil
}
