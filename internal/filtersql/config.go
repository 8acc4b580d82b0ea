package filtersql

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	driverPGX  = "pgx"
	driverPQ   = "pq"
	driverSQLX = "sqlx"
	stdinPath  = "-"
)

// Config holds the filtersql configuration. Connection and pagination settings come from the
// environment, everything else from flags.
type Config struct {
	DSN          string     `env:"FILTERSQL_POSTGRES_DSN"`
	Driver       string     `env:"FILTERSQL_DRIVER"        envDefault:"pgx"`
	TablePrefix  string     `env:"FILTERSQL_TABLE_PREFIX"`
	DefaultLimit int        `env:"FILTERSQL_DEFAULT_LIMIT" envDefault:"200"`
	MaxLimit     int        `env:"FILTERSQL_MAX_LIMIT"     envDefault:"200"`
	LogLevel     slog.Level `env:"FILTERSQL_LOG_LEVEL"     envDefault:"WARN"`

	InputPath string
	Exec      bool
	JSON      bool
}

// ParseConfig reads the environment and then parses CLI flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.InputPath, "input", stdinPath, "request file, - reads stdin")
	fs.BoolVar(&cfg.Exec, "exec", false, "run the query and print the matching ids")
	fs.BoolVar(&cfg.JSON, "json", false, "print the result as JSON")
	fs.StringVar(&cfg.Driver, "driver", cfg.Driver, "database driver for -exec: pgx, pq or sqlx")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) validate() error {
	switch cfg.Driver {
	case driverPGX, driverPQ, driverSQLX:
	default:
		return fmt.Errorf("unknown driver %q", cfg.Driver)
	}

	if cfg.Exec && strings.TrimSpace(cfg.DSN) == "" {
		return errors.New("FILTERSQL_POSTGRES_DSN is required with -exec")
	}

	if strings.TrimSpace(cfg.InputPath) == "" {
		return errors.New("input is required")
	}

	return nil
}
