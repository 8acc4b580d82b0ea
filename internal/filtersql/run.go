// Package filtersql implements the filtersql command: it compiles a run filter request into its
// predicate and SQL and optionally runs the query against Postgres.
package filtersql

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database/sql driver "postgres"

	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter"
	"github.com/AntonStoeckl/dynamic-run-filters-go/runfilter/postgresengine"
)

const sqlDriverName = "postgres"

type result struct {
	Entity    runfilter.Entity `json:"entity"`
	Predicate string           `json:"predicate"`
	SQL       string           `json:"sql"`
	IDs       []uuid.UUID      `json:"ids,omitempty"`
}

type idQuerier interface {
	QueryIDs(ctx context.Context, filter runfilter.EntityFilter, page runfilter.Pagination) ([]uuid.UUID, error)
}

// Run executes filtersql using the provided Config. Diagnostics go to logOut.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, logOut io.Writer) error {
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))

	rules, err := runfilter.NewPaginationRules(
		runfilter.WithMaxLimit(cfg.MaxLimit),
		runfilter.WithDefaultLimit(cfg.DefaultLimit),
	)
	if err != nil {
		return err
	}

	if cfg.InputPath != stdinPath {
		file, openErr := os.Open(cfg.InputPath)
		if openErr != nil {
			return fmt.Errorf("open input: %w", openErr)
		}
		defer file.Close()
		in = file
	}

	req, err := readRequest(in, rules)
	if err != nil {
		return err
	}

	sqlQuery, err := postgresengine.RenderSelectIDs(req.filter, req.page, cfg.TablePrefix)
	if err != nil {
		return err
	}

	res := result{
		Entity:    req.filter.Entity(),
		Predicate: req.filter.Predicate().String(),
		SQL:       sqlQuery,
	}

	logger.Debug("compiled filter", "entity", res.Entity, "predicate", res.Predicate)

	if cfg.Exec {
		store, closeStore, openErr := openStore(ctx, cfg, logger)
		if openErr != nil {
			return openErr
		}
		defer closeStore()

		if res.IDs, err = store.QueryIDs(ctx, req.filter, req.page); err != nil {
			return err
		}
	}

	return writeResult(out, res, cfg)
}

func writeResult(out io.Writer, res result, cfg Config) error {
	if cfg.JSON {
		stream := requestJSON.BorrowStream(out)
		defer requestJSON.ReturnStream(stream)

		stream.WriteVal(res)
		stream.WriteRaw("\n")

		return stream.Flush()
	}

	if _, err := fmt.Fprintf(out, "predicate: %s\nsql: %s\n", res.Predicate, res.SQL); err != nil {
		return err
	}

	if !cfg.Exec {
		return nil
	}

	if _, err := fmt.Fprintf(out, "ids: %d\n", len(res.IDs)); err != nil {
		return err
	}

	for _, id := range res.IDs {
		if _, err := fmt.Fprintln(out, id); err != nil {
			return err
		}
	}

	return nil
}

func openStore(ctx context.Context, cfg Config, logger *slog.Logger) (idQuerier, func(), error) {
	options := []postgresengine.Option{postgresengine.WithLogger(logger)}
	if cfg.TablePrefix != "" {
		options = append(options, postgresengine.WithTablePrefix(cfg.TablePrefix))
	}

	switch cfg.Driver {
	case driverPQ:
		db, err := sql.Open(sqlDriverName, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		store, err := postgresengine.NewStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case driverSQLX:
		db, err := sqlx.ConnectContext(ctx, sqlDriverName, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}

		store, err := postgresengine.NewStoreFromSQLX(db, options...)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	default:
		pool, err := pgxpool.New(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open pgx pool: %w", err)
		}

		store, err := postgresengine.NewStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}

		return store, pool.Close, nil
	}
}
