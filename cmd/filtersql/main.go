// Command filtersql compiles a run filter request into a predicate and PostgreSQL.
//
// The request is read from -input (stdin by default):
//
//	{"entity": "flow_run", "filter": {"state_type": {"any_": ["FAILED"]}}, "limit": 10}
//
// With -exec the query runs against FILTERSQL_POSTGRES_DSN and the matching ids are printed.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/dynamic-run-filters-go/internal/filtersql"
)

func main() {
	cfg, err := filtersql.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := filtersql.Run(ctx, cfg, os.Stdin, os.Stdout, os.Stderr); err != nil {
		stop()
		exitf("Error: %v", err)
	}
}

func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
