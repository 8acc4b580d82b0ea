// Package postgresengine renders compiled run filters as PostgreSQL and queries matching ids.
//
// Each entity is bound to a table (flow, flow_run, task_run, optionally prefixed) and each filter
// field to a column. Scalar columns hold ids, names, versions, state types and timestamps; tags
// are stored as a JSONB array. Predicates are rendered with goqu's postgres dialect:
//
//	IN / NOT_IN            "col" IN (...) / "col" NOT IN (...), empty lists render FALSE / TRUE
//	EQUALS / NOT_EQUALS    "col" = v / "col" != v
//	LE / GE / BETWEEN      "col" <= v / "col" >= v / "col" BETWEEN a AND b
//	SUPERSET               "col" @> '["a","b"]'::jsonb
//	IS_EMPTY               "col" IS NULL, or "col" = '[]'::jsonb for JSONB arrays
//	AND()                  TRUE
//
// Supported database adapters are pgx (optionally reading from a replica), sql.DB and sqlx.
//
// Usage examples:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	store, _ := postgresengine.NewStoreFromPGXPool(
//		db,
//		postgresengine.WithTablePrefix("orchestration_"),
//		postgresengine.WithLogger(slog.Default()),
//	)
//
//	filter, _ := runfilter.DecodeFlowRunFilter(payload)
//	page, _ := runfilter.BuildPagination(nil, nil)
//	ids, _ := store.QueryIDs(ctx, filter, page)
package postgresengine
