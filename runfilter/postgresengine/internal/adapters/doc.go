// Package adapters provides the database adapters of the Postgres query layer.
//
// The query layer only reads, so an adapter needs nothing but Query. Adapters exist for
// pgxpool.Pool (optionally with a read replica), sql.DB and sqlx.DB; all of them wrap their
// rows in the DBRows interface.
package adapters
