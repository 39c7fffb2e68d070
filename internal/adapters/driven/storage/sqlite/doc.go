// Package sqlite provides the SQLite implementation of driven.DocumentStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The whole index lives in a single file, archivo.db, in the
// data directory (~/.archivo by default).
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Applied versions are recorded in the schema_migrations table, so
// opening an existing database is a no-op.
//
// # Search
//
// Matching is a case-insensitive substring test on the document, site, and
// region names. The store registers a deterministic fold() SQL function that
// applies Unicode case folding, so "ÑUÑOA" matches "ñuñoa". LIKE wildcards in
// the query are escaped and match literally.
//
// # Thread Safety
//
// All operations are safe for concurrent use. Writes are serialised by SQLite
// in WAL mode; a single process is expected to own the file.
package sqlite
