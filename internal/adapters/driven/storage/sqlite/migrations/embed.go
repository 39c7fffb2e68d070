// Package migrations embeds the versioned schema for the document store.
//
// Files are named NNN_description.up.sql and NNN_description.down.sql.
// Only the up files are applied; the down files document how to revert.
package migrations

import "embed"

// FS contains all SQL migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
