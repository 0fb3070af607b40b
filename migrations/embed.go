// Package migrations embeds the SQL migration files for use with the goose
// programmatic API at server bootstrap and in integration tests.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time, so the schema
// ships inside the binary and never depends on a filesystem path at runtime.
//
//go:embed *.sql
var FS embed.FS
