// Package migrations embeds the SQL migration files so they can be applied
// by the goose programmatic API for both the SQLite and Postgres backends.
package migrations

import "embed"

// FS holds all *.sql migration files embedded at compile time.
// The statements are written in the SQL subset shared by SQLite and Postgres.
//
//go:embed *.sql
var FS embed.FS
