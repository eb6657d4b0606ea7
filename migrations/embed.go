// Package migrations embeds the SQL migration files applied at startup.
package migrations

import "embed"

// FS holds per-dialect goose migrations.
//
//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS
