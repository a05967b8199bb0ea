package postgres

import "embed"

// MigrationsFS embeds the SQL migrations applied through the server's
// -migrate command.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
