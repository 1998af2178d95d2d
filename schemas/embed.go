// Package schemas provides embedded SQL migration files.
package schemas

import "embed"

// Migrations contains the SQL files creating the progress tables.
// Statements are portable across MySQL, PostgreSQL and SQLite.
//
//go:embed migrations/*.sql
var Migrations embed.FS
