// Package migrations embeds the SQL schema of the kv table, one goose
// directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

const (
	DirSQLite   = "sqlite"
	DirPostgres = "postgres"
)
