// Package migrations embeds the SQL migration files so the binary can
// bring its schema up to date without any files on disk.
package migrations

import (
	"embed"

	"github.com/ashdown-labs/larkhub-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
