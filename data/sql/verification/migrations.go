package verification

import (
	"embed"

	"github.com/klwxsrx/go-auth-session/pkg/sql"
)

var Migrations = sql.FSMigrations(migrationFiles)

//go:embed *.sql
var migrationFiles embed.FS
