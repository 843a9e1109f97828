package data

import (
	"context"
	"embed"
	"io/fs"

	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/pkg/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

// versionTable records the applied migration version.
const versionTable = "schema_version"

// Migrate applies every embedded migration that the database at dsn has not
// seen yet. It reports the schema version before and after.
func Migrate(ctx context.Context, dsn string) (from, to int32, err error) {
	// A single connection is enough for a one-off schema change.
	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return 0, 0, errors.Wrap(err, "connect for migrations")
	}
	defer conn.Close(ctx)

	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return 0, 0, errors.Wrap(err, "constructing database migrator")
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return 0, 0, errors.Wrap(err, "retrieving database migrations subtree")
	}
	if err := m.LoadMigrations(subtree); err != nil {
		return 0, 0, errors.Wrap(err, "loading database migrations")
	}

	from, err = m.GetCurrentVersion(ctx)
	if err != nil {
		return 0, 0, errors.Wrap(err, "retrieving current database migration version")
	}

	if err := m.Migrate(ctx); err != nil {
		return from, from, errors.Wrap(err, "migrating database")
	}
	return from, int32(len(m.Migrations)), nil
}
