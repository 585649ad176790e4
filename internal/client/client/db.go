package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/quickshcc/quicksh/internal/client/migrations"
	"github.com/quickshcc/quicksh/internal/client/repositories/kv"
)

// Repositories bundles the local persistence handles the client needs.
type Repositories struct {
	DB *sql.DB
	KV kv.Repository
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the local sqlite database at dsn, migrates it, and
// returns the repository bundle.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLocalDataNotAvailable, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLocalDataNotAvailable, err)
	}

	return &Repositories{
		DB: db,
		KV: kv.NewSQLiteRepository(db),
	}, nil
}
