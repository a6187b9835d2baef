package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

type Settings struct {
	DbPath string
}

func NewDB(ctx context.Context, settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	db, err := sql.Open("sqlite", settings.DbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", settings.DbPath, err)
	}
	// One connection: ":memory:" databases are per connection, and SQLite
	// serialises writers anyway.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
