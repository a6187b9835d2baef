package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"
)

type migration struct {
	Version     int
	Description string
	Statements  []string
}

const indicatorsTable = `
	CREATE TABLE IF NOT EXISTS indicators (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		unit TEXT NOT NULL DEFAULT '',
		year INTEGER NOT NULL,
		month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		target REAL NOT NULL,
		actual REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		UNIQUE (name, category, year, month)
	);
`

const indicatorsPeriodIndex = `
	CREATE INDEX IF NOT EXISTS idx_indicators_period ON indicators (year * 12 + month - 1);
`

var migrations = []migration{
	{Version: 1, Description: "create indicators", Statements: []string{indicatorsTable}},
	{Version: 2, Description: "index indicators by month index", Statements: []string{indicatorsPeriodIndex}},
}

func latestVersion() int {
	return migrations[len(migrations)-1].Version
}

func schemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// migrate applies every migration newer than PRAGMA user_version.
func migrate(ctx context.Context, db *sql.DB) error {
	current, err := schemaVersion(db)
	if err != nil {
		return err
	}
	if current >= latestVersion() {
		return nil
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}
		zerolog.Ctx(ctx).Debug().Int("version", m.Version).Str("description", m.Description).Msg("applying migration")

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}
		for _, stmt := range m.Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}

		// DDL above is idempotent, so a crash before this point only re-runs it.
		if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			return fmt.Errorf("set schema version %d: %w", m.Version, err)
		}
	}
	return nil
}
