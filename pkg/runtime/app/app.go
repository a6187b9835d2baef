// Package app wires the SQLite store into the engine services shared by
// the web server and the CLI.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/isg-atlas/pkg/services/analytics"
	"github.com/de-tools/isg-atlas/pkg/services/indicator"
	"github.com/de-tools/isg-atlas/pkg/services/risk"
	"github.com/de-tools/isg-atlas/pkg/store/sqlite"
	"github.com/de-tools/isg-atlas/pkg/store/sqlite/indicators"
)

type Settings struct {
	DbPath           string
	BatchConcurrency int
}

type App struct {
	Scorer    risk.Scorer
	Engine    indicator.Engine
	Analytics analytics.Service

	db *sql.DB
}

func Open(ctx context.Context, settings Settings) (*App, error) {
	db, err := sqlite.NewDB(ctx, sqlite.Settings{DbPath: settings.DbPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store, err := indicators.NewStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create indicator store: %w", err)
	}
	engine, err := indicator.NewEngine(store, indicator.Settings{BatchConcurrency: settings.BatchConcurrency})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create indicator engine: %w", err)
	}
	svc, err := analytics.NewService(store)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create analytics service: %w", err)
	}

	return &App{
		Scorer:    risk.NewScorer(),
		Engine:    engine,
		Analytics: svc,
		db:        db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}
