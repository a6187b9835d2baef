package indicators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/isg-atlas/pkg/models/store"
	"github.com/de-tools/isg-atlas/pkg/store/sqlite"
	"github.com/google/uuid"
)

const selectColumns = `SELECT id, name, category, unit, year, month, target, actual, status, created_at, updated_at FROM indicators`

type Store interface {
	GetIndicator(ctx context.Context, id string) (*store.IndicatorRecord, error)
	UpdateActual(ctx context.Context, id string, actual float64, status string, updatedAt time.Time) error
	ListTargets(ctx context.Context, filter store.TargetFilter) ([]store.IndicatorRecord, error)
	UpsertTarget(ctx context.Context, record store.IndicatorRecord, now time.Time) (*store.IndicatorRecord, error)
	ListInRange(ctx context.Context, filter store.RangeFilter) ([]store.IndicatorRecord, error)
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type defaultStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db: db,
	}, nil
}

func (s *defaultStore) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return sqlite.WithinTx(ctx, s.db, fn)
}

func (s *defaultStore) GetIndicator(ctx context.Context, id string) (*store.IndicatorRecord, error) {
	row := sqlite.Conn(ctx, s.db).QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get indicator %s: %w", id, err)
	}
	return rec, nil
}

func (s *defaultStore) UpdateActual(ctx context.Context, id string, actual float64, status string, updatedAt time.Time) error {
	res, err := sqlite.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE indicators SET actual = ?, status = ?, updated_at = ? WHERE id = ?`,
		actual, status, formatTime(updatedAt), id,
	)
	if err != nil {
		return fmt.Errorf("update indicator %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update indicator %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update indicator %s: no rows affected", id)
	}
	return nil
}

func (s *defaultStore) ListTargets(ctx context.Context, filter store.TargetFilter) ([]store.IndicatorRecord, error) {
	conds := []string{"year = ?"}
	args := []any{filter.Year}
	if filter.Month != nil {
		conds = append(conds, "month = ?")
		args = append(args, *filter.Month)
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Name != "" {
		conds = append(conds, "name = ?")
		args = append(args, filter.Name)
	}

	query := selectColumns + ` WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY month, category, name`
	return s.query(ctx, query, args...)
}

func (s *defaultStore) ListInRange(ctx context.Context, filter store.RangeFilter) ([]store.IndicatorRecord, error) {
	conds := []string{"(year * 12 + month - 1) BETWEEN ? AND ?"}
	args := []any{filter.StartIndex, filter.EndIndex}
	if filter.Name != "" {
		conds = append(conds, "name = ?")
		args = append(args, filter.Name)
	}
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}

	query := selectColumns + ` WHERE ` + strings.Join(conds, " AND ") + ` ORDER BY year, month, name`
	return s.query(ctx, query, args...)
}

// UpsertTarget creates the indicator for (name, category, year, month) or
// replaces the target and unit of the existing one. Actual and status are kept.
func (s *defaultStore) UpsertTarget(ctx context.Context, record store.IndicatorRecord, now time.Time) (*store.IndicatorRecord, error) {
	var res *store.IndicatorRecord
	err := s.WithinTx(ctx, func(ctx context.Context) error {
		conn := sqlite.Conn(ctx, s.db)
		row := conn.QueryRowContext(ctx,
			selectColumns+` WHERE name = ? AND category = ? AND year = ? AND month = ?`,
			record.Name, record.Category, record.Year, record.Month,
		)
		existing, err := scanRecord(row)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			rec := record
			rec.ID = uuid.NewString()
			rec.Actual = 0
			rec.Status = "pending"
			rec.CreatedAt = now
			rec.UpdatedAt = now
			_, err := conn.ExecContext(ctx,
				`INSERT INTO indicators (id, name, category, unit, year, month, target, actual, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				rec.ID, rec.Name, rec.Category, rec.Unit, rec.Year, rec.Month, rec.Target, rec.Actual, rec.Status,
				formatTime(rec.CreatedAt), formatTime(rec.UpdatedAt),
			)
			if err != nil {
				return fmt.Errorf("insert indicator: %w", err)
			}
			res = &rec
			return nil
		case err != nil:
			return fmt.Errorf("find indicator: %w", err)
		}

		_, err = conn.ExecContext(ctx,
			`UPDATE indicators SET target = ?, unit = ?, updated_at = ? WHERE id = ?`,
			record.Target, record.Unit, formatTime(now), existing.ID,
		)
		if err != nil {
			return fmt.Errorf("update target of %s: %w", existing.ID, err)
		}
		existing.Target = record.Target
		existing.Unit = record.Unit
		existing.UpdatedAt = now
		res = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *defaultStore) query(ctx context.Context, query string, args ...any) ([]store.IndicatorRecord, error) {
	rows, err := sqlite.Conn(ctx, s.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query indicators: %w", err)
	}
	defer rows.Close()

	res := make([]store.IndicatorRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate indicators: %w", err)
	}
	return res, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*store.IndicatorRecord, error) {
	var rec store.IndicatorRecord
	var createdAt, updatedAt string
	err := row.Scan(
		&rec.ID, &rec.Name, &rec.Category, &rec.Unit, &rec.Year, &rec.Month,
		&rec.Target, &rec.Actual, &rec.Status, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("indicator %s created_at: %w", rec.ID, err)
	}
	if rec.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("indicator %s updated_at: %w", rec.ID, err)
	}
	return &rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}
