package indicator

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/de-tools/isg-atlas/pkg/adapters"
	"github.com/de-tools/isg-atlas/pkg/metrics"
	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/de-tools/isg-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 4

// Store is the persistence the engine reads from and hands new values to.
// GetIndicator returns a nil record and nil error when the id is unknown.
type Store interface {
	GetIndicator(ctx context.Context, id string) (*store.IndicatorRecord, error)
	UpdateActual(ctx context.Context, id string, actual float64, status string, updatedAt time.Time) error
	ListTargets(ctx context.Context, filter store.TargetFilter) ([]store.IndicatorRecord, error)
	UpsertTarget(ctx context.Context, record store.IndicatorRecord, now time.Time) (*store.IndicatorRecord, error)
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type Engine interface {
	ApplyUpdate(ctx context.Context, upd domain.IndicatorUpdate) (*domain.Indicator, error)
	// ApplyBatchUpdate never aborts on a single item: every update ends up
	// either in Results or in Errors, both in input order.
	ApplyBatchUpdate(ctx context.Context, updates []domain.IndicatorUpdate) (domain.BatchResult, error)
	ListTargets(ctx context.Context, filter domain.TargetFilter) ([]domain.Indicator, error)
	SetTarget(ctx context.Context, def domain.TargetDefinition) (*domain.Indicator, error)
}

type Settings struct {
	// BatchConcurrency bounds how many batch items are processed at once.
	BatchConcurrency int
	Now              func() time.Time
}

type engine struct {
	store       Store
	locks       *keyedMutex
	concurrency int
	now         func() time.Time
}

func NewEngine(s Store, settings Settings) (Engine, error) {
	if s == nil {
		return nil, fmt.Errorf("indicator store is nil")
	}
	concurrency := settings.BatchConcurrency
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	now := settings.Now
	if now == nil {
		now = time.Now
	}
	return &engine{
		store:       s,
		locks:       newKeyedMutex(),
		concurrency: concurrency,
		now:         now,
	}, nil
}

func (e *engine) ApplyUpdate(ctx context.Context, upd domain.IndicatorUpdate) (*domain.Indicator, error) {
	updated, err := e.applyUpdate(ctx, upd)
	if err != nil {
		metrics.IndicatorUpdates.WithLabelValues(adapters.ErrorReason(err)).Inc()
		return nil, err
	}
	metrics.IndicatorUpdates.WithLabelValues(string(updated.Status)).Inc()
	return updated, nil
}

func (e *engine) applyUpdate(ctx context.Context, upd domain.IndicatorUpdate) (*domain.Indicator, error) {
	if strings.TrimSpace(upd.ID) == "" {
		return nil, fmt.Errorf("%w: missing required field 'id'", domain.ErrInvalidInput)
	}
	if upd.Actual == nil {
		return nil, fmt.Errorf("%w: missing required field 'actual'", domain.ErrInvalidInput)
	}
	actual := *upd.Actual
	if math.IsNaN(actual) || math.IsInf(actual, 0) {
		return nil, fmt.Errorf("%w: actual %v is not a finite number", domain.ErrInvalidInput, actual)
	}

	unlock := e.locks.Lock(upd.ID)
	defer unlock()

	var updated domain.Indicator
	err := e.store.WithinTx(ctx, func(ctx context.Context) error {
		rec, err := e.store.GetIndicator(ctx, upd.ID)
		if err != nil {
			return fmt.Errorf("get indicator %s: %w", upd.ID, err)
		}
		if rec == nil {
			return fmt.Errorf("indicator %s: %w", upd.ID, domain.ErrNotFound)
		}

		status, err := DeriveStatus(rec.Target, actual, upd.Status)
		if err != nil {
			return fmt.Errorf("indicator %s: %w", upd.ID, err)
		}

		now := e.now().UTC()
		if err := e.store.UpdateActual(ctx, upd.ID, actual, string(status), now); err != nil {
			return fmt.Errorf("update indicator %s: %w", upd.ID, err)
		}

		updated = adapters.MapStoreIndicatorToDomain(*rec)
		updated.Actual = actual
		updated.Status = status
		updated.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("indicator_id", updated.ID).
		Float64("actual", updated.Actual).
		Str("status", string(updated.Status)).
		Msg("indicator actual updated")
	return &updated, nil
}

func (e *engine) ApplyBatchUpdate(ctx context.Context, updates []domain.IndicatorUpdate) (domain.BatchResult, error) {
	if updates == nil {
		return domain.BatchResult{}, fmt.Errorf("%w: update list is missing", domain.ErrInvalidInput)
	}

	start := time.Now()
	defer func() {
		metrics.BatchUpdateDuration.Observe(time.Since(start).Seconds())
	}()

	type outcome struct {
		indicator *domain.Indicator
		err       error
	}
	outcomes := make([]outcome, len(updates))

	var g errgroup.Group
	g.SetLimit(e.concurrency)
	for i, upd := range updates {
		g.Go(func() error {
			ind, err := e.ApplyUpdate(ctx, upd)
			outcomes[i] = outcome{indicator: ind, err: err}
			return nil
		})
	}
	_ = g.Wait()

	result := domain.BatchResult{
		Results: make([]domain.Indicator, 0, len(updates)),
		Errors:  make([]domain.UpdateFailure, 0),
	}
	for i, o := range outcomes {
		if o.err != nil {
			result.Errors = append(result.Errors, domain.UpdateFailure{ID: updates[i].ID, Err: o.err})
			continue
		}
		result.Results = append(result.Results, *o.indicator)
	}

	zerolog.Ctx(ctx).Info().
		Int("updated", len(result.Results)).
		Int("failed", len(result.Errors)).
		Msgf("%d updated, %d failed", len(result.Results), len(result.Errors))
	return result, nil
}

func (e *engine) ListTargets(ctx context.Context, filter domain.TargetFilter) ([]domain.Indicator, error) {
	if filter.Year <= 0 {
		return nil, fmt.Errorf("%w: missing required parameter 'year'", domain.ErrInvalidInput)
	}
	if filter.Month != nil && (*filter.Month < 1 || *filter.Month > 12) {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", domain.ErrInvalidInput, *filter.Month)
	}

	records, err := e.store.ListTargets(ctx, adapters.MapTargetFilterDomainToStore(filter))
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}
	return adapters.MapStoreIndicatorsToDomain(records), nil
}

func (e *engine) SetTarget(ctx context.Context, def domain.TargetDefinition) (*domain.Indicator, error) {
	if err := validateTargetDefinition(def); err != nil {
		return nil, err
	}
	if def.Target == 0 {
		zerolog.Ctx(ctx).Warn().
			Str("name", def.Name).
			Str("category", def.Category).
			Msg("target is zero; actual updates for this period will be rejected")
	}

	var res *store.IndicatorRecord
	err := e.store.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		res, err = e.store.UpsertTarget(ctx, adapters.MapTargetDefinitionDomainToStore(def), e.now().UTC())
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("set target %s/%s %04d-%02d: %w", def.Category, def.Name, def.Year, def.Month, err)
	}

	ind := adapters.MapStoreIndicatorToDomain(*res)
	return &ind, nil
}

func validateTargetDefinition(def domain.TargetDefinition) error {
	if strings.TrimSpace(def.Name) == "" {
		return fmt.Errorf("%w: missing required field 'name'", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(def.Category) == "" {
		return fmt.Errorf("%w: missing required field 'category'", domain.ErrInvalidInput)
	}
	if !(domain.YearMonth{Year: def.Year, Month: def.Month}).Valid() {
		return fmt.Errorf("%w: invalid period %d-%d", domain.ErrInvalidInput, def.Year, def.Month)
	}
	if math.IsNaN(def.Target) || math.IsInf(def.Target, 0) {
		return fmt.Errorf("%w: target %v is not a finite number", domain.ErrInvalidInput, def.Target)
	}
	return nil
}
