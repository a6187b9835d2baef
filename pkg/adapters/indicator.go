package adapters

import (
	"errors"

	"github.com/de-tools/isg-atlas/pkg/models/api"
	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/de-tools/isg-atlas/pkg/models/store"
)

func MapStoreIndicatorToDomain(r store.IndicatorRecord) domain.Indicator {
	return domain.Indicator{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		Unit:      r.Unit,
		Year:      r.Year,
		Month:     r.Month,
		Target:    r.Target,
		Actual:    r.Actual,
		Status:    domain.Status(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func MapStoreIndicatorsToDomain(records []store.IndicatorRecord) []domain.Indicator {
	res := make([]domain.Indicator, 0, len(records))
	for _, r := range records {
		res = append(res, MapStoreIndicatorToDomain(r))
	}
	return res
}

func MapTargetDefinitionDomainToStore(def domain.TargetDefinition) store.IndicatorRecord {
	return store.IndicatorRecord{
		Name:     def.Name,
		Category: def.Category,
		Unit:     def.Unit,
		Year:     def.Year,
		Month:    def.Month,
		Target:   def.Target,
	}
}

func MapTargetFilterDomainToStore(f domain.TargetFilter) store.TargetFilter {
	return store.TargetFilter{
		Year:     f.Year,
		Month:    f.Month,
		Category: f.Category,
		Name:     f.Name,
	}
}

func MapIndicatorQueryDomainToStore(q domain.IndicatorQuery) store.RangeFilter {
	return store.RangeFilter{
		Name:       q.Name,
		Category:   q.Category,
		StartIndex: q.Range.Start.Index(),
		EndIndex:   q.Range.End.Index(),
	}
}

func MapIndicatorDomainToApi(i domain.Indicator) api.Indicator {
	return api.Indicator{
		ID:        i.ID,
		Name:      i.Name,
		Category:  i.Category,
		Unit:      i.Unit,
		Year:      i.Year,
		Month:     i.Month,
		Target:    i.Target,
		Actual:    i.Actual,
		Status:    string(i.Status),
		UpdatedAt: i.UpdatedAt,
	}
}

func MapIndicatorsDomainToApi(items []domain.Indicator) []api.Indicator {
	res := make([]api.Indicator, 0, len(items))
	for _, i := range items {
		res = append(res, MapIndicatorDomainToApi(i))
	}
	return res
}

func MapSetTargetApiToDomain(req api.SetTargetRequest) domain.TargetDefinition {
	def := domain.TargetDefinition{
		Name:     req.Name,
		Category: req.Category,
		Unit:     req.Unit,
		Year:     req.Year,
		Month:    req.Month,
	}
	if req.Target != nil {
		def.Target = *req.Target
	}
	return def
}

// MapUpdateActualApiToDomain does not validate; an unknown status is left for
// the engine to reject so that batch items fail one by one.
func MapUpdateActualApiToDomain(req api.UpdateActualRequest) domain.IndicatorUpdate {
	upd := domain.IndicatorUpdate{
		ID:     req.ID,
		Actual: req.Actual,
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		upd.Status = &s
	}
	return upd
}

func MapBatchUpdateApiToDomain(req api.BatchUpdateRequest) []domain.IndicatorUpdate {
	if req.Updates == nil {
		return nil
	}
	res := make([]domain.IndicatorUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		res = append(res, MapUpdateActualApiToDomain(u))
	}
	return res
}

func MapBatchResultDomainToApi(r domain.BatchResult) api.BatchUpdateResponse {
	res := api.BatchUpdateResponse{
		Updated: len(r.Results),
		Failed:  len(r.Errors),
		Results: MapIndicatorsDomainToApi(r.Results),
		Errors:  make([]api.BatchError, 0, len(r.Errors)),
	}
	for _, f := range r.Errors {
		res.Errors = append(res.Errors, api.BatchError{
			ID:      f.ID,
			Reason:  ErrorReason(f.Err),
			Message: f.Err.Error(),
		})
	}
	return res
}

// ErrorReason maps an engine error onto the stable reason code shown to clients.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidTarget):
		return "invalid_target"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}
