package indicators

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/de-tools/isg-atlas/pkg/adapters"
	"github.com/de-tools/isg-atlas/pkg/handlers/respond"
	"github.com/de-tools/isg-atlas/pkg/models/api"
	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/de-tools/isg-atlas/pkg/services/analytics"
	"github.com/de-tools/isg-atlas/pkg/services/indicator"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 4 << 20

var validate = validator.New()

type Handler struct {
	engine    indicator.Engine
	analytics analytics.Service
}

func NewHandler(engine indicator.Engine, svc analytics.Service) *Handler {
	return &Handler{
		engine:    engine,
		analytics: svc,
	}
}

func (h *Handler) ListTargets(w http.ResponseWriter, r *http.Request) {
	filter, err := targetFilter(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	items, err := h.engine.ListTargets(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapIndicatorsDomainToApi(items))
}

func (h *Handler) SetTarget(w http.ResponseWriter, r *http.Request) {
	var req api.SetTargetRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	ind, err := h.engine.SetTarget(r.Context(), adapters.MapSetTargetApiToDomain(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapIndicatorDomainToApi(*ind))
}

func (h *Handler) UpdateActual(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateActualRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	ind, err := h.engine.ApplyUpdate(r.Context(), adapters.MapUpdateActualApiToDomain(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapIndicatorDomainToApi(*ind))
}

func (h *Handler) BatchUpdateActuals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.BatchUpdateRequest
	if err := decode(w, r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	res, err := h.engine.ApplyBatchUpdate(ctx, adapters.MapBatchUpdateApiToDomain(req))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	for _, f := range res.Errors {
		zerolog.Ctx(ctx).Warn().
			Str("indicator_id", f.ID).
			Err(f.Err).
			Msgf("indicator %s failed", f.ID)
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapBatchResultDomainToApi(res))
}

func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	q, err := compareQuery(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	buckets, err := h.analytics.CompareIndicators(r.Context(), q)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapPeriodBucketsDomainToApi(buckets))
}

func (h *Handler) Trend(w http.ResponseWriter, r *http.Request) {
	q, err := trendQuery(r.URL.Query())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	analysis, err := h.analytics.AnalyzeIndicatorTrend(r.Context(), q)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapTrendAnalysisDomainToApi(analysis))
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", domain.ErrInvalidInput, err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
