package risk

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/isg-atlas/pkg/adapters"
	"github.com/de-tools/isg-atlas/pkg/handlers/respond"
	"github.com/de-tools/isg-atlas/pkg/metrics"
	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/de-tools/isg-atlas/pkg/services/risk"
	"github.com/rs/zerolog"
)

const maxMatrixSize = 10

type Handler struct {
	scorer risk.Scorer
}

func NewHandler(scorer risk.Scorer) *Handler {
	return &Handler{scorer: scorer}
}

func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	severity, err := intParam(r, "severity")
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	likelihood, err := intParam(r, "likelihood")
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	assessment, err := h.scorer.Score(severity, likelihood)
	if err != nil {
		logger.Debug().Err(err).Msg("risk score rejected")
		respond.Error(w, r, err)
		return
	}
	metrics.RiskAssessments.WithLabelValues(assessment.Level.String()).Inc()

	respond.JSON(w, r, http.StatusOK, adapters.MapRiskAssessmentDomainToApi(assessment))
}

func (h *Handler) Matrix(w http.ResponseWriter, r *http.Request) {
	size := risk.DefaultScale
	if r.URL.Query().Get("size") != "" {
		var err error
		if size, err = intParam(r, "size"); err != nil {
			respond.Error(w, r, err)
			return
		}
	}
	if size > maxMatrixSize {
		respond.Error(w, r, fmt.Errorf("%w: matrix size must not exceed %d", domain.ErrInvalidInput, maxMatrixSize))
		return
	}

	matrix, err := h.scorer.Matrix(size)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, adapters.MapRiskMatrixDomainToApi(matrix))
}

func intParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: missing required parameter '%s'", domain.ErrInvalidInput, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter '%s' must be an integer", domain.ErrInvalidInput, name)
	}
	return v, nil
}
