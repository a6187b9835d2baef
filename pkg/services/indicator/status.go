package indicator

import (
	"fmt"
	"math"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
)

const (
	atRiskRatio    = 0.90
	onTrackRatio   = 0.95
	completedRatio = 1.0
)

// DeriveStatus classifies actual against target. An explicit status is
// returned unchanged; a manual override always wins over the ratio.
func DeriveStatus(target, actual float64, explicit *domain.Status) (domain.Status, error) {
	if explicit != nil {
		if !explicit.IsValid() {
			return "", fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *explicit)
		}
		return *explicit, nil
	}

	if math.IsNaN(actual) || math.IsInf(actual, 0) {
		return "", fmt.Errorf("%w: actual %v is not a finite number", domain.ErrInvalidInput, actual)
	}

	ratio, err := progressRatio(target, actual)
	if err != nil {
		return "", err
	}

	switch {
	case ratio < atRiskRatio:
		return domain.StatusOffTrack, nil
	case ratio < onTrackRatio:
		return domain.StatusAtRisk, nil
	case ratio < completedRatio:
		return domain.StatusOnTrack, nil
	default:
		return domain.StatusCompleted, nil
	}
}

func progressRatio(target, actual float64) (float64, error) {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return 0, fmt.Errorf("%w: target %v is not a finite number", domain.ErrInvalidTarget, target)
	}
	if target == 0 {
		return 0, fmt.Errorf("%w: target is zero: %w", domain.ErrInvalidTarget, domain.ErrDivisionByZero)
	}
	return actual / target, nil
}
