package risk

import (
	"fmt"
	"math"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
)

// DefaultScale is the 1-5 severity/likelihood scale the thresholds are calibrated for.
const DefaultScale = 5

type threshold struct {
	minScore int
	level    domain.RiskLevel
}

// thresholds are evaluated high to low, first match wins.
var thresholds = []threshold{
	{minScore: 15, level: domain.RiskLevelCritical},
	{minScore: 8, level: domain.RiskLevelHigh},
	{minScore: 4, level: domain.RiskLevelMedium},
}

type Scorer interface {
	// Score classifies severity x likelihood. Both factors must be >= 1.
	// Products beyond math.MaxInt saturate to math.MaxInt (CRITICAL).
	Score(severity, likelihood int) (domain.RiskAssessment, error)
	// Matrix returns the size x size grid of assessments.
	Matrix(size int) (domain.RiskMatrix, error)
}

type scorer struct{}

func NewScorer() Scorer {
	return &scorer{}
}

func (s *scorer) Score(severity, likelihood int) (domain.RiskAssessment, error) {
	if severity <= 0 || likelihood <= 0 {
		return domain.RiskAssessment{}, fmt.Errorf(
			"%w: severity and likelihood must be positive, got %d and %d",
			domain.ErrInvalidInput, severity, likelihood)
	}

	score := math.MaxInt
	if severity <= math.MaxInt/likelihood {
		score = severity * likelihood
	}
	return domain.RiskAssessment{
		Factor: domain.RiskFactor{Severity: severity, Likelihood: likelihood},
		Score:  score,
		Level:  LevelForScore(score),
	}, nil
}

func (s *scorer) Matrix(size int) (domain.RiskMatrix, error) {
	if size <= 0 {
		return domain.RiskMatrix{}, fmt.Errorf("%w: matrix size must be positive, got %d", domain.ErrInvalidInput, size)
	}

	m := domain.RiskMatrix{Size: size, Cells: make([][]domain.RiskAssessment, size)}
	for sev := 1; sev <= size; sev++ {
		row := make([]domain.RiskAssessment, size)
		for lik := 1; lik <= size; lik++ {
			a, err := s.Score(sev, lik)
			if err != nil {
				return domain.RiskMatrix{}, err
			}
			row[lik-1] = a
		}
		m.Cells[sev-1] = row
	}
	return m, nil
}

// LevelForScore maps a severity x likelihood product onto its risk level.
func LevelForScore(score int) domain.RiskLevel {
	for _, t := range thresholds {
		if score >= t.minScore {
			return t.level
		}
	}
	return domain.RiskLevelLow
}
