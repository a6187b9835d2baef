package domain

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

// Rank orders levels LOW < MEDIUM < HIGH < CRITICAL. Unknown levels rank below LOW.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLevelLow:
		return 1
	case RiskLevelMedium:
		return 2
	case RiskLevelHigh:
		return 3
	case RiskLevelCritical:
		return 4
	default:
		return 0
	}
}

func (l RiskLevel) String() string {
	return string(l)
}

type RiskFactor struct {
	Severity   int
	Likelihood int
}

type RiskAssessment struct {
	Factor RiskFactor
	Score  int
	Level  RiskLevel
}

// RiskMatrix is the severity x likelihood grid; Cells[s-1][l-1] holds the assessment for (s, l).
type RiskMatrix struct {
	Size  int
	Cells [][]RiskAssessment
}
