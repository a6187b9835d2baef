package adapters

import (
	"github.com/de-tools/isg-atlas/pkg/models/api"
	"github.com/de-tools/isg-atlas/pkg/models/domain"
)

func MapRiskAssessmentDomainToApi(a domain.RiskAssessment) api.RiskScore {
	return api.RiskScore{
		Severity:   a.Factor.Severity,
		Likelihood: a.Factor.Likelihood,
		Score:      a.Score,
		Level:      a.Level.String(),
	}
}

func MapRiskMatrixDomainToApi(m domain.RiskMatrix) api.RiskMatrix {
	res := api.RiskMatrix{
		Size: m.Size,
		Rows: make([][]api.RiskScore, 0, len(m.Cells)),
	}
	for _, row := range m.Cells {
		apiRow := make([]api.RiskScore, 0, len(row))
		for _, cell := range row {
			apiRow = append(apiRow, MapRiskAssessmentDomainToApi(cell))
		}
		res.Rows = append(res.Rows, apiRow)
	}
	return res
}
