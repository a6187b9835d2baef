package adapters

import (
	"fmt"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
)

func MapTrendAnalysisToReport(a domain.TrendAnalysis) *domain.Report {
	subject := a.Query.Name
	if subject == "" {
		subject = a.Query.Category
	} else if a.Query.Category != "" {
		subject = fmt.Sprintf("%s (%s)", a.Query.Name, a.Query.Category)
	}

	report := &domain.Report{
		Title: fmt.Sprintf("Indicator trend: %s", subject),
		Period: domain.TimePeriod{
			Start:  a.Query.Range.Start,
			End:    a.Query.Range.End,
			Months: a.Query.Range.Months(),
		},
	}

	summary := domain.ReportSection{
		Title: "Trend summary",
		Summary: map[string]interface{}{
			"overall_trend": string(a.Trend.OverallTrend),
			"granularity":   string(a.Query.Granularity),
		},
		Details: []domain.ReportDetail{
			{Name: "Percentage change", Value: fmt.Sprintf("%.2f", a.Trend.PercentageChange), Unit: "%", Description: "First to last period"},
			{Name: "Average change", Value: fmt.Sprintf("%.2f", a.Trend.AverageChange), Description: "Mean period-to-period delta"},
			{Name: "Minimum", Value: fmt.Sprintf("%.2f", a.Trend.MinValue), Description: "Lowest average actual"},
			{Name: "Maximum", Value: fmt.Sprintf("%.2f", a.Trend.MaxValue), Description: "Highest average actual"},
		},
	}
	report.Sections = append(report.Sections, summary)
	report.Sections = append(report.Sections, MapPeriodBucketsToReportSection(a.Buckets))
	return report
}

func MapPeriodBucketsToReportSection(buckets []domain.PeriodBucket) domain.ReportSection {
	section := domain.ReportSection{
		Title:   "Periods",
		Summary: map[string]interface{}{"periods": len(buckets)},
		Details: make([]domain.ReportDetail, 0, len(buckets)),
	}
	for _, b := range buckets {
		desc := fmt.Sprintf("target %.2f, %d record(s)", b.AverageTarget, b.ItemCount)
		if b.MixedUnits {
			desc += ", mixed units"
		}
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        b.Period,
			Value:       fmt.Sprintf("%.2f", b.AverageActual),
			Unit:        b.Unit,
			Description: desc,
		})
	}
	return section
}

func MapComparisonToReport(q domain.IndicatorQuery, buckets []domain.PeriodBucket) *domain.Report {
	subject := q.Name
	if subject == "" {
		subject = q.Category
	}
	return &domain.Report{
		Title: fmt.Sprintf("Indicator comparison: %s", subject),
		Period: domain.TimePeriod{
			Start:  q.Range.Start,
			End:    q.Range.End,
			Months: q.Range.Months(),
		},
		Sections: []domain.ReportSection{MapPeriodBucketsToReportSection(buckets)},
	}
}

func MapRiskAssessmentToReport(a domain.RiskAssessment) *domain.Report {
	return &domain.Report{
		Title: "Risk assessment",
		Sections: []domain.ReportSection{{
			Title: fmt.Sprintf("Severity %d x likelihood %d", a.Factor.Severity, a.Factor.Likelihood),
			Details: []domain.ReportDetail{
				{Name: "Score", Value: a.Score, Description: "severity x likelihood"},
				{Name: "Level", Value: a.Level.String()},
			},
		}},
	}
}

func MapRiskMatrixToReport(m domain.RiskMatrix) *domain.Report {
	report := &domain.Report{Title: fmt.Sprintf("Risk matrix %dx%d", m.Size, m.Size)}
	for _, row := range m.Cells {
		if len(row) == 0 {
			continue
		}
		section := domain.ReportSection{
			Title:   fmt.Sprintf("Severity %d", row[0].Factor.Severity),
			Details: make([]domain.ReportDetail, 0, len(row)),
		}
		for _, cell := range row {
			section.Details = append(section.Details, domain.ReportDetail{
				Name:        fmt.Sprintf("Likelihood %d", cell.Factor.Likelihood),
				Value:       cell.Level.String(),
				Description: fmt.Sprintf("score %d", cell.Score),
			})
		}
		report.Sections = append(report.Sections, section)
	}
	return report
}

func MapIndicatorsToReport(title string, items []domain.Indicator) *domain.Report {
	section := domain.ReportSection{
		Title:   "Indicators",
		Summary: map[string]interface{}{"count": len(items)},
		Details: make([]domain.ReportDetail, 0, len(items)),
	}
	for _, i := range items {
		section.Details = append(section.Details, domain.ReportDetail{
			Name:        fmt.Sprintf("%s / %s %s", i.Category, i.Name, i.Period()),
			Value:       fmt.Sprintf("%.2f of %.2f", i.Actual, i.Target),
			Unit:        i.Unit,
			Description: fmt.Sprintf("%s (id %s)", i.Status, i.ID),
		})
	}
	return &domain.Report{Title: title, Sections: []domain.ReportSection{section}}
}

func MapBatchResultToReport(r domain.BatchResult) *domain.Report {
	report := MapIndicatorsToReport("Batch update", r.Results)
	report.Sections[0].Title = "Updated"

	failed := domain.ReportSection{
		Title:   "Failed",
		Summary: map[string]interface{}{"count": len(r.Errors)},
		Details: make([]domain.ReportDetail, 0, len(r.Errors)),
	}
	for _, f := range r.Errors {
		failed.Details = append(failed.Details, domain.ReportDetail{
			Name:        f.ID,
			Value:       ErrorReason(f.Err),
			Description: f.Err.Error(),
		})
	}
	report.Sections = append(report.Sections, failed)
	return report
}
