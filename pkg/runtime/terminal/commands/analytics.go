package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/isg-atlas/pkg/adapters"
	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

type queryFlags struct {
	name        string
	category    string
	startYear   int
	startMonth  int
	endYear     int
	endMonth    int
	granularity string
}

func (f *queryFlags) register(cmd *cobra.Command, withMonths bool) {
	cmd.Flags().StringVar(&f.name, "name", "", "Indicator name")
	cmd.Flags().StringVar(&f.category, "category", "", "Indicator category")
	cmd.Flags().IntVar(&f.startYear, "start-year", 0, "First year of the range")
	cmd.Flags().IntVar(&f.endYear, "end-year", 0, "Last year of the range")
	cmd.Flags().StringVar(&f.granularity, "granularity", string(domain.GranularityMonthly), "monthly, quarterly or yearly")
	if withMonths {
		cmd.Flags().IntVar(&f.startMonth, "start-month", 1, "First month of the range")
		cmd.Flags().IntVar(&f.endMonth, "end-month", 12, "Last month of the range")
	}

	_ = cmd.MarkFlagRequired("start-year")
	_ = cmd.MarkFlagRequired("end-year")
}

func (f *queryFlags) query() (domain.IndicatorQuery, error) {
	if f.name == "" && f.category == "" {
		return domain.IndicatorQuery{}, fmt.Errorf("%w: either --name or --category is required", domain.ErrInvalidInput)
	}
	startMonth, endMonth := f.startMonth, f.endMonth
	if startMonth == 0 && endMonth == 0 {
		startMonth, endMonth = 1, 12
	}
	rng, err := domain.NewMonthRange(f.startYear, startMonth, f.endYear, endMonth)
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	granularity, err := domain.ParseGranularity(f.granularity)
	if err != nil {
		return domain.IndicatorQuery{}, err
	}
	return domain.IndicatorQuery{Name: f.name, Category: f.category, Range: rng, Granularity: granularity}, nil
}

func newCompareCmd(open Opener, reporter Reporter) *cobra.Command {
	flags := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Average targets and actuals per period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := flags.query()
			if err != nil {
				return err
			}
			return withServices(cmd, open, func(ctx context.Context, s *Services) error {
				buckets, err := s.Analytics.CompareIndicators(ctx, q)
				if err != nil {
					return fmt.Errorf("failed to compare indicators: %w", err)
				}
				return reporter.Handle(adapters.MapComparisonToReport(q, buckets))
			})
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newTrendCmd(open Opener, reporter Reporter) *cobra.Command {
	flags := &queryFlags{}
	cmd := &cobra.Command{
		Use:   "trend",
		Short: "Trend of the average actual across periods",
		RunE: func(cmd *cobra.Command, _ []string) error {
			q, err := flags.query()
			if err != nil {
				return err
			}
			return withServices(cmd, open, func(ctx context.Context, s *Services) error {
				analysis, err := s.Analytics.AnalyzeIndicatorTrend(ctx, q)
				if err != nil {
					return fmt.Errorf("failed to analyze trend: %w", err)
				}
				return reporter.Handle(adapters.MapTrendAnalysisToReport(analysis))
			})
		},
	}
	flags.register(cmd, false)
	return cmd
}
