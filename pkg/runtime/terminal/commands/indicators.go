package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/isg-atlas/pkg/adapters"
	"github.com/de-tools/isg-atlas/pkg/models/api"
	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewIndicatorsCmd(open Opener, reporter Reporter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "indicators",
		Short: "Indicator targets, actuals and analytics",
	}
	cmd.AddCommand(newTargetsCmd(open, reporter))
	cmd.AddCommand(newSetTargetCmd(open, reporter))
	cmd.AddCommand(newUpdateCmd(open, reporter))
	cmd.AddCommand(newImportCmd(open, reporter))
	cmd.AddCommand(newCompareCmd(open, reporter))
	cmd.AddCommand(newTrendCmd(open, reporter))
	return cmd
}

func newTargetsCmd(open Opener, reporter Reporter) *cobra.Command {
	var filter domain.TargetFilter
	var month int
	cmd := &cobra.Command{
		Use:   "targets",
		Short: "List indicator targets of a period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("month") {
				filter.Month = &month
			}
			return withServices(cmd, open, func(ctx context.Context, s *Services) error {
				items, err := s.Engine.ListTargets(ctx, filter)
				if err != nil {
					return fmt.Errorf("failed to list targets: %w", err)
				}
				title := fmt.Sprintf("Targets %d", filter.Year)
				if filter.Month != nil {
					title = fmt.Sprintf("Targets %d-%02d", filter.Year, *filter.Month)
				}
				return reporter.Handle(adapters.MapIndicatorsToReport(title, items))
			})
		},
	}

	cmd.Flags().IntVar(&filter.Year, "year", 0, "Year")
	cmd.Flags().IntVar(&month, "month", 0, "Month (1-12)")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Indicator category")
	cmd.Flags().StringVar(&filter.Name, "name", "", "Indicator name")

	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func newSetTargetCmd(open Opener, reporter Reporter) *cobra.Command {
	var def domain.TargetDefinition
	cmd := &cobra.Command{
		Use:   "set-target",
		Short: "Create or change the target of an indicator period",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withServices(cmd, open, func(ctx context.Context, s *Services) error {
				ind, err := s.Engine.SetTarget(ctx, def)
				if err != nil {
					return fmt.Errorf("failed to set target: %w", err)
				}
				return reporter.Handle(adapters.MapIndicatorsToReport("Target saved", []domain.Indicator{*ind}))
			})
		},
	}

	cmd.Flags().StringVar(&def.Name, "name", "", "Indicator name")
	cmd.Flags().StringVar(&def.Category, "category", "", "Indicator category")
	cmd.Flags().StringVar(&def.Unit, "unit", "", "Unit of measure")
	cmd.Flags().IntVar(&def.Year, "year", 0, "Year")
	cmd.Flags().IntVar(&def.Month, "month", 0, "Month (1-12)")
	cmd.Flags().Float64Var(&def.Target, "target", 0, "Target value")

	for _, f := range []string{"name", "category", "year", "month", "target"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newUpdateCmd(open Opener, reporter Reporter) *cobra.Command {
	var (
		id     string
		actual float64
		status string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Record the actual value of an indicator",
		RunE: func(cmd *cobra.Command, _ []string) error {
			upd := domain.IndicatorUpdate{ID: id, Actual: &actual}
			if status != "" {
				s, err := domain.ParseStatus(status)
				if err != nil {
					return err
				}
				upd.Status = &s
			}
			return withServices(cmd, open, func(ctx context.Context, s *Services) error {
				ind, err := s.Engine.ApplyUpdate(ctx, upd)
				if err != nil {
					return fmt.Errorf("failed to update indicator: %w", err)
				}
				return reporter.Handle(adapters.MapIndicatorsToReport("Indicator updated", []domain.Indicator{*ind}))
			})
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Indicator id")
	cmd.Flags().Float64Var(&actual, "actual", 0, "Observed value")
	cmd.Flags().StringVar(&status, "status", "", "Explicit status (off_track, at_risk, on_track, completed)")

	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("actual")

	return cmd
}

func newImportCmd(open Opener, reporter Reporter) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Apply a YAML or JSON file of actual updates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			updates, err := readUpdates(file)
			if err != nil {
				return err
			}
			return withServices(cmd, open, func(ctx context.Context, s *Services) error {
				res, err := s.Engine.ApplyBatchUpdate(ctx, updates)
				if err != nil {
					return fmt.Errorf("failed to apply updates: %w", err)
				}
				return reporter.Handle(adapters.MapBatchResultToReport(res))
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the updates file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// readUpdates decodes an `updates:` list. JSON input is accepted as YAML.
func readUpdates(path string) ([]domain.IndicatorUpdate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var req api.BatchUpdateRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if req.Updates == nil {
		return nil, fmt.Errorf("%w: %s has no 'updates' list", domain.ErrInvalidInput, path)
	}
	return adapters.MapBatchUpdateApiToDomain(req), nil
}
