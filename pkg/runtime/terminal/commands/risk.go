package commands

import (
	"fmt"

	"github.com/de-tools/isg-atlas/pkg/adapters"
	"github.com/de-tools/isg-atlas/pkg/metrics"
	"github.com/de-tools/isg-atlas/pkg/services/risk"
	"github.com/spf13/cobra"
)

func NewRiskCmd(scorer risk.Scorer, reporter Reporter) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Risk scoring",
	}
	cmd.AddCommand(newRiskScoreCmd(scorer, reporter))
	cmd.AddCommand(newRiskMatrixCmd(scorer, reporter))
	return cmd
}

type riskScoreCmd struct {
	severity   int
	likelihood int
	scorer     risk.Scorer
	reporter   Reporter
}

func newRiskScoreCmd(scorer risk.Scorer, reporter Reporter) *cobra.Command {
	rc := &riskScoreCmd{scorer: scorer, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Classify a severity x likelihood pair",
		RunE:  rc.run,
	}

	cmd.Flags().IntVar(&rc.severity, "severity", 0, "Severity on the 1-5 scale")
	cmd.Flags().IntVar(&rc.likelihood, "likelihood", 0, "Likelihood on the 1-5 scale")

	_ = cmd.MarkFlagRequired("severity")
	_ = cmd.MarkFlagRequired("likelihood")

	return cmd
}

func (rc *riskScoreCmd) run(_ *cobra.Command, _ []string) error {
	assessment, err := rc.scorer.Score(rc.severity, rc.likelihood)
	if err != nil {
		return fmt.Errorf("failed to score risk: %w", err)
	}
	metrics.RiskAssessments.WithLabelValues(assessment.Level.String()).Inc()
	return rc.reporter.Handle(adapters.MapRiskAssessmentToReport(assessment))
}

func newRiskMatrixCmd(scorer risk.Scorer, reporter Reporter) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the risk matrix",
		RunE: func(_ *cobra.Command, _ []string) error {
			m, err := scorer.Matrix(size)
			if err != nil {
				return fmt.Errorf("failed to build risk matrix: %w", err)
			}
			return reporter.Handle(adapters.MapRiskMatrixToReport(m))
		},
	}
	cmd.Flags().IntVar(&size, "size", risk.DefaultScale, "Matrix size")
	return cmd
}
