package commands

import (
	"context"
	"time"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/de-tools/isg-atlas/pkg/services/analytics"
	"github.com/de-tools/isg-atlas/pkg/services/indicator"
	"github.com/spf13/cobra"
)

const commandTimeout = 60 * time.Second

type Reporter interface {
	Handle(report *domain.Report) error
}

type Services struct {
	Engine    indicator.Engine
	Analytics analytics.Service
}

// Opener connects to the indicator database; the returned func releases it.
type Opener func(ctx context.Context) (*Services, func() error, error)

func withServices(cmd *cobra.Command, open Opener, fn func(ctx context.Context, s *Services) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()

	s, closeFn, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	return fn(ctx, s)
}
