package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"github.com/de-tools/isg-atlas/pkg/runtime/app"
	"github.com/de-tools/isg-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/isg-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/isg-atlas/pkg/services/config"
	"github.com/de-tools/isg-atlas/pkg/services/risk"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	opts    Options
	flags   globalFlags
	plain   *Reporter
	table   *export.Reporter
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
	// Opener replaces the SQLite backend resolved from flags; used by tests.
	Opener commands.Opener
}

type globalFlags struct {
	configPath   string
	profilesPath string
	profile      string
	dbPath       string
	format       string
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		opts:  opts,
		plain: NewReporter(opts.Output),
		table: export.NewReporter(opts.Output),
	}

	cli.rootCmd = cli.newRootCmd()
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "isg",
		Short:         "Occupational health and safety KPI and risk analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cli.flags.format != "plain" && cli.flags.format != "table" {
				return fmt.Errorf("unknown output format %q", cli.flags.format)
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(zerolog.WarnLevel).
				With().Timestamp().Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
			return nil
		},
	}

	home, _ := os.UserHomeDir()
	cmd.PersistentFlags().StringVarP(&cli.flags.configPath, "config", "c", "", "Path to a settings YAML file")
	cmd.PersistentFlags().StringVar(&cli.flags.profilesPath, "profiles", filepath.Join(home, ".isgcfg"), "Path to the site profiles file")
	cmd.PersistentFlags().StringVarP(&cli.flags.profile, "profile", "p", "", "Site profile whose database to use")
	cmd.PersistentFlags().StringVar(&cli.flags.dbPath, "db", "", "Path to the SQLite database (overrides settings and profile)")
	cmd.PersistentFlags().StringVarP(&cli.flags.format, "format", "o", "plain", "Output format: plain or table")

	cmd.AddCommand(commands.NewRiskCmd(risk.NewScorer(), cli))
	cmd.AddCommand(commands.NewIndicatorsCmd(cli.open, cli))

	return cmd
}

// Handle renders the report with the reporter picked by --format.
func (cli *CLI) Handle(report *domain.Report) error {
	if cli.flags.format == "table" {
		return cli.table.Handle(report)
	}
	return cli.plain.Handle(report)
}

func (cli *CLI) open(ctx context.Context) (*commands.Services, func() error, error) {
	if cli.opts.Opener != nil {
		return cli.opts.Opener(ctx)
	}

	settings, err := config.LoadSettings(cli.flags.configPath)
	if err != nil {
		return nil, nil, err
	}

	dbPath, err := cli.resolveDatabase(ctx, settings)
	if err != nil {
		return nil, nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("database", dbPath).Msg("opening database")

	a, err := app.Open(ctx, app.Settings{DbPath: dbPath, BatchConcurrency: settings.Engine.BatchConcurrency})
	if err != nil {
		return nil, nil, err
	}
	return &commands.Services{Engine: a.Engine, Analytics: a.Analytics}, a.Close, nil
}

func (cli *CLI) resolveDatabase(ctx context.Context, settings *config.Settings) (string, error) {
	if cli.flags.dbPath != "" {
		return cli.flags.dbPath, nil
	}
	if cli.flags.profile == "" {
		return settings.Database.Path, nil
	}

	registry, err := config.NewRegistry(cli.flags.profilesPath)
	if err != nil {
		return "", fmt.Errorf("failed to load profiles: %w", err)
	}
	profile, err := registry.GetProfile(ctx, cli.flags.profile)
	if err != nil {
		return "", err
	}
	return profile.Database, nil
}
