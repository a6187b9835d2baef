package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/isg-atlas/pkg/runtime/app"
	"github.com/de-tools/isg-atlas/pkg/server"
	"github.com/de-tools/isg-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfgPath      string
	profilesPath string
	profile      string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the ISG analytics engine",
		RunE:  runServer,
	}

	home, _ := os.UserHomeDir()
	defaultProfiles := filepath.Join(home, ".isgcfg")

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a settings YAML file (defaults and ISG_* variables apply without it)")
	rootCmd.Flags().StringVar(&profilesPath, "profiles", defaultProfiles,
		"Path to the site profiles file (default is $HOME/.isgcfg)")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "",
		"Site profile whose database to serve")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	level, err := zerolog.ParseLevel(settings.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	dbPath := settings.Database.Path
	if profile != "" {
		registry, err := config.NewRegistry(profilesPath)
		if err != nil {
			return fmt.Errorf("failed to create config registry: %w", err)
		}
		profiles, _ := registry.GetProfiles(ctx)
		logger.Info().Msgf("Found the following profiles: %v", profiles)

		site, err := registry.GetProfile(ctx, profile)
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		logger.Info().Msgf("Serving site profile `%s`", site)
		dbPath = site.Database
	}

	a, err := app.Open(ctx, app.Settings{
		DbPath:           dbPath,
		BatchConcurrency: settings.Engine.BatchConcurrency,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	api := server.NewWebAPI(server.Config{
		Addr:            settings.Server.Addr(),
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Scorer:    a.Scorer,
			Engine:    a.Engine,
			Analytics: a.Analytics,
			Logger:    logger,
		},
	})

	return api.Start()
}
