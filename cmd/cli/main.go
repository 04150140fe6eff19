package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mfacchin/crewrota/cmd/cli/commands"
	"github.com/mfacchin/crewrota/internal/config"
	"github.com/mfacchin/crewrota/pkg/postgres"
	"github.com/mfacchin/crewrota/pkg/utils/logging"
)

var (
	env        string
	configPath string
	app        *commands.AppContext
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crewrota",
		Short: "Crewrota CLI - Manage the shared workforce schedule",
		Long:  `A CLI tool for managing worker status timelines, assignment validation, and the shared schedule aggregate.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil {
				if app.Logger != nil {
					app.Logger.Sync()
				}
				if app.Database != nil {
					app.Database.Close()
				}
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment name used for log file prefixes")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: crewrota.yaml)")

	rootCmd.AddCommand(commands.StatusCmd(appRef()))
	rootCmd.AddCommand(commands.SetStatusCmd(appRef()))
	rootCmd.AddCommand(commands.RemoveStatusCmd(appRef()))
	rootCmd.AddCommand(commands.ValidateCmd(appRef()))
	rootCmd.AddCommand(commands.ReconcileCmd(appRef()))
	rootCmd.AddCommand(commands.WatchCmd(appRef()))
	rootCmd.AddCommand(commands.ListWorkersCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, allocating it so commands can capture
// the pointer before initApp fills it in.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, and database
func initApp() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	_ = cancel // released on process exit

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting application", zap.String("environment", env))

	var cfg *config.Config
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	database, err := postgres.NewDB(ctx, cfg.DatabaseURL, cfg.Key())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx); err != nil {
		database.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	ref := appRef()
	ref.Cfg = cfg
	ref.Database = database
	ref.Logger = logger
	ref.Ctx = ctx

	return nil
}
