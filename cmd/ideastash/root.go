package main

import (
	"log/slog"

	"ideastash/internal/config"
	"ideastash/internal/logging"
	"ideastash/internal/service"
	"ideastash/internal/storage"
	"ideastash/internal/version"

	"github.com/spf13/cobra"
)

var (
	// configFlag is the CLI --config flag value
	configFlag string
	// dataDirFlag overrides the configured data directory
	dataDirFlag string
	// logLevelFlag overrides the configured log level
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "ideastash",
	Short: "ideastash - clipboard idea stash",
	Long: `ideastash captures clipboard snippets and notes into a local SQLite store
and organizes them with categories, tags, colors, and star ratings. It ships a
CLI for capture and curation plus a local HTTP API for desktop front-ends.`,
	Version:       version.Info(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("ideastash version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (default: <dataDir>/config.json)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Data directory (default: ~/.ideastash)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
}

// app bundles the wired-up services behind a command.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	db     *storage.DB

	ideas *service.IdeaService
	cats  *service.CategoryService
	stats *service.StatsService

	closeLog func() error
}

// openApp loads configuration, opens the database, and builds the service
// layer. Callers must Close.
func openApp() (*app, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	if logLevelFlag != "" {
		cfg.Logging.Level = logLevelFlag
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(cfg.DatabasePath(), logger)
	if err != nil {
		closeLog()
		return nil, err
	}

	ideas := storage.NewIdeaRepository(db)
	cats := storage.NewCategoryRepository(db)
	tags := storage.NewTagRepository(db)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		ideas:    service.NewIdeaService(ideas, cats, tags, logger),
		cats:     service.NewCategoryService(cats, logger),
		stats:    service.NewStatsService(ideas),
		closeLog: closeLog,
	}, nil
}

// Close releases the database and log file.
func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", "error", err)
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}
