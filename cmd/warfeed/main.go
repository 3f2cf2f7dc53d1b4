package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/warfeed/internal/config"
	"github.com/ajitpratap0/warfeed/pkg/client"
	"github.com/ajitpratap0/warfeed/pkg/models"
	"github.com/ajitpratap0/warfeed/pkg/refdata"
)

var (
	cfg   *config.Config
	names *refdata.Store

	// Global overrides; zero values defer to the config.
	flagWarID int64
	flagLang  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "warfeed",
		Short: "warfeed: read-only war-status client with named planets, factions and sectors",
		Long: "warfeed fetches live war state from the war-status API, resolves planet, faction " +
			"and sector ids against bundled reference tables, and prints, serves or summarizes the result.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			names, err = loadNames()
			if err != nil {
				return fmt.Errorf("loading reference data: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Int64Var(&flagWarID, "war", 0, "war id (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLang, "lang", "", "response language, name or tag (default from config)")

	rootCmd.AddCommand(
		statusCmd(),
		planetsCmd(),
		factionsCmd(),
		sectorsCmd(),
		infoCmd(),
		timeCmd(),
		newsCmd(),
		lookupCmd(),
		briefCmd(),
		serveCmd(),
		mcpCmd(),
		healthCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newClient(logger *slog.Logger) *client.Client {
	return client.NewWithURL(
		cfg.API.BaseURL,
		&http.Client{Timeout: cfg.API.Timeout},
		names,
		logger,
	)
}

// loadNames returns the bundled reference tables, overlaid with the tables
// in refdata.dir when one is configured.
func loadNames() (*refdata.Store, error) {
	if cfg.RefData.Dir == "" {
		return refdata.Bundled(), nil
	}
	return refdata.LoadDir(cfg.RefData.Dir)
}

// resolveWarID returns the --war flag or the configured war.
func resolveWarID() (int64, error) {
	if flagWarID == 0 {
		return cfg.API.WarID, nil
	}
	if flagWarID < 0 {
		return 0, fmt.Errorf("--war must be a positive integer, got %d", flagWarID)
	}
	return flagWarID, nil
}

// language returns the --lang flag or the configured language.
func language() (models.Language, error) {
	if flagLang == "" {
		return cfg.Language()
	}
	lang, err := models.ParseLanguage(flagLang)
	if err != nil {
		return 0, fmt.Errorf("--lang: %w", err)
	}
	return lang, nil
}

// target resolves both global overrides.
func target() (int64, models.Language, error) {
	id, err := resolveWarID()
	if err != nil {
		return 0, 0, err
	}
	lang, err := language()
	if err != nil {
		return 0, 0, err
	}
	return id, lang, nil
}
