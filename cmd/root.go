package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/cadence/internal/app"
	"github.com/abhisek/cadence/internal/awards"
	"github.com/abhisek/cadence/internal/config"
	"github.com/abhisek/cadence/internal/logging"
	"github.com/abhisek/cadence/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "cadence",
	Short: "Spaced-repetition study tracker",
	Long:  "Cadence times study sessions, keeps daily streaks and schedules reviews so items are recalled before they are forgotten.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CADENCE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/cadence/config.toml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(itemCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig layers the config file, CADENCE_* variables and flags, in that
// order, and validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	return cfg, cfg.Validate()
}

// resolveDBPath returns the configured database path, or the default XDG
// path when none is set.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openApp builds the logger, store and App for a command. The returned
// close func must be called when the command is done.
func openApp(cmd *cobra.Command) (*app.App, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug().Str("db", dbPath).Msg("store opened")

	a, err := app.New(cmd.Context(), app.Options{
		EventRepo:        st.EventRepo(),
		ItemRepo:         st.ItemRepo(),
		SnapshotRepo:     st.SnapshotRepo(),
		DailyGoalMinutes: cfg.DailyGoalMinutes,
		SnapshotKeep:     cfg.SnapshotKeep,
		Location:         loc,
		Logger:           logger,
		OnAward:          printAward,
	})
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	closeFn := func() {
		if err := st.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing store")
		}
	}
	return a, closeFn, nil
}

func printAward(aw awards.Award) {
	fmt.Printf("%s  %s: %s (%s)\n", aw.Kind.Icon(), aw.Kind.DisplayName(), aw.Reason, aw.Tier)
}
