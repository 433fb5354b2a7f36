package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/scorekeep/scorekeep/internal/console"
	"github.com/scorekeep/scorekeep/internal/factory"
	redisstorage "github.com/scorekeep/scorekeep/internal/storage/redis"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "scorekeep",
		Short: "Interactive game scoreboard tracker",
		Long: `scorekeep tracks a scoreboard for a group of players.

Players are registered by name, then each recorded game result gives
the winner a point and costs every other player one. The scoreboard
lives in memory by default, or in Redis with --storage redis.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			session := console.New(app.Registry, app.Standings, os.Stdin, os.Stdout, newLogger())
			return session.Run(cmd.Context())
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: memory, redis (env: SCOREKEEP_STORAGE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL (env: SCOREKEEP_REDIS_URL)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log diagnostics to stderr")

	// Add subcommands
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newApp wires the application from the CLI configuration
func newApp() (*factory.App, error) {
	factoryCfg := factory.Config{
		Logger:      newLogger(),
		StorageType: cfg.Storage,
	}

	if cfg.Storage == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	return factory.New(factoryCfg)
}

// newLogger builds the CLI logger. Logs go to stderr so they never
// interleave with the interactive prompts on stdout.
func newLogger() *slog.Logger {
	if !cfg.Verbose {
		return slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
