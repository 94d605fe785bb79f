package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/sitebench"
	"github.com/jpalmerr/sitebench/config"
	"github.com/spf13/cobra"
)

// newLogger creates a JSON logger for CLI use. Logs go to stderr so stdout
// carries only the benchmark output.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func init() {
	rootCmd.Flags().StringP("config", "c", "", "path to config file (optional)")
	rootCmd.Flags().BoolP("verbose", "v", false, "log every fetch at debug level")
}

// loadConfig returns the built-in defaults when no path is given.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func runBench(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := newLogger(verbose)

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := loadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"sites", len(cfg.Sites),
		"repeat", cfg.Repeat,
		"workers", cfg.Workers,
		"timeout", cfg.Timeout.Duration().String(),
	)

	opts := append(config.BuildOptions(cfg),
		sitebench.WithLogger(logger),
		sitebench.WithOutput(cmd.OutOrStdout()),
	)

	b, err := sitebench.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create bench: %w", err)
	}

	// cancel in-flight requests on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := b.Run(ctx); err != nil {
		return err
	}
	return nil
}
