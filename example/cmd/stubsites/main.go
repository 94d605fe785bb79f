// Standalone stub site server for running the CLI offline.
//
// Usage:
//
//	go run ./example/cmd/stubsites
//	go run ./example/cmd/stubsites --addr :8081 --delay 250ms
//
// Then in another terminal:
//
//	go run ./cmd/sitebench -c example/sitebench.yaml
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jpalmerr/sitebench/example/stubsite"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stubsites",
	Short: "Serve fixed-size pages with simulated latency",
	Long: `stubsites answers every path with a page whose size depends only on
the path, after waiting --delay. Point sitebench at it to benchmark without
network access.`,
	Args:         cobra.NoArgs,
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().String("addr", ":9999", "listen address")
	rootCmd.Flags().Duration("delay", 100*time.Millisecond, "simulated latency per request")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay < 0 {
		return fmt.Errorf("delay cannot be negative, got %s", delay)
	}

	fmt.Printf("Stub sites starting on %s\n", addr)
	fmt.Printf("Every path serves a fixed page after %s\n", delay)
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	if err := http.ListenAndServe(addr, stubsite.Handler(delay, slog.Default())); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
