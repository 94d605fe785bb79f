// Package main is the entry point for the sitebench CLI.
//
// sitebench can be run either as a library (SDK) or as a standalone binary
// with optional YAML configuration. This CLI provides the standalone binary
// approach.
//
// Usage:
//
//	sitebench                           # Benchmark the built-in site list
//	sitebench -c sitebench.yaml         # Benchmark the configured sites
//	sitebench validate -c sitebench.yaml # Validate configuration
//	sitebench version                   # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd runs the benchmark when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "sitebench",
	Short: "Compare sequential and pooled HTTP fetching",
	Long: `sitebench fetches a list of URLs twice and reports the difference.

The first pass fetches every URL one at a time over a single HTTP client.
The second pass queues every URL and lets a fixed pool of workers fetch
them, each worker reusing its own client. Each successful fetch prints
"<URL>: <bytes>", followed by both elapsed times and the improvement.

With no config file the built-in list of three sites is repeated 20 times
and fetched with 5 workers.

Example config:
  sites:
    - https://www.python.org
    - https://docs.python.org
    - https://pypi.org
  repeat: 20
  workers: 5
  timeout: 10s`,
	Args:         cobra.NoArgs,
	RunE:         runBench,
	SilenceUsage: true,
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this sitebench binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sitebench %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
