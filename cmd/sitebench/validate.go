package main

import (
	"fmt"

	"github.com/jpalmerr/sitebench/config"
	"github.com/spf13/cobra"
)

// validateCmd checks a config file and prints the run it describes.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a config file without fetching anything",
	Long: `Check a sitebench config file and print the run it describes.

Checks:
  sites    at least one; each an http or https URL with a host,
           after ${VAR} and ${VAR:-default} expansion
  repeat   1 to 10000
  workers  1 to 1000
  timeout  a Go duration, zero (no timeout) or positive

Omitted fields take the built-in defaults. No request is sent. A config
that passes here is accepted by "sitebench -c".

Example:
  sitebench validate -c sitebench.yaml`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.Duration().String()
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Sites:    %d\n", len(cfg.Sites))
	for _, site := range cfg.Sites {
		fmt.Printf("    - %s\n", site)
	}
	fmt.Printf("  Repeat:   %d\n", cfg.Repeat)
	fmt.Printf("  Requests: %d per phase\n", cfg.Requests())
	fmt.Printf("  Workers:  %d\n", cfg.Workers)
	fmt.Printf("  Timeout:  %s\n", timeout)

	return nil
}
