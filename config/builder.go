package config

import (
	"github.com/jpalmerr/sitebench"
)

// BuildOptions converts a parsed configuration into SDK options.
//
// Logging, output and clock options are left to the caller.
func BuildOptions(cfg *Config) []sitebench.Option {
	opts := []sitebench.Option{
		sitebench.WithSites(cfg.Sites...),
		sitebench.WithRepeat(cfg.Repeat),
		sitebench.WithWorkers(cfg.Workers),
		sitebench.WithRequireSuccess(cfg.RequireSuccess),
	}

	if cfg.Timeout != 0 {
		opts = append(opts, sitebench.WithTimeout(cfg.Timeout.Duration()))
	}

	return opts
}
