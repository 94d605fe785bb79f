// Package config provides YAML configuration parsing for sitebench.
//
// The command-line tool runs with built-in defaults when no file is given.
// A file overrides any subset of them:
//
//	sites:
//	  - https://www.python.org
//	  - https://docs.python.org
//	  - https://pypi.org
//	repeat: 20
//	workers: 5
//	timeout: 0s
//	require_success: false
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"github.com/jpalmerr/sitebench"
	"gopkg.in/yaml.v3"
)

const (
	defaultWorkers = 5
	maxRepeat      = 10000
	maxWorkers     = 1000
)

// Config is the root configuration structure for sitebench.
//
// It maps directly to the YAML configuration file structure.
// Use [Default], [Load] or [Parse] to create a Config.
type Config struct {
	// Sites are the distinct URLs to fetch.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	Sites []string `yaml:"sites"`

	// Repeat is how many times the site list is repeated. Defaults to 20.
	Repeat int `yaml:"repeat"`

	// Workers is the pool size for the pooled phase. Defaults to 5.
	Workers int `yaml:"workers"`

	// Timeout bounds each request. Zero means no per-request timeout.
	Timeout Duration `yaml:"timeout"`

	// RequireSuccess makes non-2xx responses count as failures.
	RequireSuccess bool `yaml:"require_success"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file is given: the
// built-in sites repeated 20 times, 5 workers, no timeout.
func Default() *Config {
	return &Config{
		Sites:   sitebench.DefaultSites(),
		Repeat:  sitebench.DefaultRepeat,
		Workers: defaultWorkers,
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// Returns an error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Fields left out keep their [Default] values. Environment variables are
// expanded in site URLs.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	// nil until decoded so a missing sites key can be told apart from an empty list
	cfg.Sites = nil

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if cfg.Sites == nil {
		cfg.Sites = sitebench.DefaultSites()
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if len(c.Sites) == 0 {
		return errors.New("at least one site must be defined")
	}

	for i, site := range c.Sites {
		if site == "" {
			return fmt.Errorf("sites[%d]: url is required", i)
		}
		expanded, err := expandEnvVars(site)
		if err != nil {
			return fmt.Errorf("sites[%d]: %w", i, err)
		}
		c.Sites[i] = expanded

		parsedURL, err := url.Parse(expanded)
		if err != nil {
			return fmt.Errorf("sites[%d]: invalid url: %w", i, err)
		}
		if parsedURL.Scheme == "" {
			return fmt.Errorf("sites[%d] (%s): url must have a scheme (http:// or https://)", i, expanded)
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return fmt.Errorf("sites[%d] (%s): url scheme must be http or https, got %q", i, expanded, parsedURL.Scheme)
		}
		if parsedURL.Host == "" {
			return fmt.Errorf("sites[%d] (%s): url must have a host", i, expanded)
		}
	}

	if c.Repeat < 1 || c.Repeat > maxRepeat {
		return fmt.Errorf("repeat must be between 1 and %d, got %d", maxRepeat, c.Repeat)
	}

	if c.Workers < 1 || c.Workers > maxWorkers {
		return fmt.Errorf("workers must be between 1 and %d, got %d", maxWorkers, c.Workers)
	}

	if c.Timeout.Duration() < 0 {
		return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout.Duration())
	}

	return nil
}

// Requests returns the total number of requests per phase.
func (c *Config) Requests() int {
	return len(c.Sites) * c.Repeat
}
