package sitebench

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
)

// maxWorkers caps the pool size.
const maxWorkers = 1000

// benchConfig holds mutable state during Bench construction.
type benchConfig struct {
	sites          []string
	repeat         int
	workers        int
	timeout        time.Duration
	requireSuccess bool
	logger         *slog.Logger
	out            io.Writer
	clock          clockwork.Clock
	transport      func() http.RoundTripper
	callbacks      []func(FetchResult)
}

// Option is a function that configures a [Bench] during construction.
//
// Options return an error if validation fails.
type Option func(*benchConfig) error

// WithSites sets the distinct URLs to fetch, replacing [DefaultSites].
//
// Each URL must be absolute with an http or https scheme. The list is
// repeated according to [WithRepeat] to form the request list.
//
// Example:
//
//	b, err := sitebench.New(
//	    sitebench.WithSites("https://example.com", "https://example.org"),
//	)
func WithSites(sites ...string) Option {
	return func(cfg *benchConfig) error {
		if len(sites) == 0 {
			return errors.New("at least one site is required")
		}
		for _, s := range sites {
			if err := validateSite(s); err != nil {
				return err
			}
		}
		cfg.sites = append([]string(nil), sites...)
		return nil
	}
}

// WithRepeat sets how many times the site list is repeated.
//
// Defaults to 20. Returns an error if n is not positive.
func WithRepeat(n int) Option {
	return func(cfg *benchConfig) error {
		if n <= 0 {
			return errors.New("repeat must be positive")
		}
		cfg.repeat = n
		return nil
	}
}

// WithWorkers sets the number of pool workers in the pooled phase.
//
// Each worker owns one HTTP client. Defaults to 5.
// Returns an error if n is not between 1 and 1000.
func WithWorkers(n int) Option {
	return func(cfg *benchConfig) error {
		if n <= 0 || n > maxWorkers {
			return errors.New("workers must be between 1 and 1000")
		}
		cfg.workers = n
		return nil
	}
}

// WithTimeout bounds each request. Zero, the default, means requests are
// bounded only by the context passed to [Bench.Run].
//
// Returns an error if d is negative.
func WithTimeout(d time.Duration) Option {
	return func(cfg *benchConfig) error {
		if d < 0 {
			return errors.New("timeout cannot be negative")
		}
		cfg.timeout = d
		return nil
	}
}

// WithRequireSuccess makes non-2xx responses count as failures.
//
// By default any response counts as a successful fetch.
func WithRequireSuccess(require bool) Option {
	return func(cfg *benchConfig) error {
		cfg.requireSuccess = require
		return nil
	}
}

// WithLogger sets a custom [slog.Logger].
//
// If not specified, [slog.Default] is used.
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *benchConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithOutput sets where the console report is written. Defaults to os.Stdout.
//
// Returns an error if w is nil.
func WithOutput(w io.Writer) Option {
	return func(cfg *benchConfig) error {
		if w == nil {
			return errors.New("output writer cannot be nil")
		}
		cfg.out = w
		return nil
	}
}

// WithClock sets the clock used to time the phases.
//
// Returns an error if the clock is nil.
func WithClock(clock clockwork.Clock) Option {
	return func(cfg *benchConfig) error {
		if clock == nil {
			return errors.New("clock cannot be nil")
		}
		cfg.clock = clock
		return nil
	}
}

// WithTransport sets a factory for the round tripper behind each client.
//
// The factory is called once per client: once for the sequential phase and
// once per active pool worker, so clients never share a transport as long
// as the factory returns a new value on each call.
func WithTransport(factory func() http.RoundTripper) Option {
	return func(cfg *benchConfig) error {
		if factory == nil {
			return errors.New("transport factory cannot be nil")
		}
		cfg.transport = factory
		return nil
	}
}

// WithResultCallback registers a function called for every fetch in both
// phases, failures included.
//
// In the pooled phase callbacks run on the worker goroutines and so must be
// safe for concurrent use. Panics are recovered and logged.
//
// Example:
//
//	b, err := sitebench.New(
//	    sitebench.WithResultCallback(func(r sitebench.FetchResult) {
//	        if r.Error != nil {
//	            log.Printf("%s failed: %v", r.URL, r.Error)
//	        }
//	    }),
//	)
//
// Nil callbacks are silently ignored.
func WithResultCallback(cb func(FetchResult)) Option {
	return func(cfg *benchConfig) error {
		if cb == nil {
			return nil
		}
		cfg.callbacks = append(cfg.callbacks, cb)
		return nil
	}
}
