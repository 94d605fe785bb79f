package sitebench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/jpalmerr/sitebench/internal/fetcher"
	"github.com/jpalmerr/sitebench/internal/store"
)

// Bench compares fetching a URL list sequentially against fetching it
// through a fixed-size worker pool.
//
// A Bench is created with [New] and executed with [Bench.Run]:
//
//	b, err := sitebench.New(sitebench.WithWorkers(5))
//	if err != nil {
//	    slog.Error("failed to create bench", "error", err)
//	    os.Exit(1)
//	}
//
//	report, err := b.Run(ctx)
//
// A Bench holds only configuration and may be run more than once.
type Bench struct {
	sites     []string
	urls      []string
	workers   int
	opts      fetcher.Options
	logger    *slog.Logger
	console   *console
	clock     clockwork.Clock
	transport func() http.RoundTripper
	callbacks []func(FetchResult)
}

// New creates a [Bench] with the given options.
//
// Defaults:
//   - Sites: [DefaultSites]
//   - Repeat: 20
//   - Workers: 5
//   - Timeout: none
//   - Output: os.Stdout
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*Bench, error) {
	cfg := &benchConfig{
		repeat:  DefaultRepeat,
		workers: fetcher.DefaultWorkers,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.sites) == 0 {
		cfg.sites = DefaultSites()
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	out := cfg.out
	if out == nil {
		out = os.Stdout
	}
	clock := cfg.clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Bench{
		sites:   cfg.sites,
		urls:    Repeat(cfg.sites, cfg.repeat),
		workers: cfg.workers,
		opts: fetcher.Options{
			Timeout:        cfg.timeout,
			RequireSuccess: cfg.requireSuccess,
		},
		logger:    logger,
		console:   &console{w: out},
		clock:     clock,
		transport: cfg.transport,
		callbacks: cfg.callbacks,
	}, nil
}

// URLs returns a copy of the full request list.
func (b *Bench) URLs() []string {
	return append([]string(nil), b.urls...)
}

// Workers returns the pool size used in the pooled phase.
func (b *Bench) Workers() int {
	return b.workers
}

// Run fetches the request list sequentially, then through the pool, and
// prints each fetch followed by the two durations and the improvement.
//
// If the sequential phase fails, Run stops there and returns the partial
// report with the error. If the pooled phase records failures, Run still
// prints the summary and returns the full report together with the joined
// failures.
func (b *Bench) Run(ctx context.Context) (Report, error) {
	runID := uuid.NewString()
	logger := b.logger.With("run_id", runID)

	report := Report{RunID: runID, Workers: b.workers}

	logger.Info("benchmark starting",
		"requests", len(b.urls),
		"sites", len(b.sites),
		"workers", b.workers,
	)

	seq, err := b.runSequential(ctx, logger)
	report.Sequential = seq
	if err != nil {
		logger.Error("sequential phase aborted",
			"after", seq.Duration.String(),
			"error", err.Error(),
		)
		return report, fmt.Errorf("sequential phase: %w", err)
	}

	pooled, poolErr := b.runPooled(ctx, logger)
	report.Pooled = pooled

	report.Improvement, report.ImprovementDefined = Improvement(seq.Duration, pooled.Duration)
	if !report.ImprovementDefined {
		logger.Warn("sequential phase took no time, improvement undefined")
	}

	b.console.summary(report)

	logger.Info("benchmark finished",
		"sequential_ms", seq.Duration.Milliseconds(),
		"pooled_ms", pooled.Duration.Milliseconds(),
		"improvement_pct", report.Improvement,
		"sequential_bytes", seq.Bytes,
		"pooled_bytes", pooled.Bytes,
		"pooled_failures", pooled.Failures,
	)

	if poolErr != nil {
		return report, fmt.Errorf("pooled phase: %d of %d fetches failed: %w",
			pooled.Failures, pooled.Requests, poolErr)
	}
	return report, nil
}

// runSequential times the sequential phase over one client.
func (b *Bench) runSequential(ctx context.Context, logger *slog.Logger) (PhaseReport, error) {
	tally := store.NewMemoryStore()
	observe := b.observer(PhaseSequential, tally, logger)

	client := b.newClient()
	defer client.Close()

	b.console.phaseStarted(PhaseSequential, 1)
	start := b.clock.Now()
	err := fetcher.Sequential(ctx, client, b.urls, b.opts, observe)
	elapsed := b.clock.Since(start)

	if err != nil {
		// the failing fetch is returned rather than reported, so tally it here
		var fe *fetcher.FetchError
		if errors.As(err, &fe) {
			observe(fetcher.Result{URL: fe.URL, Index: fe.Index, Error: fe})
		}
		return phaseReport(PhaseSequential, elapsed, tally), err
	}

	b.console.phaseFinished(PhaseSequential)
	return phaseReport(PhaseSequential, elapsed, tally), nil
}

// runPooled times the pooled phase.
func (b *Bench) runPooled(ctx context.Context, logger *slog.Logger) (PhaseReport, error) {
	tally := store.NewMemoryStore()
	pool := fetcher.NewPool(b.workers, b.newClient, b.opts, logger)

	b.console.phaseStarted(PhasePooled, b.workers)
	start := b.clock.Now()
	err := pool.Run(ctx, b.urls, b.observer(PhasePooled, tally, logger))
	elapsed := b.clock.Since(start)
	b.console.phaseFinished(PhasePooled)

	return phaseReport(PhasePooled, elapsed, tally), err
}

// newClient builds a client for the sequential phase or one pool worker.
func (b *Bench) newClient() *fetcher.Client {
	if b.transport != nil {
		return fetcher.NewClientWithTransport(b.transport())
	}
	return fetcher.NewClient()
}

// observer returns the per-fetch hook for a phase: it tallies the fetch,
// prints the fetch line on success and runs the registered callbacks.
// It may be called from several workers at once.
func (b *Bench) observer(phase Phase, tally store.Store, logger *slog.Logger) func(fetcher.Result) {
	return func(r fetcher.Result) {
		tally.Record(store.Record{
			URL:     r.URL,
			Bytes:   r.Bytes,
			Latency: r.Latency,
			Failed:  r.Error != nil,
		})

		if r.Error == nil {
			b.console.fetched(r.URL, r.Bytes)
			logger.Debug("fetch completed",
				"phase", phase.String(),
				"url", r.URL,
				"worker", r.Worker,
				"status_code", r.StatusCode,
				"bytes", r.Bytes,
				"latency_ms", r.Latency.Milliseconds(),
			)
		}

		if len(b.callbacks) == 0 {
			return
		}
		result := FetchResult{
			Phase:      phase,
			URL:        r.URL,
			Index:      r.Index,
			Worker:     r.Worker,
			Bytes:      r.Bytes,
			StatusCode: r.StatusCode,
			Latency:    r.Latency,
			Error:      r.Error,
		}
		for _, cb := range b.callbacks {
			invokeCallbackSafe(cb, result, logger)
		}
	}
}

// phaseReport converts a phase tally into a [PhaseReport].
func phaseReport(phase Phase, elapsed time.Duration, tally store.Store) PhaseReport {
	sum := tally.Summary()
	stats := tally.GetAll()

	byURL := make(map[string]int64, len(stats))
	latency := make(map[string]time.Duration, len(stats))
	for _, s := range stats {
		if s.Requests > s.Failures {
			byURL[s.URL] = s.LastBytes
		}
		if s.Requests > 0 {
			latency[s.URL] = s.TotalLatency / time.Duration(s.Requests)
		}
	}

	return PhaseReport{
		Phase:            phase,
		Duration:         elapsed,
		Requests:         sum.Requests,
		Failures:         sum.Failures,
		Bytes:            sum.Bytes,
		BytesByURL:       byURL,
		MeanLatencyByURL: latency,
	}
}

// invokeCallbackSafe calls a result callback with panic recovery.
// Panics are logged but do not propagate.
func invokeCallbackSafe(cb func(FetchResult), result FetchResult, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("result callback panicked",
				"panic", r,
				"url", result.URL,
				"phase", result.Phase.String(),
			)
		}
	}()
	cb(result)
}
