// Package sitebench measures how much a bounded worker pool speeds up
// fetching a list of URLs compared with fetching them one by one.
//
// A run has two phases over the same request list. The sequential phase
// issues one GET at a time, in order, over a single HTTP client and stops at
// the first failure. The pooled phase queues every URL and lets a fixed
// number of workers pull from the queue; each worker creates its own client
// on its first request and reuses it for the rest, so no client is ever
// shared. Every successful fetch prints "<URL>: <bytes>". The run ends with
// both durations and the improvement percentage.
//
// # Quick Start
//
//	b, _ := sitebench.New()
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	report, err := b.Run(ctx)
//
// With no options the built-in list of three sites is repeated 20 times and
// fetched with 5 workers.
//
// # Configuration
//
// sitebench uses the functional options pattern:
//
//	b, err := sitebench.New(
//	    sitebench.WithSites("https://example.com", "https://example.org"),
//	    sitebench.WithRepeat(10),
//	    sitebench.WithWorkers(8),
//	    sitebench.WithTimeout(5 * time.Second),
//	)
//
// # Failures
//
// A failure in the sequential phase aborts the run. Failures in the pooled
// phase do not stop the other workers; each is logged as it happens and
// [Bench.Run] returns them joined after printing the summary.
//
// # Architecture
//
//   - internal/fetcher: HTTP client, sequential fetch and the worker pool
//   - internal/store: concurrent per-phase tally of fetch results
//   - config: YAML configuration for the CLI
//   - cmd/sitebench: the command-line tool
package sitebench
