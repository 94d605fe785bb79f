package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 5

// ClientFactory creates the [Client] a worker will own.
type ClientFactory func() *Client

// job is one queued URL and its list position.
type job struct {
	index int
	url   string
}

// Pool fetches URLs with a fixed number of workers.
//
// Every URL is queued before any worker starts, and each worker pulls the
// next job when it finishes the previous one, so at most Workers requests
// are in flight. A worker calls the [ClientFactory] when it takes its first
// job and reuses that client for every later job; clients are never shared
// between workers. Workers that never get a job never create a client.
//
// A Pool holds no per-run state and may be reused, though not concurrently
// with itself if the factory is not safe for concurrent use.
type Pool struct {
	workers   int
	newClient ClientFactory
	opts      Options
	logger    *slog.Logger
}

// NewPool creates a [Pool].
//
// workers below 1 falls back to [DefaultWorkers]. A nil newClient uses
// [NewClient]; a nil logger uses slog.Default().
func NewPool(workers int, newClient ClientFactory, opts Options, logger *slog.Logger) *Pool {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if newClient == nil {
		newClient = NewClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		workers:   workers,
		newClient: newClient,
		opts:      opts,
		logger:    logger,
	}
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int {
	return p.workers
}

// Run fetches every URL and blocks until all of them are done.
//
// onResult is called once per URL, successes and failures alike, from the
// worker goroutine that handled it; it must be safe for concurrent use.
// Completion order is unspecified.
//
// A failing URL does not stop the others. Each failure is logged when it
// happens and all of them are returned joined, ordered by list position.
// If ctx is cancelled, queued URLs that have not started are reported as
// failures carrying the context error rather than being requested.
func (p *Pool) Run(ctx context.Context, urls []string, onResult func(Result)) error {
	jobs := make(chan job, len(urls))
	for i, url := range urls {
		jobs <- job{index: i, url: url}
	}
	close(jobs)

	var (
		mu       sync.Mutex
		failures []*FetchError
	)
	record := func(result Result) {
		if result.Error != nil {
			var fe *FetchError
			if errors.As(result.Error, &fe) {
				mu.Lock()
				failures = append(failures, fe)
				mu.Unlock()
			}
			p.logger.Warn("fetch failed",
				"url", result.URL,
				"index", result.Index,
				"worker", result.Worker,
				"error", result.Error.Error(),
			)
		}
		if onResult != nil {
			onResult(result)
		}
	}

	// the group is only the barrier: workers always return nil and failures
	// travel through record, so one bad URL never cancels its siblings
	var g errgroup.Group
	for w := 0; w < p.workers; w++ {
		id := w + 1
		g.Go(func() error {
			p.work(ctx, id, jobs, record)
			return nil
		})
	}
	_ = g.Wait()

	if len(failures) == 0 {
		return nil
	}

	sort.Slice(failures, func(i, j int) bool { return failures[i].Index < failures[j].Index })
	errs := make([]error, len(failures))
	for i, fe := range failures {
		errs[i] = fe
	}
	return errors.Join(errs...)
}

// work drains jobs with a client created on the first job and closed on exit.
func (p *Pool) work(ctx context.Context, id int, jobs <-chan job, record func(Result)) {
	var client *Client
	defer func() { client.Close() }()

	for j := range jobs {
		if err := ctx.Err(); err != nil {
			record(Result{
				URL:    j.url,
				Index:  j.index,
				Worker: id,
				Error:  &FetchError{URL: j.url, Index: j.index, Err: err},
			})
			continue
		}

		record(p.safeFetch(ctx, &client, id, j))
	}
}

// safeFetch runs one job with panic recovery, creating the worker's client
// in *client on first use. A panic is logged with its stack under a
// correlation ID and reported as a failure of that job only.
func (p *Pool) safeFetch(ctx context.Context, client **Client, id int, j job) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			p.logger.Error("fetch panic",
				"correlation_id", correlationID,
				"url", j.url,
				"worker", id,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			result = Result{
				URL:    j.url,
				Index:  j.index,
				Worker: id,
				Error: &FetchError{
					URL:   j.url,
					Index: j.index,
					Err:   fmt.Errorf("fetch panic (correlation_id: %s)", correlationID),
				},
			}
		}
	}()

	if *client == nil {
		*client = p.newClient()
		p.logger.Debug("worker client created", "worker", id)
	}
	return fetchOne(ctx, *client, p.opts, id, j.index, j.url)
}
