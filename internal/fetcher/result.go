package fetcher

import (
	"context"
	"fmt"
	"time"
)

// Result is the outcome of fetching one URL.
type Result struct {
	// URL is the fetched URL.
	URL string

	// Index is the URL's position in the input list.
	Index int

	// Worker is the ID of the pool worker that fetched the URL.
	// Always 0 in the sequential phase.
	Worker int

	// Bytes is the number of body bytes read.
	Bytes int64

	// StatusCode is the HTTP status code, zero if no response was received.
	StatusCode int

	// Latency is the time taken by the request.
	Latency time.Duration

	// Error is non-nil when the fetch failed. It is always a *FetchError.
	Error error
}

// FetchError reports a failed fetch and where it sat in the input list.
type FetchError struct {
	URL   string
	Index int
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (#%d): %v", e.URL, e.Index, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options tune how each request is made and judged.
type Options struct {
	// Timeout bounds each request. Zero means no per-request timeout.
	Timeout time.Duration

	// RequireSuccess turns non-2xx responses into failures.
	RequireSuccess bool
}

// fetchOne fetches a single URL with client and wraps any failure.
func fetchOne(ctx context.Context, client *Client, opts Options, worker, index int, url string) Result {
	resp := client.Fetch(ctx, url, opts.Timeout)

	result := Result{
		URL:        url,
		Index:      index,
		Worker:     worker,
		Bytes:      resp.Bytes,
		StatusCode: resp.StatusCode,
		Latency:    resp.Latency,
	}

	err := resp.Error
	if err == nil && opts.RequireSuccess && (resp.StatusCode < 200 || resp.StatusCode >= 300) {
		err = fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if err != nil {
		result.Error = &FetchError{URL: url, Index: index, Err: err}
	}

	return result
}
