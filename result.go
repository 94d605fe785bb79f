package sitebench

import "time"

// Phase names one half of a benchmark run.
type Phase string

const (
	// PhaseSequential fetches every URL in order over a single client.
	PhaseSequential Phase = "sequential"

	// PhasePooled fetches every URL through the worker pool.
	PhasePooled Phase = "pooled"
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// FetchResult holds the outcome of fetching a single URL.
type FetchResult struct {
	// Phase is the phase the fetch belongs to.
	Phase Phase

	// URL is the fetched URL.
	URL string

	// Index is the URL's position in the request list.
	Index int

	// Worker is the pool worker that made the request, from 1.
	// Zero in the sequential phase.
	Worker int

	// Bytes is the length of the response body.
	Bytes int64

	// StatusCode is the HTTP status code.
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the time taken by the request, body included.
	Latency time.Duration

	// Error is non-nil when the fetch failed.
	Error error
}
