package store

import "time"

// Record is one fetch as the tally sees it.
type Record struct {
	// URL is the fetched URL.
	URL string

	// Bytes is the number of body bytes read.
	Bytes int64

	// Latency is the request latency.
	Latency time.Duration

	// Failed reports whether the fetch failed.
	Failed bool
}

// URLStats holds the totals for one URL within a phase.
type URLStats struct {
	URL string

	// Requests counts every fetch of the URL, failed ones included.
	Requests int

	// Failures counts failed fetches.
	Failures int

	// LastBytes is the body size of the most recent successful fetch.
	LastBytes int64

	// TotalBytes sums body sizes over successful fetches.
	TotalBytes int64

	// TotalLatency sums latency over all fetches.
	TotalLatency time.Duration
}

// Summary holds the totals for a whole phase.
type Summary struct {
	Requests int
	Failures int
	Bytes    int64
}

// Store defines how a phase's fetches are recorded and read back.
//
// Implementations must be safe for concurrent access.
type Store interface {
	// Record adds one fetch to the tally.
	Record(r Record)

	// GetAll returns per-URL totals sorted by URL.
	// The returned slice is a snapshot.
	GetAll() []URLStats

	// Summary returns totals across all URLs.
	Summary() Summary
}
