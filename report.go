package sitebench

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// PhaseReport summarises one phase of a run.
type PhaseReport struct {
	// Phase identifies the phase.
	Phase Phase

	// Duration is the wall-clock time the phase took.
	Duration time.Duration

	// Requests is the number of URLs processed, failed ones included.
	Requests int

	// Failures is the number of failed fetches.
	Failures int

	// Bytes is the total body size over successful fetches.
	Bytes int64

	// BytesByURL holds the body size of the last successful fetch per URL.
	// In the pooled phase "last" is whichever fetch of the URL completed
	// last, so the value is stable across runs only when the site serves
	// the same body size on every request.
	BytesByURL map[string]int64

	// MeanLatencyByURL holds the mean request latency per URL over every
	// fetch of it, failed ones included.
	MeanLatencyByURL map[string]time.Duration
}

// Report is the outcome of a [Bench.Run].
type Report struct {
	// RunID identifies the run in logs.
	RunID string

	// Workers is the pool size used in the pooled phase.
	Workers int

	// Sequential and Pooled summarise the two phases. Pooled is zero when the
	// sequential phase aborted.
	Sequential PhaseReport
	Pooled     PhaseReport

	// Improvement is the time saved by the pooled phase as a percentage of
	// the sequential time. Negative when pooling was slower.
	Improvement float64

	// ImprovementDefined is false when the sequential time was zero, in which
	// case Improvement is reported as 0.
	ImprovementDefined bool
}

// Improvement returns (sequential - pooled) / sequential * 100.
//
// When sequential is zero or negative the ratio has no meaning; Improvement
// then returns 0 and false.
func Improvement(sequential, pooled time.Duration) (float64, bool) {
	if sequential <= 0 {
		return 0, false
	}
	return float64(sequential-pooled) / float64(sequential) * 100, true
}

// console serialises writes to the report output. Pool workers print
// concurrently and lines must not interleave.
type console struct {
	mu sync.Mutex
	w  io.Writer
}

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.w, format, args...)
}

// fetched prints the per-fetch line.
func (c *console) fetched(url string, bytes int64) {
	c.printf("%s: %d\n", url, bytes)
}

func (c *console) phaseStarted(p Phase, workers int) {
	switch p {
	case PhaseSequential:
		c.printf("Starting sequential download...\n")
	case PhasePooled:
		c.printf("\nStarting pooled download (%d workers)...\n", workers)
	}
}

func (c *console) phaseFinished(p Phase) {
	switch p {
	case PhaseSequential:
		c.printf("Sequential download finished\n")
	case PhasePooled:
		c.printf("Pooled download finished\n")
	}
}

// summary prints the two durations and the improvement.
func (c *console) summary(r Report) {
	c.printf("Sequential time: %.2f seconds\n", r.Sequential.Duration.Seconds())
	c.printf("Pooled time: %.2f seconds\n", r.Pooled.Duration.Seconds())
	if !r.ImprovementDefined {
		c.printf("\nPooling reduced time by: %.2f%% (sequential time was zero)\n", r.Improvement)
		return
	}
	c.printf("\nPooling reduced time by: %.2f%%\n", r.Improvement)
}
