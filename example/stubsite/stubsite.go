// Package stubsite serves fake web pages for running sitebench offline.
//
// Every path returns the same body on every request, so byte counts are
// stable across runs. Each request sleeps for a fixed delay to stand in for
// network latency; without it the pooled phase has nothing to overlap.
package stubsite

import (
	"hash/fnv"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	minPageSize = 4 << 10
	maxPageSize = 64 << 10
)

// PageSize returns the body size served for path.
func PageSize(path string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	return minPageSize + int(h.Sum32()%(maxPageSize-minPageSize))
}

// Handler returns a handler that serves a deterministic page per path after
// waiting delay.
func Handler(delay time.Duration, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		size := PageSize(r.URL.Path)
		logger.Debug("serving page", "path", r.URL.Path, "bytes", size)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(strings.Repeat("x", size)))
	})
}
