package store

import (
	"sort"
	"sync"
)

// MemoryStore is an in-memory implementation of [Store].
//
// Stats are keyed by URL and guarded by a single mutex.
type MemoryStore struct {
	mu    sync.RWMutex
	stats map[string]*URLStats
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		stats: make(map[string]*URLStats),
	}
}

// Record adds a fetch to the URL's totals.
func (m *MemoryStore) Record(r Record) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.stats[r.URL]
	if !ok {
		s = &URLStats{URL: r.URL}
		m.stats[r.URL] = s
	}

	s.Requests++
	s.TotalLatency += r.Latency
	if r.Failed {
		s.Failures++
		return
	}
	s.LastBytes = r.Bytes
	s.TotalBytes += r.Bytes
}

// GetAll returns a snapshot of per-URL totals sorted by URL.
func (m *MemoryStore) GetAll() []URLStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]URLStats, 0, len(m.stats))
	for _, s := range m.stats {
		results = append(results, *s)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].URL < results[j].URL })
	return results
}

// Summary returns totals across all recorded URLs.
func (m *MemoryStore) Summary() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var sum Summary
	for _, s := range m.stats {
		sum.Requests += s.Requests
		sum.Failures += s.Failures
		sum.Bytes += s.TotalBytes
	}
	return sum
}
