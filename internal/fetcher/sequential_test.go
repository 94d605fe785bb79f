package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

// pathRecorder is a handler that records request paths in arrival order and
// answers each path with a body whose length depends on the path.
type pathRecorder struct {
	mu    sync.Mutex
	paths []string
}

func (p *pathRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.paths = append(p.paths, r.URL.Path)
	p.mu.Unlock()

	if r.URL.Path == "/missing" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	_, _ = w.Write([]byte(strings.Repeat("b", len(r.URL.Path)*10)))
}

func (p *pathRecorder) recorded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.paths...)
}

func TestSequential_RequestsInListOrder(t *testing.T) {
	rec := &pathRecorder{}
	server := httptest.NewServer(rec)
	defer server.Close()

	var urls, want []string
	for i := 0; i < 12; i++ {
		path := fmt.Sprintf("/page/%d", i%4)
		urls = append(urls, server.URL+path)
		want = append(want, path)
	}

	client := NewClient()
	defer client.Close()

	var results []Result
	err := Sequential(context.Background(), client, urls, Options{}, func(r Result) {
		results = append(results, r)
	})
	if err != nil {
		t.Fatalf("Sequential() error = %v", err)
	}

	got := rec.recorded()
	if len(got) != len(want) {
		t.Fatalf("server saw %d requests, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request %d path = %q, want %q", i, got[i], want[i])
		}
	}

	if len(results) != len(urls) {
		t.Fatalf("got %d results, want %d", len(results), len(urls))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("results[%d].Index = %d, want %d", i, r.Index, i)
		}
		if r.URL != urls[i] {
			t.Errorf("results[%d].URL = %q, want %q", i, r.URL, urls[i])
		}
		if r.Worker != 0 {
			t.Errorf("results[%d].Worker = %d, want 0", i, r.Worker)
		}
		if r.Bytes != int64(len(want[i])*10) {
			t.Errorf("results[%d].Bytes = %d, want %d", i, r.Bytes, len(want[i])*10)
		}
	}
}

func TestSequential_FailFast(t *testing.T) {
	rec := &pathRecorder{}
	server := httptest.NewServer(rec)
	defer server.Close()

	// grab a free address and close it so dialing fails
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	urls := []string{server.URL + "/a", deadURL + "/b", server.URL + "/c"}

	client := NewClient()
	defer client.Close()

	var calls int
	err := Sequential(context.Background(), client, urls, Options{Timeout: 5 * time.Second}, func(Result) {
		calls++
	})
	if err == nil {
		t.Fatal("Sequential() error = nil, want error")
	}

	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *FetchError", err)
	}
	if fe.Index != 1 || fe.URL != urls[1] {
		t.Errorf("FetchError = {%q, %d}, want {%q, 1}", fe.URL, fe.Index, urls[1])
	}

	if got := rec.recorded(); len(got) != 1 || got[0] != "/a" {
		t.Errorf("server saw %v, want only [/a]", got)
	}
	if calls != 1 {
		t.Errorf("onResult calls = %d, want 1", calls)
	}
}

func TestSequential_RequireSuccess(t *testing.T) {
	rec := &pathRecorder{}
	server := httptest.NewServer(rec)
	defer server.Close()

	urls := []string{server.URL + "/ok", server.URL + "/missing", server.URL + "/never"}

	client := NewClient()
	defer client.Close()

	t.Run("off counts the response", func(t *testing.T) {
		err := Sequential(context.Background(), client, urls, Options{}, nil)
		if err != nil {
			t.Fatalf("Sequential() error = %v", err)
		}
	})

	t.Run("on aborts at the 404", func(t *testing.T) {
		err := Sequential(context.Background(), client, urls, Options{RequireSuccess: true}, nil)
		if err == nil {
			t.Fatal("Sequential() error = nil, want error")
		}
		if !strings.Contains(err.Error(), "unexpected status 404") {
			t.Errorf("error = %q, want to mention status 404", err)
		}
	})
}

func TestSequential_CancelledContext(t *testing.T) {
	rec := &pathRecorder{}
	server := httptest.NewServer(rec)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient()
	defer client.Close()

	err := Sequential(ctx, client, []string{server.URL + "/a"}, Options{}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Sequential() error = %v, want context.Canceled", err)
	}
	if got := rec.recorded(); len(got) != 0 {
		t.Errorf("server saw %d requests, want 0", len(got))
	}
}

func TestSequential_EmptyList(t *testing.T) {
	client := NewClient()
	defer client.Close()

	if err := Sequential(context.Background(), client, nil, Options{}, nil); err != nil {
		t.Errorf("Sequential() error = %v, want nil", err)
	}
}

// TestSequential_Idempotent verifies that repeated runs against a
// deterministic backend report the same byte counts.
func TestSequential_Idempotent(t *testing.T) {
	server := httptest.NewServer(&pathRecorder{})
	defer server.Close()

	urls := []string{server.URL + "/x", server.URL + "/longer", server.URL + "/much/longer/path"}

	run := func() map[string]int64 {
		client := NewClient()
		defer client.Close()

		counts := make(map[string]int64)
		if err := Sequential(context.Background(), client, urls, Options{}, func(r Result) {
			counts[r.URL] = r.Bytes
		}); err != nil {
			t.Fatalf("Sequential() error = %v", err)
		}
		return counts
	}

	first, second := run(), run()
	for _, u := range urls {
		if first[u] != second[u] {
			t.Errorf("Bytes for %s = %d then %d, want equal", u, first[u], second[u])
		}
	}
}
