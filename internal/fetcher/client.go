package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// connection pooling limits for a single client; each worker owns one client
// so these bound what one worker can hold open
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultMaxConnsPerHost     = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// Response holds the result of a single request made by [Client].
type Response struct {
	// Bytes is the number of body bytes read.
	Bytes int64

	// StatusCode is the HTTP status code.
	// Zero if the request failed before receiving a response.
	StatusCode int

	// Latency is the total time taken for the request, body included.
	Latency time.Duration

	// Error contains any transport or body read error.
	Error error
}

// Client is an HTTP client with its own connection pool.
//
// A Client is meant to be owned by one goroutine at a time: the sequential
// phase uses one for the whole list, and each pool worker creates its own.
// Keep-alives are enabled so repeated requests to the same host reuse the
// connection.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a [Client] with a fresh keep-alive transport.
func NewClient() *Client {
	return NewClientWithTransport(&http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        defaultMaxIdleConns,
		MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
		MaxConnsPerHost:     defaultMaxConnsPerHost,
		IdleConnTimeout:     defaultIdleConnTimeout,
		DisableKeepAlives:   false,
	})
}

// NewClientWithTransport creates a [Client] that sends requests through rt.
// A nil rt falls back to [NewClient].
func NewClientWithTransport(rt http.RoundTripper) *Client {
	if rt == nil {
		return NewClient()
	}
	return &Client{
		// no client timeout - per-request timeouts go through the context
		httpClient: &http.Client{Transport: rt},
	}
}

// Fetch performs a GET request and reads the whole body.
//
// The body is counted, not retained. A timeout of zero means the request
// is bounded only by ctx.
//
// Fetch always returns a Response; errors are captured in the Error field.
func (c *Client) Fetch(ctx context.Context, url string, timeout time.Duration) Response {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("failed to create request: %w", err),
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("request failed: %w", err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	// draining the body is what lets the transport reuse the connection
	n, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return Response{
			Bytes:      n,
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      fmt.Errorf("failed to read response body: %w", err),
		}
	}

	return Response{
		Bytes:      n,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close closes idle connections held by the client's transport.
//
// Safe to call multiple times and on a nil Client. The client stays usable
// afterwards; new connections are dialed as needed.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	c.httpClient.CloseIdleConnections()
}
