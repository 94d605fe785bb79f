package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/sitebench"
	"github.com/jpalmerr/sitebench/example/stubsite"
)

func main() {
	// serve stub pages on a free local port
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		slog.Error("failed to listen", "error", err)
		os.Exit(1)
	}
	go func() { _ = http.Serve(ln, stubsite.Handler(100*time.Millisecond, nil)) }()

	base := "http://" + ln.Addr().String()

	var slowest sitebench.FetchResult
	b, err := sitebench.New(
		sitebench.WithSites(base+"/python", base+"/docs", base+"/pypi"),
		sitebench.WithRepeat(10),
		sitebench.WithWorkers(5),
		sitebench.WithTimeout(5*time.Second),
		sitebench.WithResultCallback(func(r sitebench.FetchResult) {
			// callbacks for the pooled phase run on worker goroutines
			if r.Phase == sitebench.PhaseSequential && r.Latency > slowest.Latency {
				slowest = r
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create bench", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := b.Run(ctx)
	if err != nil {
		slog.Error("benchmark failed", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Printf("Run %s\n", report.RunID)
	fmt.Printf("  sequential: %d requests, %d bytes\n", report.Sequential.Requests, report.Sequential.Bytes)
	fmt.Printf("  pooled:     %d requests, %d bytes\n", report.Pooled.Requests, report.Pooled.Bytes)
	fmt.Printf("  slowest sequential fetch: %s in %s\n", slowest.URL, slowest.Latency)
}
