// Package fetcher issues the HTTP requests measured by sitebench.
//
// This package is internal to sitebench. It provides the two fetch
// strategies that a benchmark run compares:
//
//   - [Sequential]: one request at a time, in list order, over one [Client]
//   - [Pool]: a fixed number of workers pulling from a shared queue, each
//     worker owning a [Client] it creates on first use
//
// Both report every request as a [Result]. Failures are wrapped in
// [FetchError] so callers can tell which URL and list position failed.
package fetcher
