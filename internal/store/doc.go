// Package store tallies fetch results for one benchmark phase.
//
// This package is internal to sitebench. Results arrive from concurrent pool
// workers, so the tally is safe for concurrent use.
//
// The main components are:
//
//   - [Store]: Interface for recording fetches and reading them back
//   - [MemoryStore]: In-memory implementation of Store
//   - [URLStats]: Per-URL totals
//   - [Summary]: Totals for the whole phase
package store
