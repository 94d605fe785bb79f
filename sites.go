package sitebench

import (
	"errors"
	"fmt"
	"net/url"
)

// DefaultRepeat is how many times the site list is repeated by default.
const DefaultRepeat = 20

// defaultSites are fetched when no sites are configured.
var defaultSites = []string{
	"https://www.python.org",
	"https://docs.python.org",
	"https://pypi.org",
}

// DefaultSites returns a copy of the built-in site list.
func DefaultSites() []string {
	return append([]string(nil), defaultSites...)
}

// Repeat returns sites concatenated n times, preserving order.
// n below 1 yields an empty list.
func Repeat(sites []string, n int) []string {
	if n < 1 {
		return nil
	}
	out := make([]string, 0, len(sites)*n)
	for i := 0; i < n; i++ {
		out = append(out, sites...)
	}
	return out
}

// validateSite checks that raw is an absolute http or https URL.
func validateSite(raw string) error {
	if raw == "" {
		return errors.New("site URL cannot be empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid site URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("site URL %q must have an http or https scheme", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("site URL %q must have a host", raw)
	}
	return nil
}
