package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func executeRootCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRunBench_ConfiguredSites(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	}))
	defer server.Close()

	configPath := writeConfig(t, fmt.Sprintf(`
sites:
  - %s/a
  - %s/b
repeat: 3
workers: 2
timeout: 5s
`, server.URL, server.URL))

	output, err := executeRootCmd(t, "-c", configPath)
	if err != nil {
		t.Fatalf("root command error = %v", err)
	}

	// each URL is fetched three times in each phase
	if got := strings.Count(output, server.URL+"/a: 5\n"); got != 6 {
		t.Errorf("lines for /a = %d, want 6\nGot: %s", got, output)
	}
	for _, phrase := range []string{
		"Starting sequential download...",
		"Starting pooled download (2 workers)...",
		"Sequential time:",
		"Pooled time:",
		"Pooling reduced time by:",
	} {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunBench_FailureIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	configPath := writeConfig(t, fmt.Sprintf(`
sites:
  - %s
repeat: 2
workers: 1
require_success: true
`, server.URL))

	_, err := executeRootCmd(t, "-c", configPath)
	if err == nil {
		t.Fatal("root command error = nil, want sequential failure")
	}
	if !strings.Contains(err.Error(), "sequential phase") {
		t.Errorf("error = %v, want to mention sequential phase", err)
	}
}

func TestRunBench_InvalidConfig(t *testing.T) {
	configPath := writeConfig(t, "workers: 0\n")

	_, err := executeRootCmd(t, "-c", configPath)
	if err == nil {
		t.Fatal("root command error = nil, want config error")
	}
	if !strings.Contains(err.Error(), "failed to load config") {
		t.Errorf("error = %v, want to mention config loading", err)
	}
}
