package main

import (
	"strings"
	"testing"
	"time"
)

func TestRootCmd_FlagDefaults(t *testing.T) {
	addr, err := rootCmd.Flags().GetString("addr")
	if err != nil {
		t.Fatalf("GetString(addr) error = %v", err)
	}
	if addr != ":9999" {
		t.Errorf("addr = %q, want :9999", addr)
	}

	delay, err := rootCmd.Flags().GetDuration("delay")
	if err != nil {
		t.Fatalf("GetDuration(delay) error = %v", err)
	}
	if delay != 100*time.Millisecond {
		t.Errorf("delay = %v, want 100ms", delay)
	}
}

func TestRootCmd_NegativeDelay(t *testing.T) {
	rootCmd.SetArgs([]string{"--delay=-1s"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("Execute() error = nil, want negative delay error")
	}
	if !strings.Contains(err.Error(), "delay cannot be negative") {
		t.Errorf("error = %v, want to mention negative delay", err)
	}
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	rootCmd.SetArgs([]string{"extra"})
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("Execute() error = nil, want unknown argument error")
	}
}
