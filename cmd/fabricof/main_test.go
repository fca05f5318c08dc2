package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunReturnsStartupErrors(t *testing.T) {
	dir := t.TempDir()
	missingScene := filepath.Join(dir, "missing.yaml")
	missingConfig := filepath.Join(dir, "fabricof.yaml")

	tests := []struct {
		name    string
		backend string
		logPath string
		wantErr string
	}{
		{"Log file", "", filepath.Join(dir, "fabricof.log"), "failed to load scene"},
		{"Terminal discards logs", "terminal", "", "failed to load scene"},
		{"Unknown backend", "vector", "", "invalid config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(func() { log.SetOutput(os.Stderr) })

			err := run(missingConfig, missingScene, tt.backend, tt.logPath)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Expected error containing '%s', got %v", tt.wantErr, err)
			}
			if log.Writer() != os.Stderr {
				t.Error("Expected log output restored to stderr after run returns")
			}
		})
	}
}

func TestRunClosesLogFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "fabricof.log")
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	if err := run(filepath.Join(dir, "fabricof.yaml"), filepath.Join(dir, "missing.yaml"), "", logPath); err == nil {
		t.Fatal("Expected a scene load error")
	}

	log.Printf("after run")
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if strings.Contains(string(data), "after run") {
		t.Error("Expected logging after run to stop reaching the log file")
	}
}
