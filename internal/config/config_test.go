package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:            "8081",
				SQLiteDBPath:    "./test.db",
				CacheTTL:        5 * time.Minute,
				CacheMaxEntries: 64,
				LogLevel:        "info",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:            "abc",
				SQLiteDBPath:    "./test.db",
				CacheTTL:        time.Minute,
				CacheMaxEntries: 64,
				LogLevel:        "info",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:            "70000",
				SQLiteDBPath:    "./test.db",
				CacheTTL:        time.Minute,
				CacheMaxEntries: 64,
				LogLevel:        "info",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "empty db path",
			config: Config{
				Port:            "8081",
				SQLiteDBPath:    "",
				CacheTTL:        time.Minute,
				CacheMaxEntries: 64,
				LogLevel:        "info",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "cache TTL too short",
			config: Config{
				Port:            "8081",
				SQLiteDBPath:    "./test.db",
				CacheTTL:        100 * time.Millisecond,
				CacheMaxEntries: 64,
				LogLevel:        "info",
			},
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name: "unknown log level",
			config: Config{
				Port:            "8081",
				SQLiteDBPath:    "./test.db",
				CacheTTL:        time.Minute,
				CacheMaxEntries: 64,
				LogLevel:        "loud",
			},
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesDBDir(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Port:            "8081",
		SQLiteDBPath:    filepath.Join(dir, "nested", "store.db"),
		CacheTTL:        time.Minute,
		CacheMaxEntries: 64,
		LogLevel:        "info",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("expected default port 8081, got %s", cfg.Port)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("expected default cache TTL 5m, got %v", cfg.CacheTTL)
	}
}
