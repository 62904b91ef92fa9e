package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Expected default config to validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"stream format", func(c *Config) { c.Stream.Format = "protobuf" }, "stream.format"},
		{"stream buffer", func(c *Config) { c.Stream.Buffer = 0 }, "stream.buffer"},
		{"api addr", func(c *Config) { c.API.Addr = "" }, "api.addr"},
		{"stop hotkey", func(c *Config) { c.Capture.StopHotkey = "Ctrl+Hyper" }, "capture.stop_hotkey"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), c.field) {
				t.Errorf("Expected error naming %s, got %v", c.field, err)
			}
		})
	}
}

func TestLoadWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	if err := m.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected defaults written to %s: %v", path, err)
	}
	if got := m.Get(); got != *DefaultConfig() {
		t.Errorf("Expected defaults, got %+v", got)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"log":{"level":"debug","format":"json"},"stream":{"format":"binary","buffer":64}}`), 0644); err != nil {
		t.Fatal(err)
	}
	m, _ := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := m.Get()
	if cfg.Log.Level != "debug" || cfg.Stream.Format != "binary" || cfg.Stream.Buffer != 64 {
		t.Errorf("Expected file values, got %+v", cfg)
	}
	if cfg.API.Addr != DefaultConfig().API.Addr {
		t.Errorf("Expected default api addr, got %q", cfg.API.Addr)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"stream":{"buffer":-1}}`), 0644); err != nil {
		t.Fatal(err)
	}
	m, _ := NewManager(path)
	if err := m.Load(); err == nil {
		t.Fatalf("Expected validation error")
	}
	if m.Get().Stream.Buffer != DefaultConfig().Stream.Buffer {
		t.Errorf("Expected previous config to be kept")
	}
}

func TestSetNotifiesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	m, _ := NewManager(path)

	calls := 0
	m.RegisterChangeCallback(func() { calls++ })

	cfg := m.Get()
	cfg.Capture.Echo = true
	if err := m.Set(cfg); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected 1 change callback, got %d", calls)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reloaded, _ := NewManager(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reloaded.Get().Capture.Echo {
		t.Errorf("Expected echo to persist")
	}

	bad := cfg
	bad.Stream.Format = "yaml"
	if err := m.Set(bad); err == nil {
		t.Errorf("Expected Set to reject invalid config")
	}
	if calls != 1 {
		t.Errorf("Expected no callback for rejected config, got %d", calls)
	}
}
