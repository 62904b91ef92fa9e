//go:build linux

package autostart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnableDisableWritesDesktopEntry(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if IsEnabled() {
		t.Fatalf("expected no login item in a fresh config dir")
	}
	if err := Enable("-log-level", "warn"); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	if !IsEnabled() {
		t.Fatalf("expected login item after Enable")
	}

	data, err := os.ReadFile(filepath.Join(dir, "autostart", "inputhook.desktop"))
	if err != nil {
		t.Fatalf("failed to read desktop entry: %v", err)
	}
	if !strings.Contains(string(data), "-log-level warn") {
		t.Errorf("expected args in desktop entry:\n%s", data)
	}

	if err := Disable(); err != nil {
		t.Fatalf("Disable() error = %v", err)
	}
	if IsEnabled() {
		t.Errorf("expected login item to be removed")
	}
	if err := Disable(); err != nil {
		t.Errorf("second Disable() error = %v", err)
	}
}
