//go:build !windows

package autostart

import (
	"os"
	"path/filepath"
	"runtime"
)

// entryPath returns the login item file and the template that renders it.
func entryPath() (path, tmpl string, err error) {
	if runtime.GOOS == "darwin" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", "", err
		}
		return filepath.Join(home, "Library", "LaunchAgents", agentID+".plist"), "plist", nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", "", err
	}
	return filepath.Join(configDir, "autostart", appName+".desktop"), "desktop", nil
}

func enable(e Entry) error {
	path, tmpl, err := entryPath()
	if err != nil {
		return err
	}
	data, err := render(tmpl, e)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func disable() error {
	path, _, err := entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func isEnabled() bool {
	path, _, err := entryPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
