//go:build linux

package osutils

import "os"

func platformWarnings() []string {
	var warnings []string
	if os.Getenv("DISPLAY") == "" {
		warnings = append(warnings, "DISPLAY is not set: no X server to capture from")
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		warnings = append(warnings, "Wayland session: only input delivered to XWayland clients is observed")
	}
	return warnings
}
