//go:build linux

package osutils

import (
	"strings"
	"testing"
)

func TestCaptureWarnings(t *testing.T) {
	cases := []struct {
		name    string
		display string
		wayland string
		want    []string
	}{
		{"x11", ":0", "", nil},
		{"no display", "", "", []string{"DISPLAY"}},
		{"wayland", ":0", "wayland-0", []string{"Wayland"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("DISPLAY", c.display)
			t.Setenv("WAYLAND_DISPLAY", c.wayland)
			got := CaptureWarnings()
			if len(got) != len(c.want) {
				t.Fatalf("Expected %d warnings, got %v", len(c.want), got)
			}
			for i, w := range c.want {
				if !strings.Contains(got[i], w) {
					t.Errorf("Expected warning about %s, got %q", w, got[i])
				}
			}
		})
	}
}
