package tray

import (
	"encoding/binary"
	"testing"

	"inputhook/internal/hook"
)

func TestLabels(t *testing.T) {
	cases := []struct {
		state  hook.State
		status string
		action string
	}{
		{hook.Idle, "Capture: idle", "Start capture"},
		{hook.Running, "Capture: running", "Stop capture"},
		{hook.Starting, "Capture: starting", "Stop capture"},
	}
	for _, c := range cases {
		status, action := labels(c.state)
		if status != c.status || action != c.action {
			t.Errorf("labels(%s) = %q, %q", c.state, status, action)
		}
	}
}

func TestIconHeader(t *testing.T) {
	icon := getIcon()
	if binary.LittleEndian.Uint16(icon[2:4]) != 1 || binary.LittleEndian.Uint16(icon[4:6]) != 1 {
		t.Fatalf("Expected a single-image ICO header")
	}
	size := binary.LittleEndian.Uint32(icon[14:18])
	offset := binary.LittleEndian.Uint32(icon[18:22])
	if int(offset+size) != len(icon) {
		t.Errorf("Expected image to end at %d, file is %d bytes", offset+size, len(icon))
	}
	if binary.LittleEndian.Uint32(icon[offset:offset+4]) != 40 {
		t.Errorf("Expected BITMAPINFOHEADER at offset %d", offset)
	}
}
