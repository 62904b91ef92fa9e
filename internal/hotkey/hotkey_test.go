package hotkey

import (
	"strings"
	"testing"
	"time"

	"inputhook/internal/event"
)

func keyDown(code uint16) event.InputEvent {
	return event.NewKeyPressed(1, 0, event.Keyboard{Keycode: code})
}

func keyUp(code uint16) event.InputEvent {
	return event.NewKeyReleased(1, 0, event.Keyboard{Keycode: code})
}

func expectFired(t *testing.T, fired <-chan struct{}, want int) {
	t.Helper()
	got := 0
	deadline := time.After(200 * time.Millisecond)
	for {
		select {
		case <-fired:
			got++
		case <-deadline:
			if got != want {
				t.Fatalf("Expected %d triggers, got %d", want, got)
			}
			return
		}
	}
}

func TestChordTriggersOnce(t *testing.T) {
	m := NewManager()
	fired := make(chan struct{}, 8)
	if _, err := m.Register("Ctrl+Shift+Esc", func() { fired <- struct{}{} }); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	m.Observe(keyDown(event.VCControlR))
	m.Observe(keyDown(event.VCShiftL))
	m.Observe(keyDown(event.VCEscape))
	// auto-repeat
	m.Observe(keyDown(event.VCEscape))
	m.Observe(keyDown(event.VCEscape))
	expectFired(t, fired, 1)

	m.Observe(keyUp(event.VCEscape))
	m.Observe(keyDown(event.VCEscape))
	expectFired(t, fired, 1)
}

func TestUnrelatedKeyDoesNotRetrigger(t *testing.T) {
	m := NewManager()
	fired := make(chan struct{}, 8)
	m.Register("Alt+F4", func() { fired <- struct{}{} })

	m.Observe(keyDown(event.VCAltL))
	m.Observe(keyDown(event.VCF4))
	m.Observe(keyDown(event.VCA))
	expectFired(t, fired, 1)
}

func TestMouseChord(t *testing.T) {
	m := NewManager()
	fired := make(chan struct{}, 8)
	m.Register("Mouse2+Mouse3", func() { fired <- struct{}{} })

	m.Observe(event.NewMousePressed(1, 0, event.Mouse{Button: event.Button2}))
	m.Observe(event.NewMousePressed(1, 0, event.Mouse{Button: event.Button3}))
	expectFired(t, fired, 1)
}

func TestHookDisabledResetsState(t *testing.T) {
	m := NewManager()
	fired := make(chan struct{}, 8)
	m.Register("Ctrl+Q", func() { fired <- struct{}{} })

	m.Observe(keyDown(event.VCControlL))
	m.Observe(event.NewHookDisabled(2, 0))
	m.Observe(keyDown(event.VCQ))
	expectFired(t, fired, 0)
}

func TestRegisterRejectsUnknownKeys(t *testing.T) {
	m := NewManager()
	for _, hk := range []string{"", "Ctrl+", "Ctrl+Hyper", "Mouse9"} {
		if _, err := m.Register(hk, func() {}); err == nil {
			t.Errorf("Expected Register(%q) to fail", hk)
		}
	}
	for _, hk := range []string{"Cmd+Return", "Win+Numpad 5", "control+del"} {
		if _, err := m.Register(hk, func() {}); err != nil {
			t.Errorf("Register(%q) error = %v", hk, err)
		}
	}
}

func TestParseNormalizesParts(t *testing.T) {
	cases := map[string][]string{
		"Ctrl+Alt+Shift+Escape": {"CTRL", "ALT", "SHIFT", "ESCAPE"},
		"cmd + option + a":      {"META", "ALT", "A"},
		"Control L+Mouse4":      {"CTRL", "MOUSE4"},
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", in, err)
			continue
		}
		if strings.Join(got, "+") != strings.Join(want, "+") {
			t.Errorf("Parse(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestModifierHeldOnOtherSideAfterRelease(t *testing.T) {
	m := NewManager()
	fired := make(chan struct{}, 8)
	m.Register("Ctrl+Alt+Shift+Escape", func() { fired <- struct{}{} })

	m.Observe(keyDown(event.VCShiftL))
	m.Observe(keyDown(event.VCShiftR))
	m.Observe(keyUp(event.VCShiftL))
	m.Observe(keyDown(event.VCControlL))
	m.Observe(keyDown(event.VCAltL))
	m.Observe(keyDown(event.VCEscape))
	expectFired(t, fired, 1)

	m.Observe(keyUp(event.VCEscape))
	m.Observe(keyUp(event.VCShiftR))
	m.Observe(keyDown(event.VCEscape))
	expectFired(t, fired, 0)
}
