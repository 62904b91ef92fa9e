// Package hotkey matches key and mouse-button chords against captured input events.
package hotkey

import (
	"fmt"
	"strings"
	"sync"

	"inputhook/internal/event"
	"inputhook/internal/logging"
)

// Modifier families match either the left or the right key.
var modifierParts = map[uint16]string{
	event.VCShiftL:   "SHIFT",
	event.VCShiftR:   "SHIFT",
	event.VCControlL: "CTRL",
	event.VCControlR: "CTRL",
	event.VCAltL:     "ALT",
	event.VCAltR:     "ALT",
	event.VCMetaL:    "META",
	event.VCMetaR:    "META",
}

var aliases = map[string]string{
	"CONTROL": "CTRL",
	"OPTION":  "ALT",
	"CMD":     "META",
	"COMMAND": "META",
	"WIN":     "META",
	"SUPER":   "META",
	"ESC":     "ESCAPE",
	"RETURN":  "ENTER",
	"DEL":     "DELETE",
}

// Manager handles hotkey registration and matching
type Manager struct {
	mu           sync.RWMutex
	hotkeys      []*registeredHotkey
	currentState map[string]string // held key or button -> the hotkey part it satisfies
}

type registeredHotkey struct {
	parts    []string // e.g., ["CTRL", "ALT", "MOUSE4"]
	original string
	callback func()
}

// NewManager creates a new hotkey manager
func NewManager() *Manager {
	return &Manager{
		currentState: make(map[string]string),
	}
}

// Register registers a hotkey string (e.g. "Ctrl+Alt+Escape", "Mouse2+Mouse3") and a
// callback. Key names are those of event.KeyName; modifiers match either side.
func (m *Manager) Register(hotkeyStr string, callback func()) (int, error) {
	parts, err := Parse(hotkeyStr)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotkeys = append(m.hotkeys, &registeredHotkey{
		parts:    parts,
		original: hotkeyStr,
		callback: callback,
	})

	return len(m.hotkeys) - 1, nil
}

// Parse splits a hotkey string into its normalized parts.
func Parse(hotkeyStr string) ([]string, error) {
	if strings.TrimSpace(hotkeyStr) == "" {
		return nil, fmt.Errorf("hotkey: empty hotkey")
	}

	raw := strings.Split(hotkeyStr, "+")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		part, err := normalizePart(p)
		if err != nil {
			return nil, fmt.Errorf("hotkey: %q: %w", hotkeyStr, err)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

func normalizePart(p string) (string, error) {
	part := strings.ToUpper(strings.TrimSpace(p))
	if alias, ok := aliases[part]; ok {
		part = alias
	}
	switch part {
	case "":
		return "", fmt.Errorf("empty key")
	case "SHIFT", "CTRL", "ALT", "META":
		return part, nil
	case "MOUSE1", "MOUSE2", "MOUSE3", "MOUSE4", "MOUSE5":
		return part, nil
	}
	code, ok := event.ParseKeyName(part)
	if !ok {
		return "", fmt.Errorf("unknown key %q", p)
	}
	return keyPart(code), nil
}

func keyPart(code uint16) string {
	if family, ok := modifierParts[code]; ok {
		return family
	}
	return strings.ToUpper(event.KeyName(code))
}

// Clear removes all registered hotkeys
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotkeys = nil
}

// Observe feeds a captured event into the matcher. Only key and button transitions
// matter; callbacks run on their own goroutine, so Observe is safe to call from a
// dispatch consumer.
func (m *Manager) Observe(ev event.InputEvent) {
	switch ev.Kind() {
	case event.KeyPressed, event.KeyReleased:
		kb, err := ev.Keyboard()
		if err != nil {
			return
		}
		m.update(strings.ToUpper(event.KeyName(kb.Keycode)), keyPart(kb.Keycode), ev.Kind() == event.KeyPressed)
	case event.MousePressed, event.MouseReleased:
		ms, err := ev.Mouse()
		if err != nil || ms.Button == event.ButtonNone {
			return
		}
		m.UpdateState(fmt.Sprintf("MOUSE%d", ms.Button), ev.Kind() == event.MousePressed)
	case event.HookDisabled:
		m.Reset()
	}
}

// Reset forgets every held key, e.g. when capture stops with keys still down.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.currentState)
}

// UpdateState updates the internal state of a key or button and checks for matches.
// Auto-repeat presses of a key already held do not retrigger.
func (m *Manager) UpdateState(key string, isDown bool) {
	key = strings.ToUpper(key)
	m.update(key, key, isDown)
}

// update records a physical key or button. Left and right modifiers are distinct
// physical keys that satisfy the same part, so releasing one side keeps the part
// held while the other side is down.
func (m *Manager) update(physical, part string, isDown bool) {
	m.mu.Lock()
	if _, held := m.currentState[physical]; isDown && held {
		m.mu.Unlock()
		return
	}
	if isDown {
		m.currentState[physical] = part
	} else {
		delete(m.currentState, physical)
	}
	m.mu.Unlock()

	if isDown {
		m.checkMatches(part)
	}
}

// checkMatches fires hotkeys that contain part and are now fully held.
func (m *Manager) checkMatches(key string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	held := make(map[string]bool, len(m.currentState))
	for _, part := range m.currentState {
		held[part] = true
	}
	for _, hk := range m.hotkeys {
		match, involved := true, false
		for _, part := range hk.parts {
			if !held[part] {
				match = false
				break
			}
			if part == key {
				involved = true
			}
		}

		if match && involved {
			logging.Infof("hotkey: triggered %s", hk.original)
			go hk.callback()
		}
	}
}
