// Package event defines the input event model: the event kinds, the per-kind payload
// shapes and the InputEvent envelope that binds one payload to one kind.
//
// An InputEvent can only be built through the kind-specific constructors (NewKeyPressed,
// NewMouseWheel, ...) or through FromParts, which rejects a payload that does not belong
// to the kind. A zero InputEvent has no kind and is never produced by the engine.
package event

import "fmt"

// Kind is the discriminant of an InputEvent.
type Kind uint8

const (
	HookEnabled Kind = iota + 1
	HookDisabled
	KeyTyped
	KeyPressed
	KeyReleased
	MouseClicked
	MousePressed
	MouseReleased
	MouseMoved
	MouseDragged
	MouseWheel
)

var kindNames = [...]string{
	HookEnabled:   "HookEnabled",
	HookDisabled:  "HookDisabled",
	KeyTyped:      "KeyTyped",
	KeyPressed:    "KeyPressed",
	KeyReleased:   "KeyReleased",
	MouseClicked:  "MouseClicked",
	MousePressed:  "MousePressed",
	MouseReleased: "MouseReleased",
	MouseMoved:    "MouseMoved",
	MouseDragged:  "MouseDragged",
	MouseWheel:    "MouseWheel",
}

var kindTexts = [...]string{
	HookEnabled:   "hook_enabled",
	HookDisabled:  "hook_disabled",
	KeyTyped:      "key_typed",
	KeyPressed:    "key_pressed",
	KeyReleased:   "key_released",
	MouseClicked:  "mouse_clicked",
	MousePressed:  "mouse_pressed",
	MouseReleased: "mouse_released",
	MouseMoved:    "mouse_moved",
	MouseDragged:  "mouse_dragged",
	MouseWheel:    "mouse_wheel",
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= HookEnabled && k <= MouseWheel
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// IsHook reports whether k is HookEnabled or HookDisabled, the kinds without payload.
func (k Kind) IsHook() bool {
	return k == HookEnabled || k == HookDisabled
}

// IsKeyboard reports whether k carries a Keyboard payload.
func (k Kind) IsKeyboard() bool {
	return k >= KeyTyped && k <= KeyReleased
}

// IsMouse reports whether k carries a Mouse payload.
func (k Kind) IsMouse() bool {
	return k >= MouseClicked && k <= MouseDragged
}

// IsWheel reports whether k carries a Wheel payload.
func (k Kind) IsWheel() bool {
	return k == MouseWheel
}

// MarshalText renders k in its snake_case wire form.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("event: invalid kind %d", uint8(k))
	}
	return []byte(kindTexts[k]), nil
}

// UnmarshalText parses the snake_case wire form produced by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind accepts either the snake_case wire form or the Go name of a kind.
func ParseKind(s string) (Kind, error) {
	for k := HookEnabled; k <= MouseWheel; k++ {
		if kindTexts[k] == s || kindNames[k] == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("event: unknown kind %q", s)
}
