package event

import (
	"cmp"
	"encoding/binary"
	"fmt"
)

// Payload is the per-kind data of an InputEvent. It is implemented only by Keyboard,
// Mouse and Wheel; hook events carry no payload. Consumers type-switch on it.
type Payload interface {
	fits(k Kind) bool
	appendFields(b []byte) []byte
	compare(other Payload) int
	format() string
}

// Keyboard is the payload of KeyTyped, KeyPressed and KeyReleased.
type Keyboard struct {
	Keycode uint16 `json:"keycode"`
	Rawcode uint16 `json:"rawcode"`
	Keychar uint16 `json:"keychar"`
}

// Mouse is the payload of MouseClicked, MousePressed, MouseReleased, MouseMoved and MouseDragged.
type Mouse struct {
	Button uint16 `json:"button"`
	Clicks uint16 `json:"clicks"`
	X      int16  `json:"x"`
	Y      int16  `json:"y"`
}

// Wheel is the payload of MouseWheel.
type Wheel struct {
	Clicks    uint16 `json:"clicks"`
	X         int16  `json:"x"`
	Y         int16  `json:"y"`
	Type      uint8  `json:"type"`
	Amount    uint16 `json:"amount"`
	Rotation  int16  `json:"rotation"`
	Direction uint8  `json:"direction"`
}

func (Keyboard) fits(k Kind) bool { return k.IsKeyboard() }
func (Mouse) fits(k Kind) bool { return k.IsMouse() }
func (Wheel) fits(k Kind) bool { return k.IsWheel() }

func (p Keyboard) appendFields(b []byte) []byte {
	b = binary.BigEndian.AppendUint16(b, p.Keycode)
	b = binary.BigEndian.AppendUint16(b, p.Rawcode)
	return binary.BigEndian.AppendUint16(b, p.Keychar)
}

func (p Mouse) appendFields(b []byte) []byte {
	b = binary.BigEndian.AppendUint16(b, p.Button)
	b = binary.BigEndian.AppendUint16(b, p.Clicks)
	b = binary.BigEndian.AppendUint16(b, uint16(p.X))
	return binary.BigEndian.AppendUint16(b, uint16(p.Y))
}

func (p Wheel) appendFields(b []byte) []byte {
	b = binary.BigEndian.AppendUint16(b, p.Clicks)
	b = binary.BigEndian.AppendUint16(b, uint16(p.X))
	b = binary.BigEndian.AppendUint16(b, uint16(p.Y))
	b = append(b, p.Type)
	b = binary.BigEndian.AppendUint16(b, p.Amount)
	b = binary.BigEndian.AppendUint16(b, uint16(p.Rotation))
	return append(b, p.Direction)
}

// compare is only called with a payload of the same concrete type; InputEvent.Compare
// orders by kind before it reaches the payload.
func (p Keyboard) compare(other Payload) int {
	o := other.(Keyboard)
	if c := cmp.Compare(p.Keycode, o.Keycode); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Rawcode, o.Rawcode); c != 0 {
		return c
	}
	return cmp.Compare(p.Keychar, o.Keychar)
}

func (p Mouse) compare(other Payload) int {
	o := other.(Mouse)
	if c := cmp.Compare(p.Button, o.Button); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Clicks, o.Clicks); c != 0 {
		return c
	}
	if c := cmp.Compare(p.X, o.X); c != 0 {
		return c
	}
	return cmp.Compare(p.Y, o.Y)
}

func (p Wheel) compare(other Payload) int {
	o := other.(Wheel)
	for _, c := range [...]int{
		cmp.Compare(p.Clicks, o.Clicks),
		cmp.Compare(p.X, o.X),
		cmp.Compare(p.Y, o.Y),
		cmp.Compare(p.Type, o.Type),
		cmp.Compare(p.Amount, o.Amount),
		cmp.Compare(p.Rotation, o.Rotation),
	} {
		if c != 0 {
			return c
		}
	}
	return cmp.Compare(p.Direction, o.Direction)
}

func (p Keyboard) format() string {
	char := "undefined"
	if p.Keychar != CharUndefined {
		char = fmt.Sprintf("%q", rune(p.Keychar))
	}
	return fmt.Sprintf("keycode=%s(0x%04X) rawcode=0x%04X keychar=%s", KeyName(p.Keycode), p.Keycode, p.Rawcode, char)
}

func (p Mouse) format() string {
	return fmt.Sprintf("button=%d clicks=%d x=%d y=%d", p.Button, p.Clicks, p.X, p.Y)
}

func (p Wheel) format() string {
	return fmt.Sprintf("clicks=%d x=%d y=%d type=%d amount=%d rotation=%d direction=%d",
		p.Clicks, p.X, p.Y, p.Type, p.Amount, p.Rotation, p.Direction)
}
