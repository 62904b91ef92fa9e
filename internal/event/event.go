package event

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"time"

	"inputhook/internal/hookerr"
)

// InputEvent is one captured or synthetic input event. Its payload shape is fixed by its
// kind at construction time. InputEvent is a comparable value: == and Equal agree.
type InputEvent struct {
	kind     Kind
	time     uint64
	mask     Mask
	reserved uint16
	payload  Payload
}

func newEvent(k Kind, t uint64, mask Mask, p Payload) InputEvent {
	return InputEvent{kind: k, time: t, mask: mask, payload: p}
}

func NewHookEnabled(t uint64, mask Mask) InputEvent { return newEvent(HookEnabled, t, mask, nil) }
func NewHookDisabled(t uint64, mask Mask) InputEvent { return newEvent(HookDisabled, t, mask, nil) }

func NewKeyTyped(t uint64, mask Mask, p Keyboard) InputEvent { return newEvent(KeyTyped, t, mask, p) }
func NewKeyPressed(t uint64, mask Mask, p Keyboard) InputEvent { return newEvent(KeyPressed, t, mask, p) }
func NewKeyReleased(t uint64, mask Mask, p Keyboard) InputEvent { return newEvent(KeyReleased, t, mask, p) }

func NewMouseClicked(t uint64, mask Mask, p Mouse) InputEvent { return newEvent(MouseClicked, t, mask, p) }
func NewMousePressed(t uint64, mask Mask, p Mouse) InputEvent { return newEvent(MousePressed, t, mask, p) }
func NewMouseReleased(t uint64, mask Mask, p Mouse) InputEvent { return newEvent(MouseReleased, t, mask, p) }
func NewMouseMoved(t uint64, mask Mask, p Mouse) InputEvent { return newEvent(MouseMoved, t, mask, p) }
func NewMouseDragged(t uint64, mask Mask, p Mouse) InputEvent { return newEvent(MouseDragged, t, mask, p) }

func NewMouseWheel(t uint64, mask Mask, p Wheel) InputEvent { return newEvent(MouseWheel, t, mask, p) }

// FromParts assembles an event from decoded fields. It fails with ErrWrongVariant when p
// is not the payload shape of k (including a nil payload for a non-hook kind), so a
// decoder can never produce a mismatched event.
func FromParts(k Kind, t uint64, mask Mask, reserved uint16, p Payload) (InputEvent, error) {
	if !k.Valid() {
		return InputEvent{}, fmt.Errorf("event: invalid kind %d", uint8(k))
	}
	switch {
	case k.IsHook() && p != nil:
		return InputEvent{}, fmt.Errorf("%w: %s carries no payload", hookerr.ErrWrongVariant, k)
	case !k.IsHook() && (p == nil || !p.fits(k)):
		return InputEvent{}, fmt.Errorf("%w: %T payload for %s", hookerr.ErrWrongVariant, p, k)
	}
	e := newEvent(k, t, mask, p)
	e.reserved = reserved
	return e, nil
}

// Now returns the current time in epoch milliseconds, the unit of InputEvent.Time.
func Now() uint64 {
	return uint64(time.Now().UnixMilli())
}

func (e InputEvent) Kind() Kind { return e.kind }
func (e InputEvent) Time() uint64 { return e.time }
func (e InputEvent) Mask() Mask { return e.mask }
func (e InputEvent) Reserved() uint16 { return e.reserved }
func (e InputEvent) IsKeyboard() bool { return e.kind.IsKeyboard() }
func (e InputEvent) IsMouse() bool { return e.kind.IsMouse() }
func (e InputEvent) IsWheel() bool { return e.kind.IsWheel() }

// Timestamp returns Time as a time.Time.
func (e InputEvent) Timestamp() time.Time {
	return time.UnixMilli(int64(e.time))
}

// WithReserved returns a copy of e with the reserved field set.
func (e InputEvent) WithReserved(r uint16) InputEvent {
	e.reserved = r
	return e
}

// Payload returns the active payload: Keyboard, Mouse, Wheel, or nil for hook events.
func (e InputEvent) Payload() Payload {
	return e.payload
}

// Keyboard returns the keyboard payload, or ErrWrongVariant if e is not a key event.
func (e InputEvent) Keyboard() (Keyboard, error) {
	p, ok := e.payload.(Keyboard)
	if !ok {
		return Keyboard{}, e.wrongVariant("keyboard")
	}
	return p, nil
}

// Mouse returns the mouse payload, or ErrWrongVariant if e is not a button or motion event.
func (e InputEvent) Mouse() (Mouse, error) {
	p, ok := e.payload.(Mouse)
	if !ok {
		return Mouse{}, e.wrongVariant("mouse")
	}
	return p, nil
}

// Wheel returns the wheel payload, or ErrWrongVariant if e is not a MouseWheel event.
func (e InputEvent) Wheel() (Wheel, error) {
	p, ok := e.payload.(Wheel)
	if !ok {
		return Wheel{}, e.wrongVariant("wheel")
	}
	return p, nil
}

func (e InputEvent) wrongVariant(shape string) error {
	return fmt.Errorf("%w: %s payload requested on %s", hookerr.ErrWrongVariant, shape, e.kind)
}

// Equal reports whether e and o have the same kind, header fields and active payload.
func (e InputEvent) Equal(o InputEvent) bool {
	return e == o
}

// Compare orders events by time, then kind, mask, reserved and finally the payload
// fields of their (shared) kind.
func (e InputEvent) Compare(o InputEvent) int {
	if c := cmp.Compare(e.time, o.time); c != 0 {
		return c
	}
	if c := cmp.Compare(e.kind, o.kind); c != 0 {
		return c
	}
	if c := cmp.Compare(e.mask, o.mask); c != 0 {
		return c
	}
	if c := cmp.Compare(e.reserved, o.reserved); c != 0 {
		return c
	}
	if e.payload == nil || o.payload == nil {
		return 0
	}
	return e.payload.compare(o.payload)
}

// Hash returns a 64-bit FNV-1a hash over the header fields and the active payload.
// Equal events have equal hashes.
func (e InputEvent) Hash() uint64 {
	h := fnv.New64a()
	h.Write(e.appendHeader(make([]byte, 0, 24)))
	if e.payload != nil {
		h.Write(e.payload.appendFields(nil))
	}
	return h.Sum64()
}

func (e InputEvent) appendHeader(b []byte) []byte {
	b = append(b, byte(e.kind))
	b = binary.BigEndian.AppendUint64(b, e.time)
	b = binary.BigEndian.AppendUint16(b, uint16(e.mask))
	return binary.BigEndian.AppendUint16(b, e.reserved)
}

// AppendPayload appends the big-endian encoding of the active payload fields to b.
// Hook events append nothing.
func (e InputEvent) AppendPayload(b []byte) []byte {
	if e.payload == nil {
		return b
	}
	return e.payload.appendFields(b)
}

// String renders only the fields that belong to the event's kind.
func (e InputEvent) String() string {
	head := fmt.Sprintf("%s{time=%d mask=%s", e.kind, e.time, e.mask)
	if e.reserved != 0 {
		head += fmt.Sprintf(" reserved=%d", e.reserved)
	}
	if e.payload == nil {
		return head + "}"
	}
	return head + " " + e.payload.format() + "}"
}
