//go:build linux

package hook

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"

	"github.com/BurntSushi/xgb/xproto"

	"inputhook/internal/event"
	"inputhook/internal/input"
	"inputhook/internal/logging"
)

// deviceEventSize is the length of a core protocol event on the wire.
const deviceEventSize = 32

// deviceEvent is the part of a recorded core device event the translator reads.
type deviceEvent struct {
	Type   byte
	Detail byte
	RootX  int16
	RootY  int16
	State  uint16
}

// parseDeviceEvent decodes one recorded core event. The recording connection receives
// data in its own byte order.
func parseDeviceEvent(b []byte, order binary.ByteOrder) (deviceEvent, error) {
	if len(b) < deviceEventSize {
		return deviceEvent{}, fmt.Errorf("short device event: %d bytes", len(b))
	}
	ev := deviceEvent{
		Type:   b[0] & 0x7F,
		Detail: b[1],
		RootX:  int16(order.Uint16(b[20:])),
		RootY:  int16(order.Uint16(b[22:])),
		State:  order.Uint16(b[28:]),
	}
	switch ev.Type {
	case xproto.KeyPress, xproto.KeyRelease, xproto.ButtonPress, xproto.ButtonRelease, xproto.MotionNotify:
		return ev, nil
	}
	return deviceEvent{}, fmt.Errorf("unexpected event type %d", ev.Type)
}

// x11Translator turns recorded device events into InputEvents, one notification at a
// time and in delivery order. It belongs to the capture thread.
type x11Translator struct {
	keysym func(keycode xproto.Keycode, column byte) xproto.Keysym

	mods   input.ModifierState
	clicks *input.ClickCounter
	x, y   int16
}

func (t *x11Translator) translate(ev deviceEvent, now uint64, emit func(event.InputEvent)) {
	switch ev.Type {
	case xproto.KeyPress, xproto.KeyRelease:
		t.key(emit, now, ev.Detail, ev.Type == xproto.KeyPress)
	case xproto.ButtonPress, xproto.ButtonRelease:
		t.x, t.y = ev.RootX, ev.RootY
		t.button(emit, now, ev.Detail, ev.Type == xproto.ButtonPress)
	case xproto.MotionNotify:
		t.x, t.y = ev.RootX, ev.RootY
		t.clicks.Move(t.x, t.y)
		mask := t.mods.Mask()
		payload := event.Mouse{Button: event.ButtonNone, Clicks: t.clicks.Count(), X: t.x, Y: t.y}
		if mask.Has(event.MaskButtons) {
			emit(event.NewMouseDragged(now, mask, payload))
		} else {
			emit(event.NewMouseMoved(now, mask, payload))
		}
	}
}

// X core buttons: 1 left, 2 middle, 3 right, 4-7 wheel, 8 back, 9 forward.
func (t *x11Translator) button(emit func(event.InputEvent), now uint64, detail byte, down bool) {
	if detail >= 4 && detail <= 7 {
		// A wheel notch is a press immediately followed by a release; the press carries it.
		if down {
			emit(event.NewMouseWheel(now, t.mods.Mask(), wheelNotch(detail, t.x, t.y)))
		}
		return
	}

	b := xButton(detail)
	if down {
		clicks := t.clicks.Press(b, now, t.x, t.y)
		mask := t.mods.Button(b, true)
		emit(event.NewMousePressed(now, mask, event.Mouse{Button: b, Clicks: clicks, X: t.x, Y: t.y}))
		return
	}
	mask := t.mods.Button(b, false)
	clicks, clicked := t.clicks.Release(b, t.x, t.y)
	payload := event.Mouse{Button: b, Clicks: clicks, X: t.x, Y: t.y}
	emit(event.NewMouseReleased(now, mask, payload))
	if clicked {
		emit(event.NewMouseClicked(now, mask, payload))
	}
}

// xButton maps an X button number onto a button code. Buttons past the wheel shift
// down by four so back and forward become Button4 and Button5.
func xButton(detail byte) uint16 {
	switch detail {
	case 1:
		return event.Button1
	case 2:
		return event.Button3
	case 3:
		return event.Button2
	}
	if detail < 8 {
		return event.ButtonNone
	}
	return uint16(detail) - 4
}

func wheelNotch(detail byte, x, y int16) event.Wheel {
	w := event.Wheel{
		Clicks:    1,
		X:         x,
		Y:         y,
		Type:      event.WheelUnitScroll,
		Amount:    3,
		Rotation:  1,
		Direction: event.WheelVertical,
	}
	if detail == 4 || detail == 6 {
		w.Rotation = -1
	}
	if detail >= 6 {
		w.Direction = event.WheelHorizontal
	}
	return w
}

func (t *x11Translator) key(emit func(event.InputEvent), now uint64, keycode uint8, down bool) {
	vc := input.VCFromX11(keycode)
	if vc == event.VCUndefined {
		logging.Debugf("hook: unmapped X11 keycode %d", keycode)
	}
	mask := t.mods.Key(vc, down)
	payload := event.Keyboard{Keycode: vc, Rawcode: uint16(keycode), Keychar: event.CharUndefined}
	if !down {
		emit(event.NewKeyReleased(now, mask, payload))
		return
	}
	emit(event.NewKeyPressed(now, mask, payload))
	if mask.Has(event.MaskCtrl | event.MaskMeta) {
		return
	}
	for _, ch := range t.typed(keycode, mask) {
		payload.Keychar = ch
		emit(event.NewKeyTyped(now, mask, payload))
	}
}

// typed resolves the keysym a press selects under mask and returns its UTF-16 units.
func (t *x11Translator) typed(keycode uint8, mask event.Mask) []uint16 {
	code := xproto.Keycode(keycode)
	column := byte(0)
	if mask.Has(event.MaskShift) {
		column = 1
	}
	if mask.Has(event.MaskCapsLock) && isLetterKeysym(t.keysym(code, 0)) {
		column ^= 1
	}
	if mask.Has(event.MaskNumLock) && isKeypadKeysym(t.keysym(code, 1)) {
		column ^= 1
	}
	r, ok := keysymRune(t.keysym(code, column))
	if !ok {
		return nil
	}
	return utf16.Encode([]rune{r})
}

func isLetterKeysym(sym xproto.Keysym) bool {
	return (sym >= 'a' && sym <= 'z') || (sym >= 0xE0 && sym <= 0xFE && sym != 0xF7)
}

func isKeypadKeysym(sym xproto.Keysym) bool {
	return sym >= 0xFF80 && sym <= 0xFFBD
}

// keysymRune converts a printable keysym to its character: Latin-1 keysyms equal their
// code point, Unicode keysyms carry it under 0x01000000, keypad keysyms mirror ASCII.
func keysymRune(sym xproto.Keysym) (rune, bool) {
	switch {
	case sym >= 0x20 && sym <= 0x7E, sym >= 0xA0 && sym <= 0xFF:
		return rune(sym), true
	case sym >= 0x01000100 && sym <= 0x0110FFFF:
		return rune(sym - 0x01000000), true
	case sym == 0xFF80:
		return ' ', true
	case sym >= 0xFFAA && sym <= 0xFFB9:
		return rune(sym - 0xFF80), true
	case sym == 0xFFBD:
		return '=', true
	}
	return 0, false
}
