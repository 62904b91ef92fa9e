//go:build linux

package hook

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"

	"inputhook/internal/event"
	"inputhook/internal/input"
)

func wireEvent(typ, detail byte, x, y int16) []byte {
	b := make([]byte, deviceEventSize)
	b[0] = typ
	b[1] = detail
	binary.LittleEndian.PutUint16(b[20:], uint16(x))
	binary.LittleEndian.PutUint16(b[22:], uint16(y))
	return b
}

func newTestTranslator() *x11Translator {
	// US layout: keycode 38 is a/A.
	return &x11Translator{
		keysym: func(code xproto.Keycode, column byte) xproto.Keysym {
			if code != 38 {
				return 0
			}
			if column == 1 {
				return 'A'
			}
			return 'a'
		},
		clicks: input.NewClickCounter(200 * time.Millisecond),
	}
}

// feed translates wire events in order and returns everything emitted.
func feed(t *testing.T, tr *x11Translator, wire ...[]byte) []event.InputEvent {
	t.Helper()
	var out []event.InputEvent
	for i, b := range wire {
		ev, err := parseDeviceEvent(b, binary.LittleEndian)
		if err != nil {
			t.Fatalf("parseDeviceEvent(#%d) error = %v", i, err)
		}
		tr.translate(ev, uint64(1000+i), func(e event.InputEvent) { out = append(out, e) })
	}
	return out
}

func kindsOf(events []event.InputEvent) []event.Kind {
	kinds := make([]event.Kind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind()
	}
	return kinds
}

func expectKinds(t *testing.T, got []event.InputEvent, want ...event.Kind) {
	t.Helper()
	kinds := kindsOf(got)
	if len(kinds) != len(want) {
		t.Fatalf("Expected kinds %v, got %v", want, kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("Expected kinds %v, got %v", want, kinds)
		}
	}
}

func TestParseDeviceEvent(t *testing.T) {
	b := wireEvent(xproto.MotionNotify|0x80, 0, -5, 300)
	binary.LittleEndian.PutUint16(b[28:], 0x0101)
	ev, err := parseDeviceEvent(b, binary.LittleEndian)
	if err != nil {
		t.Fatalf("parseDeviceEvent() error = %v", err)
	}
	if ev.Type != xproto.MotionNotify || ev.RootX != -5 || ev.RootY != 300 || ev.State != 0x0101 {
		t.Errorf("unexpected event %+v", ev)
	}

	if _, err := parseDeviceEvent(b[:16], binary.LittleEndian); err == nil {
		t.Errorf("Expected error for a short event")
	}
	if _, err := parseDeviceEvent(wireEvent(xproto.Expose, 0, 0, 0), binary.LittleEndian); err == nil {
		t.Errorf("Expected error for a non-device event")
	}
}

func TestTranslateKeepsDeliveryOrder(t *testing.T) {
	tr := newTestTranslator()
	got := feed(t, tr,
		wireEvent(xproto.MotionNotify, 0, 10, 10),
		wireEvent(xproto.KeyPress, 38, 10, 10),
		wireEvent(xproto.ButtonPress, 1, 10, 10),
		wireEvent(xproto.KeyRelease, 38, 10, 10),
		wireEvent(xproto.ButtonRelease, 1, 10, 10),
	)
	expectKinds(t, got,
		event.MouseMoved,
		event.KeyPressed, event.KeyTyped,
		event.MousePressed,
		event.KeyReleased,
		event.MouseReleased, event.MouseClicked,
	)
}

func TestTranslateShortPressIsNotLost(t *testing.T) {
	tr := newTestTranslator()
	got := feed(t, tr,
		wireEvent(xproto.KeyPress, 38, 0, 0),
		wireEvent(xproto.KeyRelease, 38, 0, 0),
		wireEvent(xproto.KeyPress, 38, 0, 0),
		wireEvent(xproto.KeyRelease, 38, 0, 0),
	)
	expectKinds(t, got,
		event.KeyPressed, event.KeyTyped, event.KeyReleased,
		event.KeyPressed, event.KeyTyped, event.KeyReleased,
	)
}

func TestTranslateButtons(t *testing.T) {
	cases := []struct {
		detail byte
		want   uint16
		mask   event.Mask
	}{
		{1, event.Button1, event.MaskButton1},
		{2, event.Button3, event.MaskButton3},
		{3, event.Button2, event.MaskButton2},
		{8, event.Button4, event.MaskButton4},
		{9, event.Button5, event.MaskButton5},
	}
	for _, c := range cases {
		tr := newTestTranslator()
		got := feed(t, tr, wireEvent(xproto.ButtonPress, c.detail, 3, 4))
		expectKinds(t, got, event.MousePressed)
		m, err := got[0].Mouse()
		if err != nil {
			t.Fatalf("Mouse() error = %v", err)
		}
		if m.Button != c.want || m.X != 3 || m.Y != 4 || m.Clicks != 1 {
			t.Errorf("X button %d: unexpected payload %+v", c.detail, m)
		}
		if !got[0].Mask().Has(c.mask) {
			t.Errorf("X button %d: expected mask %s, got %s", c.detail, c.mask, got[0].Mask())
		}
	}
}

func TestTranslateWheel(t *testing.T) {
	cases := []struct {
		detail    byte
		rotation  int16
		direction uint8
	}{
		{4, -1, event.WheelVertical},
		{5, 1, event.WheelVertical},
		{6, -1, event.WheelHorizontal},
		{7, 1, event.WheelHorizontal},
	}
	for _, c := range cases {
		tr := newTestTranslator()
		got := feed(t, tr,
			wireEvent(xproto.ButtonPress, c.detail, 7, 8),
			wireEvent(xproto.ButtonRelease, c.detail, 7, 8),
		)
		expectKinds(t, got, event.MouseWheel)
		w, err := got[0].Wheel()
		if err != nil {
			t.Fatalf("Wheel() error = %v", err)
		}
		if w.Rotation != c.rotation || w.Direction != c.direction || w.X != 7 || w.Y != 8 {
			t.Errorf("X button %d: unexpected wheel %+v", c.detail, w)
		}
	}
}

func TestTranslateDragReleaseKeepsClicks(t *testing.T) {
	tr := newTestTranslator()
	got := feed(t, tr,
		wireEvent(xproto.ButtonPress, 1, 10, 10),
		wireEvent(xproto.MotionNotify, 0, 20, 10),
		wireEvent(xproto.ButtonRelease, 1, 20, 10),
	)
	expectKinds(t, got, event.MousePressed, event.MouseDragged, event.MouseReleased)
	m, _ := got[2].Mouse()
	if m.Clicks != 1 {
		t.Errorf("Expected release after drag to report 1 click, got %d", m.Clicks)
	}
}

func TestTranslateTypedHonorsShiftAndCtrl(t *testing.T) {
	tr := newTestTranslator()
	got := feed(t, tr,
		wireEvent(xproto.KeyPress, 50, 0, 0), // Shift-L
		wireEvent(xproto.KeyPress, 38, 0, 0),
	)
	expectKinds(t, got, event.KeyPressed, event.KeyPressed, event.KeyTyped)
	kb, _ := got[2].Keyboard()
	if kb.Keychar != 'A' {
		t.Errorf("Expected shifted character 'A', got %q", rune(kb.Keychar))
	}

	tr = newTestTranslator()
	got = feed(t, tr,
		wireEvent(xproto.KeyPress, 37, 0, 0), // Control-L
		wireEvent(xproto.KeyPress, 38, 0, 0),
	)
	expectKinds(t, got, event.KeyPressed, event.KeyPressed)
}

func TestKeysymRune(t *testing.T) {
	cases := []struct {
		sym  xproto.Keysym
		want rune
		ok   bool
	}{
		{'a', 'a', true},
		{'Z', 'Z', true},
		{0xE9, 'é', true},
		{0x010020AC, '€', true},
		{0xFFB7, '7', true},
		{0xFFAB, '+', true},
		{0xFF0D, 0, false},
		{0xFFE1, 0, false},
	}
	for _, c := range cases {
		got, ok := keysymRune(c.sym)
		if ok != c.ok || got != c.want {
			t.Errorf("keysymRune(0x%X) = %q, %v, want %q, %v", uint32(c.sym), got, ok, c.want, c.ok)
		}
	}
}
