//go:build linux

package input

import (
	"fmt"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"inputhook/internal/event"
)

// x11Injector posts events through the XTEST extension on a connection of its own,
// opened on first use.
type x11Injector struct {
	mu sync.Mutex
	xu *xgbutil.XUtil
}

var platformInjector Injector = &x11Injector{}

func (i *x11Injector) Post(ev event.InputEvent) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	xu, err := i.connLocked()
	if err != nil {
		return err
	}

	switch p := ev.Payload().(type) {
	case event.Keyboard:
		err = i.postKey(xu, ev.Kind(), p)
	case event.Mouse:
		err = i.postMouse(xu, ev.Kind(), p)
	case event.Wheel:
		err = i.postWheel(xu, p)
	default:
		return errNotPostable(ev.Kind())
	}
	if err != nil {
		xu.Conn().Close()
		i.xu = nil
		return err
	}
	xu.Conn().Sync()
	return nil
}

func (i *x11Injector) connLocked() (*xgbutil.XUtil, error) {
	if i.xu != nil {
		return i.xu, nil
	}
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("input: open display: %w", err)
	}
	if err := xtest.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("input: XTEST unavailable: %w", err)
	}
	keybind.Initialize(xu)
	i.xu = xu
	return xu, nil
}

func fake(xu *xgbutil.XUtil, kind byte, detail byte, x, y int16) error {
	return xtest.FakeInputChecked(
		xu.Conn(),
		kind,
		detail,
		xproto.TimeCurrentTime,
		xu.RootWin(),
		x,
		y,
		0,
	).Check()
}

func (i *x11Injector) postKey(xu *xgbutil.XUtil, kind event.Kind, p event.Keyboard) error {
	if kind == event.KeyTyped {
		return typeChar(xu, p.Keychar)
	}
	keycode, ok := X11FromVC(p.Keycode)
	if !ok {
		return fmt.Errorf("input: no X11 keycode for %s", event.KeyName(p.Keycode))
	}
	action := byte(xproto.KeyPress)
	if kind == event.KeyReleased {
		action = xproto.KeyRelease
	}
	return fake(xu, action, keycode, 0, 0)
}

// typeChar finds a key whose unshifted or shifted keysym produces char and taps it.
func typeChar(xu *xgbutil.XUtil, char uint16) error {
	if char == event.CharUndefined {
		return fmt.Errorf("input: typed event without a character")
	}
	want := xproto.Keysym(char)
	if !(char >= 0x20 && char <= 0x7E) && !(char >= 0xA0 && char <= 0xFF) {
		want = xproto.Keysym(0x01000000 | uint32(char))
	}

	setup := xu.Setup()
	minCode, maxCode := setup.MinKeycode, setup.MaxKeycode
	for code := int(minCode); code <= int(maxCode); code++ {
		for column := byte(0); column < 2; column++ {
			if keybind.KeysymGet(xu, xproto.Keycode(code), column) != want {
				continue
			}
			shift, _ := X11FromVC(event.VCShiftL)
			if column == 1 {
				if err := fake(xu, xproto.KeyPress, shift, 0, 0); err != nil {
					return err
				}
			}
			if err := fake(xu, xproto.KeyPress, byte(code), 0, 0); err != nil {
				return err
			}
			if err := fake(xu, xproto.KeyRelease, byte(code), 0, 0); err != nil {
				return err
			}
			if column == 1 {
				return fake(xu, xproto.KeyRelease, shift, 0, 0)
			}
			return nil
		}
	}
	return fmt.Errorf("input: no key produces U+%04X", char)
}

// X11 core buttons: 1 left, 2 middle, 3 right, 8 back, 9 forward.
func x11Button(button uint16) (byte, error) {
	switch button {
	case event.Button1:
		return 1, nil
	case event.Button2:
		return 3, nil
	case event.Button3:
		return 2, nil
	case event.Button4:
		return 8, nil
	case event.Button5:
		return 9, nil
	default:
		return 0, fmt.Errorf("input: invalid button number: %d", button)
	}
}

func (i *x11Injector) postMouse(xu *xgbutil.XUtil, kind event.Kind, p event.Mouse) error {
	if err := fake(xu, xproto.MotionNotify, 0, p.X, p.Y); err != nil {
		return err
	}
	if kind == event.MouseMoved || kind == event.MouseDragged {
		return nil
	}

	button, err := x11Button(p.Button)
	if err != nil {
		return err
	}
	switch kind {
	case event.MousePressed:
		return fake(xu, xproto.ButtonPress, button, 0, 0)
	case event.MouseReleased:
		return fake(xu, xproto.ButtonRelease, button, 0, 0)
	}
	for range max(int(p.Clicks), 1) {
		if err := fake(xu, xproto.ButtonPress, button, 0, 0); err != nil {
			return err
		}
		if err := fake(xu, xproto.ButtonRelease, button, 0, 0); err != nil {
			return err
		}
	}
	return nil
}

// postWheel taps the scroll buttons: 4 up, 5 down, 6 left, 7 right.
func (i *x11Injector) postWheel(xu *xgbutil.XUtil, p event.Wheel) error {
	if err := fake(xu, xproto.MotionNotify, 0, p.X, p.Y); err != nil {
		return err
	}
	button := byte(5)
	steps := int(p.Rotation)
	if p.Direction == event.WheelHorizontal {
		button = 7
	}
	if steps < 0 {
		button--
		steps = -steps
	}
	for range steps {
		if err := fake(xu, xproto.ButtonPress, button, 0, 0); err != nil {
			return err
		}
		if err := fake(xu, xproto.ButtonRelease, button, 0, 0); err != nil {
			return err
		}
	}
	return nil
}
