//go:build linux && cgo

package hook

/*
#cgo LDFLAGS: -lX11 -lXtst
#include <stdint.h>
#include <X11/Xlib.h>
#include <X11/Xproto.h>
#include <X11/extensions/record.h>

void goRecordData(uintptr_t handle, unsigned char *data, unsigned long length);

static void recordCallback(XPointer closure, XRecordInterceptData *data) {
    if (data->category == XRecordFromServer) {
        goRecordData((uintptr_t)closure, data->data, data->data_len * 4);
    }
    XRecordFreeData(data);
}

// createContext records core device events from every client. It returns 1 when the
// range cannot be allocated and 2 when the context cannot be created.
static int createContext(Display *ctrl, XRecordContext *ctx) {
    XRecordRange *range = XRecordAllocRange();
    if (range == NULL) {
        return 1;
    }
    range->device_events.first = KeyPress;
    range->device_events.last = MotionNotify;

    XRecordClientSpec clients = XRecordAllClients;
    *ctx = XRecordCreateContext(ctrl, 0, &clients, 1, &range, 1);
    XFree(range);
    return *ctx == 0 ? 2 : 0;
}

static int contextRegistered(Display *ctrl, XRecordContext ctx) {
    XRecordState *state = NULL;
    if (!XRecordGetContext(ctrl, ctx, &state)) {
        return 0;
    }
    XRecordFreeState(state);
    return 1;
}

static Status enableContext(Display *data, XRecordContext ctx, uintptr_t handle) {
    return XRecordEnableContextAsync(data, ctx, recordCallback, (XPointer)handle);
}

static int displayFd(Display *d) {
    return ConnectionNumber(d);
}
*/
import "C"

import (
	"encoding/binary"
	"errors"
	"fmt"
	"runtime/cgo"
	"time"
	"unsafe"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"inputhook/internal/event"
	"inputhook/internal/hookerr"
	"inputhook/internal/input"
	"inputhook/internal/logging"
	"inputhook/internal/settings"
)

// X core button masks as reported by QueryPointer.
const (
	xButton1Mask = 1 << 8
	xButton2Mask = 1 << 9
	xButton3Mask = 1 << 10
)

// Keyboard LED bits as configured by the stock X keyboard rules.
const (
	ledCapsLock   = 1 << 0
	ledNumLock    = 1 << 1
	ledScrollLock = 1 << 2
)

type platformBackend struct{}

// x11Session records core device events through the RECORD extension. The control
// display owns the context, the data display receives the intercepted events, and an
// xgbutil connection answers keymap queries for typed characters.
type x11Session struct {
	ctrl *C.Display
	data *C.Display
	ctx  C.XRecordContext
	xu   *xgbutil.XUtil

	handle cgo.Handle
	wake   *wakeup
	emit   func(event.InputEvent)
	tr     x11Translator
}

func (platformBackend) Open() (Session, error) {
	s := &x11Session{}
	if err := s.open(); err != nil {
		s.release()
		return nil, err
	}
	logging.Debugf("hook: X11 record context 0x%x created", uint64(s.ctx))
	return s, nil
}

func (s *x11Session) open() error {
	if s.ctrl = C.XOpenDisplay(nil); s.ctrl == nil {
		return hookerr.New(hookerr.XOpenDisplay, "open control display", nil)
	}
	if s.data = C.XOpenDisplay(nil); s.data == nil {
		return hookerr.New(hookerr.XOpenDisplay, "open data display", nil)
	}
	xu, err := xgbutil.NewConn()
	if err != nil {
		return hookerr.New(hookerr.XOpenDisplay, "open keymap connection", err)
	}
	s.xu = xu
	keybind.Initialize(xu)

	var major, minor C.int
	if C.XRecordQueryVersion(s.ctrl, &major, &minor) == 0 {
		return hookerr.New(hookerr.XRecordNotFound, "query record version", nil)
	}
	switch C.createContext(s.ctrl, &s.ctx) {
	case 1:
		return hookerr.New(hookerr.XRecordAllocRange, "allocate record range", nil)
	case 2:
		return hookerr.New(hookerr.XRecordCreateContext, "create record context", nil)
	}
	if C.contextRegistered(s.ctrl, s.ctx) == 0 {
		return hookerr.New(hookerr.XRecordGetContext, "get record context", nil)
	}
	// The data display must see the context before it enables it.
	C.XSync(s.ctrl, C.False)

	wake, err := newWakeup()
	if err != nil {
		return hookerr.New(hookerr.Failure, "create wakeup", err)
	}
	s.wake = wake
	s.handle = cgo.NewHandle(s)

	s.tr.keysym = func(code xproto.Keycode, column byte) xproto.Keysym {
		return keybind.KeysymGet(xu, code, column)
	}
	interval := input.DefaultMultiClickInterval
	if ms, err := settings.MultiClickTime(); err == nil {
		interval = time.Duration(ms) * time.Millisecond
	} else {
		logging.Debugf("hook: multi-click time unavailable, using %s: %v", interval, err)
	}
	s.tr.clicks = input.NewClickCounter(interval)
	s.seed()
	return nil
}

// seed loads held keys, buttons, lock LEDs and the pointer position so the first
// events carry the right mask.
func (s *x11Session) seed() {
	conn := s.xu.Conn()
	if ctl, err := xproto.GetKeyboardControl(conn).Reply(); err == nil {
		s.tr.mods.SetLocks(ctl.LedMask&ledNumLock != 0, ctl.LedMask&ledCapsLock != 0, ctl.LedMask&ledScrollLock != 0)
	} else {
		logging.Debugf("hook: keyboard control unavailable: %v", err)
	}
	if keymap, err := xproto.QueryKeymap(conn).Reply(); err == nil {
		for keycode := 0; keycode < 256 && keycode/8 < len(keymap.Keys); keycode++ {
			vc := input.VCFromX11(uint8(keycode))
			if keymap.Keys[keycode/8]&(1<<(keycode%8)) != 0 && input.ModifierFor(vc)&event.MaskLocks == 0 {
				s.tr.mods.Key(vc, true)
			}
		}
	} else {
		logging.Debugf("hook: keymap unavailable: %v", err)
	}
	if pointer, err := xproto.QueryPointer(conn, s.xu.RootWin()).Reply(); err == nil {
		s.tr.x, s.tr.y = pointer.RootX, pointer.RootY
		for detail, bit := range map[byte]uint16{1: xButton1Mask, 2: xButton2Mask, 3: xButton3Mask} {
			if pointer.Mask&bit != 0 {
				s.tr.mods.Button(xButton(detail), true)
			}
		}
	} else {
		logging.Debugf("hook: pointer unavailable: %v", err)
	}
}

func (s *x11Session) Run(emit func(event.InputEvent)) error {
	s.emit = emit
	if s.wake.isSignaled() {
		return nil
	}
	if C.enableContext(s.data, s.ctx, C.uintptr_t(s.handle)) == 0 {
		return hookerr.New(hookerr.XRecordEnableContext, "enable record context", nil)
	}
	defer func() {
		C.XRecordDisableContext(s.ctrl, s.ctx)
		C.XSync(s.ctrl, C.False)
	}()

	fd := int(C.displayFd(s.data))
	for {
		// Reads whatever the server has sent and runs recordCallback for each reply.
		C.XRecordProcessReplies(s.data)
		ready, err := s.wake.wait(fd)
		if err != nil {
			return fmt.Errorf("hook: record display: %w", err)
		}
		if !ready {
			return nil
		}
	}
}

func (s *x11Session) Interrupt() error {
	return s.wake.signal()
}

func (s *x11Session) Modifiers() event.Mask {
	return s.tr.mods.Mask()
}

func (s *x11Session) Close() error {
	return s.release()
}

func (s *x11Session) release() error {
	var errs []error
	if s.ctx != 0 {
		C.XRecordFreeContext(s.ctrl, s.ctx)
		s.ctx = 0
	}
	if s.data != nil {
		C.XCloseDisplay(s.data)
		s.data = nil
	}
	if s.ctrl != nil {
		C.XCloseDisplay(s.ctrl)
		s.ctrl = nil
	}
	if s.xu != nil {
		s.xu.Conn().Close()
		s.xu = nil
	}
	if s.wake != nil {
		errs = append(errs, s.wake.close())
	}
	if s.handle != 0 {
		s.handle.Delete()
		s.handle = 0
	}
	return errors.Join(errs...)
}

//export goRecordData
func goRecordData(handle C.uintptr_t, data *C.uchar, length C.ulong) {
	s, ok := cgo.Handle(handle).Value().(*x11Session)
	if !ok || s.emit == nil {
		return
	}
	ev, err := parseDeviceEvent(C.GoBytes(unsafe.Pointer(data), C.int(length)), binary.NativeEndian)
	if err != nil {
		logging.Warnf("hook: dropping malformed record data: %v", err)
		return
	}
	s.tr.translate(ev, event.Now(), s.emit)
}
