//go:build windows

package hook

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"inputhook/internal/event"
	"inputhook/internal/hookerr"
	"inputhook/internal/input"
	"inputhook/internal/logging"
	"inputhook/internal/settings"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookEx     = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx       = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx  = user32.NewProc("UnhookWindowsHookEx")
	procGetMessage           = user32.NewProc("GetMessageW")
	procPeekMessage          = user32.NewProc("PeekMessageW")
	procTranslateMessage     = user32.NewProc("TranslateMessage")
	procDispatchMessage      = user32.NewProc("DispatchMessageW")
	procPostThreadMessage    = user32.NewProc("PostThreadMessageW")
	procGetKeyState          = user32.NewProc("GetKeyState")
	procToUnicodeEx          = user32.NewProc("ToUnicodeEx")
	procGetKeyboardLayout    = user32.NewProc("GetKeyboardLayout")
	procSystemParametersInfo = user32.NewProc("SystemParametersInfoW")
	kernel32                 = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandle      = kernel32.NewProc("GetModuleHandleW")

	keyboardCallback = syscall.NewCallback(keyboardHookProc)
	mouseCallback    = syscall.NewCallback(mouseHookProc)

	activeSession atomic.Pointer[windowsSession]
)

const (
	whKeyboardLL = 13
	whMouseLL    = 14

	wmQuit        = 0x0012
	wmKeyDown     = 0x0100
	wmKeyUp       = 0x0101
	wmSysKeyDown  = 0x0104
	wmSysKeyUp    = 0x0105
	wmMouseMove   = 0x0200
	wmLButtonDown = 0x0201
	wmLButtonUp   = 0x0202
	wmRButtonDown = 0x0204
	wmRButtonUp   = 0x0205
	wmMButtonDown = 0x0207
	wmMButtonUp   = 0x0208
	wmMouseWheel  = 0x020A
	wmXButtonDown = 0x020B
	wmXButtonUp   = 0x020C
	wmMouseHWheel = 0x020E

	llkhfExtended = 0x01

	pmNoRemove = 0x0000
	pmRemove   = 0x0001

	spiGetWheelScrollLines = 0x0068
	wheelPageScroll        = 0xFFFFFFFF
	wheelDelta             = 120

	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkCapital = 0x14
	vkNumLock = 0x90
	vkScroll  = 0x91
)

type kbdLLHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msLLHookStruct struct {
	Point       struct{ X, Y int32 }
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    syscall.Handle
	Message uint32
	Wparam  uintptr
	Lparam  uintptr
	Time    uint32
	Pt      struct{ X, Y int32 }
}

type platformBackend struct{}

// windowsSession owns the low-level keyboard and mouse hooks. Hook procedures run on
// the thread that installed them, inside GetMessage, so all translation state is
// confined to the capture thread.
type windowsSession struct {
	threadID     uint32
	keyboardHook uintptr
	mouseHook    uintptr

	// mu orders the WM_QUIT post against Close so a quit never outlives the session
	// on a thread that returns to the scheduler.
	mu         sync.Mutex
	quitPosted bool
	closed     bool

	emit   func(event.InputEvent)
	mods   input.ModifierState
	clicks *input.ClickCounter
}

func (platformBackend) Open() (Session, error) {
	s := &windowsSession{threadID: windows.GetCurrentThreadId()}
	if !activeSession.CompareAndSwap(nil, s) {
		return nil, hookerr.ErrAlreadyRunning
	}

	// Force creation of the thread message queue so PostThreadMessage can reach it.
	var m msg
	procPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmNoRemove)

	hMod, _, err := procGetModuleHandle.Call(0)
	if hMod == 0 {
		activeSession.CompareAndSwap(s, nil)
		return nil, hookerr.New(hookerr.GetModuleHandle, "get module handle", err)
	}

	s.keyboardHook, _, err = procSetWindowsHookEx.Call(whKeyboardLL, keyboardCallback, hMod, 0)
	if s.keyboardHook == 0 {
		activeSession.CompareAndSwap(s, nil)
		return nil, hookerr.New(hookerr.SetWindowsHookEx, "install keyboard hook", err)
	}
	s.mouseHook, _, err = procSetWindowsHookEx.Call(whMouseLL, mouseCallback, hMod, 0)
	if s.mouseHook == 0 {
		procUnhookWindowsHookEx.Call(s.keyboardHook)
		activeSession.CompareAndSwap(s, nil)
		return nil, hookerr.New(hookerr.SetWindowsHookEx, "install mouse hook", err)
	}

	s.mods.SetLocks(toggled(vkNumLock), toggled(vkCapital), toggled(vkScroll))
	interval := input.DefaultMultiClickInterval
	if ms, err := settings.MultiClickTime(); err == nil {
		interval = time.Duration(ms) * time.Millisecond
	} else {
		logging.Debugf("hook: multi-click time unavailable, using %s: %v", interval, err)
	}
	s.clicks = input.NewClickCounter(interval)

	logging.Debugf("hook: Windows hooks installed on thread %d", s.threadID)
	return s, nil
}

func (s *windowsSession) Run(emit func(event.InputEvent)) error {
	s.emit = emit

	// A quit posted before Run is already queued and ends the loop below.
	var m msg
	for {
		ret, _, err := procGetMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			return fmt.Errorf("hook: GetMessage: %w", err)
		case 0:
			return nil
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func (s *windowsSession) Interrupt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quitPosted || s.closed {
		return nil
	}
	ret, _, err := procPostThreadMessage.Call(uintptr(s.threadID), wmQuit, 0, 0)
	if ret == 0 {
		return fmt.Errorf("post quit to capture thread: %w", err)
	}
	s.quitPosted = true
	return nil
}

func (s *windowsSession) Modifiers() event.Mask {
	return s.mods.Mask()
}

func (s *windowsSession) Close() error {
	defer activeSession.CompareAndSwap(s, nil)

	s.mu.Lock()
	s.closed = true
	if s.quitPosted {
		var m msg
		for {
			ret, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, wmQuit, wmQuit, pmRemove)
			if ret == 0 {
				break
			}
		}
	}
	s.mu.Unlock()

	var errs []error
	if ret, _, err := procUnhookWindowsHookEx.Call(s.keyboardHook); ret == 0 {
		errs = append(errs, fmt.Errorf("unhook keyboard: %w", err))
	}
	if ret, _, err := procUnhookWindowsHookEx.Call(s.mouseHook); ret == 0 {
		errs = append(errs, fmt.Errorf("unhook mouse: %w", err))
	}
	return errors.Join(errs...)
}

func toggled(vk uintptr) bool {
	ret, _, _ := procGetKeyState.Call(vk)
	return ret&0x0001 != 0
}

func keyboardHookProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	s := activeSession.Load()
	if nCode == 0 && s != nil && s.emit != nil {
		s.onKey(wParam, (*kbdLLHookStruct)(unsafe.Pointer(lParam)))
	}
	var hook uintptr
	if s != nil {
		hook = s.keyboardHook
	}
	ret, _, _ := procCallNextHookEx.Call(hook, uintptr(nCode), wParam, lParam)
	return ret
}

func mouseHookProc(nCode int, wParam uintptr, lParam uintptr) uintptr {
	s := activeSession.Load()
	if nCode == 0 && s != nil && s.emit != nil {
		s.onMouse(wParam, (*msLLHookStruct)(unsafe.Pointer(lParam)))
	}
	var hook uintptr
	if s != nil {
		hook = s.mouseHook
	}
	ret, _, _ := procCallNextHookEx.Call(hook, uintptr(nCode), wParam, lParam)
	return ret
}

func (s *windowsSession) onKey(wParam uintptr, kb *kbdLLHookStruct) {
	vc := input.VCFromWindows(uint16(kb.VkCode), kb.Flags&llkhfExtended != 0)
	if vc == event.VCUndefined {
		logging.Debugf("hook: unmapped virtual-key 0x%02X", kb.VkCode)
	}
	now := event.Now()

	switch wParam {
	case wmKeyDown, wmSysKeyDown:
		mask := s.mods.Key(vc, true)
		payload := event.Keyboard{Keycode: vc, Rawcode: uint16(kb.VkCode), Keychar: event.CharUndefined}
		s.emit(event.NewKeyPressed(now, mask, payload))
		for _, ch := range s.translate(kb) {
			payload.Keychar = ch
			s.emit(event.NewKeyTyped(now, mask, payload))
		}
	case wmKeyUp, wmSysKeyUp:
		mask := s.mods.Key(vc, false)
		s.emit(event.NewKeyReleased(now, mask, event.Keyboard{Keycode: vc, Rawcode: uint16(kb.VkCode), Keychar: event.CharUndefined}))
	default:
		logging.Warnf("hook: dropping keyboard message 0x%04X", wParam)
	}
}

// translate produces the UTF-16 units a key press types under the tracked modifiers.
// Flag 0x4 keeps ToUnicodeEx from disturbing the system dead-key state.
func (s *windowsSession) translate(kb *kbdLLHookStruct) []uint16 {
	var state [256]byte
	mask := s.mods.Mask()
	if mask.Has(event.MaskShift) {
		state[vkShift] = 0x80
	}
	if mask.Has(event.MaskCtrl) {
		state[vkControl] = 0x80
	}
	if mask.Has(event.MaskAlt) {
		state[vkMenu] = 0x80
	}
	if mask.Has(event.MaskCapsLock) {
		state[vkCapital] = 0x01
	}
	if mask.Has(event.MaskNumLock) {
		state[vkNumLock] = 0x01
	}

	layout, _, _ := procGetKeyboardLayout.Call(0)
	var buf [4]uint16
	n, _, _ := procToUnicodeEx.Call(
		uintptr(kb.VkCode),
		uintptr(kb.ScanCode),
		uintptr(unsafe.Pointer(&state[0])),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		0x4,
		layout,
	)
	count := int(int32(n))
	if count <= 0 {
		return nil
	}
	var chars []uint16
	for _, ch := range buf[:min(count, len(buf))] {
		if ch >= 0x20 && ch != 0x7F {
			chars = append(chars, ch)
		}
	}
	return chars
}

func (s *windowsSession) onMouse(wParam uintptr, ms *msLLHookStruct) {
	now := event.Now()
	x, y := int16(ms.Point.X), int16(ms.Point.Y)

	switch wParam {
	case wmLButtonDown:
		s.press(now, event.Button1, x, y)
	case wmRButtonDown:
		s.press(now, event.Button2, x, y)
	case wmMButtonDown:
		s.press(now, event.Button3, x, y)
	case wmXButtonDown:
		s.press(now, xButton(ms.MouseData), x, y)
	case wmLButtonUp:
		s.release(now, event.Button1, x, y)
	case wmRButtonUp:
		s.release(now, event.Button2, x, y)
	case wmMButtonUp:
		s.release(now, event.Button3, x, y)
	case wmXButtonUp:
		s.release(now, xButton(ms.MouseData), x, y)
	case wmMouseMove:
		s.clicks.Move(x, y)
		mask := s.mods.Mask()
		payload := event.Mouse{Button: event.ButtonNone, Clicks: s.clicks.Count(), X: x, Y: y}
		if mask.Has(event.MaskButtons) {
			s.emit(event.NewMouseDragged(now, mask, payload))
		} else {
			s.emit(event.NewMouseMoved(now, mask, payload))
		}
	case wmMouseWheel, wmMouseHWheel:
		s.wheel(now, wParam == wmMouseHWheel, ms, x, y)
	default:
		logging.Warnf("hook: dropping mouse message 0x%04X", wParam)
	}
}

func xButton(mouseData uint32) uint16 {
	if mouseData>>16 == 1 {
		return event.Button4
	}
	return event.Button5
}

func (s *windowsSession) press(now uint64, button uint16, x, y int16) {
	clicks := s.clicks.Press(button, now, x, y)
	mask := s.mods.Button(button, true)
	s.emit(event.NewMousePressed(now, mask, event.Mouse{Button: button, Clicks: clicks, X: x, Y: y}))
}

func (s *windowsSession) release(now uint64, button uint16, x, y int16) {
	mask := s.mods.Button(button, false)
	clicks, clicked := s.clicks.Release(button, x, y)
	payload := event.Mouse{Button: button, Clicks: clicks, X: x, Y: y}
	s.emit(event.NewMouseReleased(now, mask, payload))
	if clicked {
		s.emit(event.NewMouseClicked(now, mask, payload))
	}
}

// wheel converts WHEEL_DELTA units into notches. Vertical rotation is positive toward
// the user; horizontal rotation is positive to the right.
func (s *windowsSession) wheel(now uint64, horizontal bool, ms *msLLHookStruct, x, y int16) {
	delta := int16(ms.MouseData >> 16)
	payload := event.Wheel{
		Clicks:    1,
		X:         x,
		Y:         y,
		Type:      event.WheelUnitScroll,
		Direction: event.WheelVertical,
	}

	var lines uint32
	procSystemParametersInfo.Call(spiGetWheelScrollLines, 0, uintptr(unsafe.Pointer(&lines)), 0)
	if lines == wheelPageScroll {
		payload.Type = event.WheelBlockScroll
		payload.Amount = 1
	} else {
		payload.Amount = uint16(lines)
	}

	notches := delta / wheelDelta
	if notches == 0 && delta != 0 {
		notches = 1
		if delta < 0 {
			notches = -1
		}
	}
	if horizontal {
		payload.Direction = event.WheelHorizontal
		payload.Rotation = notches
	} else {
		payload.Rotation = -notches
	}
	s.emit(event.NewMouseWheel(now, s.mods.Mask(), payload))
}
