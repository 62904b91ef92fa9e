//go:build darwin && cgo

package hook

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>
#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>
#include <stdint.h>

CGEventRef goEventTapCallback(CGEventTapProxy proxy, CGEventType type, CGEventRef event, void *refcon);

static CFMachPortRef createTap(uintptr_t refcon) {
    CGEventMask mask = CGEventMaskBit(kCGEventKeyDown) | CGEventMaskBit(kCGEventKeyUp) |
        CGEventMaskBit(kCGEventFlagsChanged) |
        CGEventMaskBit(kCGEventLeftMouseDown) | CGEventMaskBit(kCGEventLeftMouseUp) |
        CGEventMaskBit(kCGEventRightMouseDown) | CGEventMaskBit(kCGEventRightMouseUp) |
        CGEventMaskBit(kCGEventOtherMouseDown) | CGEventMaskBit(kCGEventOtherMouseUp) |
        CGEventMaskBit(kCGEventMouseMoved) | CGEventMaskBit(kCGEventLeftMouseDragged) |
        CGEventMaskBit(kCGEventRightMouseDragged) | CGEventMaskBit(kCGEventOtherMouseDragged) |
        CGEventMaskBit(kCGEventScrollWheel);
    return CGEventTapCreate(kCGSessionEventTap, kCGHeadInsertEventTap, kCGEventTapOptionListenOnly,
        mask, goEventTapCallback, (void *)refcon);
}

static CFRunLoopSourceRef createSource(CFMachPortRef tap) {
    return CFMachPortCreateRunLoopSource(kCFAllocatorDefault, tap, 0);
}

static void attach(CFRunLoopRef loop, CFRunLoopSourceRef source, CFMachPortRef tap) {
    CFRunLoopAddSource(loop, source, kCFRunLoopCommonModes);
    CGEventTapEnable(tap, true);
}

static void detach(CFRunLoopRef loop, CFRunLoopSourceRef source, CFMachPortRef tap) {
    CGEventTapEnable(tap, false);
    CFRunLoopRemoveSource(loop, source, kCFRunLoopCommonModes);
    CFMachPortInvalidate(tap);
    CFRelease(source);
    CFRelease(tap);
}

static int runOnce(double seconds) {
    return CFRunLoopRunInMode(kCFRunLoopDefaultMode, seconds, false);
}

static int keyboardChars(CGEventRef event, UniChar *buf, int size) {
    UniCharCount n = 0;
    CGEventKeyboardGetUnicodeString(event, size, &n, buf);
    return (int)n;
}
*/
import "C"

import (
	"errors"
	"math"
	"runtime/cgo"
	"sync/atomic"
	"time"
	"unsafe"

	"inputhook/internal/event"
	"inputhook/internal/hookerr"
	"inputhook/internal/input"
	"inputhook/internal/logging"
	"inputhook/internal/settings"
)

// runSlice bounds how long the run loop sleeps between checks of the interrupt flag,
// covering a stop that lands before the loop starts running.
const runSlice = 0.1

type platformBackend struct{}

// darwinSession owns a listen-only CGEventTap attached to the capture thread's run loop.
type darwinSession struct {
	handle cgo.Handle
	tap    C.CFMachPortRef
	source C.CFRunLoopSourceRef
	loop   C.CFRunLoopRef

	interrupted atomic.Bool

	emit   func(event.InputEvent)
	mods   input.ModifierState
	clicks *input.ClickCounter
}

func (platformBackend) Open() (Session, error) {
	if C.AXIsProcessTrusted() == 0 {
		return nil, hookerr.New(hookerr.AXAPIDisabled, "check accessibility", errors.New("accessibility access is not granted"))
	}

	s := &darwinSession{}
	s.handle = cgo.NewHandle(s)

	s.tap = C.createTap(C.uintptr_t(s.handle))
	if s.tap == nil {
		s.handle.Delete()
		return nil, hookerr.New(hookerr.CreateEventPort, "create event tap", nil)
	}
	s.source = C.createSource(s.tap)
	if s.source == nil {
		C.CFMachPortInvalidate(s.tap)
		C.CFRelease(C.CFTypeRef(unsafe.Pointer(s.tap)))
		s.handle.Delete()
		return nil, hookerr.New(hookerr.CreateRunLoopSource, "create run loop source", nil)
	}
	s.loop = C.CFRunLoopGetCurrent()
	if s.loop == nil {
		C.CFRelease(C.CFTypeRef(unsafe.Pointer(s.source)))
		C.CFMachPortInvalidate(s.tap)
		C.CFRelease(C.CFTypeRef(unsafe.Pointer(s.tap)))
		s.handle.Delete()
		return nil, hookerr.New(hookerr.GetRunLoop, "get run loop", nil)
	}
	C.attach(s.loop, s.source, s.tap)

	flags := C.CGEventSourceFlagsState(C.kCGEventSourceStateCombinedSessionState)
	s.mods.Set(maskFromFlags(flags))

	interval := input.DefaultMultiClickInterval
	if ms, err := settings.MultiClickTime(); err == nil {
		interval = time.Duration(ms) * time.Millisecond
	} else {
		logging.Debugf("hook: multi-click time unavailable, using %s: %v", interval, err)
	}
	s.clicks = input.NewClickCounter(interval)

	logging.Debugf("hook: CGEventTap attached")
	return s, nil
}

func (s *darwinSession) Run(emit func(event.InputEvent)) error {
	s.emit = emit
	for !s.interrupted.Load() {
		if C.runOnce(runSlice) == C.kCFRunLoopRunFinished {
			return errors.New("hook: event tap run loop has no sources")
		}
	}
	return nil
}

func (s *darwinSession) Interrupt() error {
	s.interrupted.Store(true)
	C.CFRunLoopStop(s.loop)
	return nil
}

func (s *darwinSession) Modifiers() event.Mask {
	return s.mods.Mask()
}

func (s *darwinSession) Close() error {
	C.detach(s.loop, s.source, s.tap)
	s.handle.Delete()
	return nil
}

//export goEventTapCallback
func goEventTapCallback(proxy C.CGEventTapProxy, eventType C.CGEventType, ev C.CGEventRef, refcon unsafe.Pointer) C.CGEventRef {
	s, ok := cgo.Handle(uintptr(refcon)).Value().(*darwinSession)
	if !ok || s.emit == nil {
		return ev
	}
	s.onEvent(eventType, ev)
	return ev
}

func (s *darwinSession) onEvent(eventType C.CGEventType, ev C.CGEventRef) {
	now := event.Now()

	switch eventType {
	case C.kCGEventTapDisabledByTimeout, C.kCGEventTapDisabledByUserInput:
		logging.Warnf("hook: event tap disabled by the system, re-enabling")
		C.CGEventTapEnable(s.tap, C.bool(true))

	case C.kCGEventKeyDown, C.kCGEventKeyUp:
		keycode := uint16(C.CGEventGetIntegerValueField(ev, C.kCGKeyboardEventKeycode))
		vc := input.VCFromMac(keycode)
		payload := event.Keyboard{Keycode: vc, Rawcode: keycode, Keychar: event.CharUndefined}
		s.mods.Set(maskFromFlags(C.CGEventGetFlags(ev)) | s.mods.Mask()&event.MaskButtons)
		mask := s.mods.Mask()
		if eventType == C.kCGEventKeyUp {
			s.emit(event.NewKeyReleased(now, mask, payload))
			return
		}
		s.emit(event.NewKeyPressed(now, mask, payload))
		var buf [4]C.UniChar
		n := int(C.keyboardChars(ev, &buf[0], C.int(len(buf))))
		for _, ch := range buf[:min(n, len(buf))] {
			if ch >= 0x20 && ch != 0x7F && (ch < 0xF700 || ch > 0xF8FF) {
				payload.Keychar = uint16(ch)
				s.emit(event.NewKeyTyped(now, mask, payload))
			}
		}

	case C.kCGEventFlagsChanged:
		keycode := uint16(C.CGEventGetIntegerValueField(ev, C.kCGKeyboardEventKeycode))
		vc := input.VCFromMac(keycode)
		before := s.mods.Mask()
		s.mods.Set(maskFromFlags(C.CGEventGetFlags(ev)) | before&event.MaskButtons)
		mask := s.mods.Mask()
		payload := event.Keyboard{Keycode: vc, Rawcode: keycode, Keychar: event.CharUndefined}
		bit := input.ModifierFor(vc)
		switch {
		case bit == 0:
			logging.Debugf("hook: flags change for non-modifier keycode %d", keycode)
		case vc == event.VCCapsLock:
			// Caps Lock reports one FlagsChanged per toggle.
			s.emit(event.NewKeyPressed(now, mask, payload))
			s.emit(event.NewKeyReleased(now, mask, payload))
		case mask&bit != 0 && before&bit == 0:
			s.emit(event.NewKeyPressed(now, mask, payload))
		default:
			s.emit(event.NewKeyReleased(now, mask, payload))
		}

	case C.kCGEventLeftMouseDown, C.kCGEventRightMouseDown, C.kCGEventOtherMouseDown:
		button := mouseButton(ev)
		x, y := location(ev)
		clicks := s.clicks.Press(button, now, x, y)
		mask := s.mods.Button(button, true)
		s.emit(event.NewMousePressed(now, mask, event.Mouse{Button: button, Clicks: clicks, X: x, Y: y}))

	case C.kCGEventLeftMouseUp, C.kCGEventRightMouseUp, C.kCGEventOtherMouseUp:
		button := mouseButton(ev)
		x, y := location(ev)
		mask := s.mods.Button(button, false)
		clicks, clicked := s.clicks.Release(button, x, y)
		payload := event.Mouse{Button: button, Clicks: clicks, X: x, Y: y}
		s.emit(event.NewMouseReleased(now, mask, payload))
		if clicked {
			s.emit(event.NewMouseClicked(now, mask, payload))
		}

	case C.kCGEventMouseMoved, C.kCGEventLeftMouseDragged, C.kCGEventRightMouseDragged, C.kCGEventOtherMouseDragged:
		x, y := location(ev)
		s.clicks.Move(x, y)
		mask := s.mods.Mask()
		payload := event.Mouse{Button: event.ButtonNone, Clicks: s.clicks.Count(), X: x, Y: y}
		if eventType == C.kCGEventMouseMoved {
			s.emit(event.NewMouseMoved(now, mask, payload))
		} else {
			s.emit(event.NewMouseDragged(now, mask, payload))
		}

	case C.kCGEventScrollWheel:
		x, y := location(ev)
		payload := event.Wheel{Clicks: 1, X: x, Y: y, Type: event.WheelUnitScroll, Amount: 3}
		if C.CGEventGetIntegerValueField(ev, C.kCGScrollWheelEventIsContinuous) != 0 {
			payload.Type = event.WheelBlockScroll
			payload.Amount = 1
		}
		vertical := int64(C.CGEventGetIntegerValueField(ev, C.kCGScrollWheelEventDeltaAxis1))
		horizontal := int64(C.CGEventGetIntegerValueField(ev, C.kCGScrollWheelEventDeltaAxis2))
		// macOS reports up and left as positive.
		if vertical != 0 {
			payload.Direction = event.WheelVertical
			payload.Rotation = clampInt16(-vertical)
			s.emit(event.NewMouseWheel(now, s.mods.Mask(), payload))
		}
		if horizontal != 0 {
			payload.Direction = event.WheelHorizontal
			payload.Rotation = clampInt16(-horizontal)
			s.emit(event.NewMouseWheel(now, s.mods.Mask(), payload))
		}

	default:
		logging.Warnf("hook: dropping event tap notification of type %d", int(eventType))
	}
}

// mouseButton maps the CoreGraphics button number, where 1 is right and 2 is middle.
func mouseButton(ev C.CGEventRef) uint16 {
	switch n := int64(C.CGEventGetIntegerValueField(ev, C.kCGMouseEventButtonNumber)); n {
	case 0:
		return event.Button1
	case 1:
		return event.Button2
	case 2:
		return event.Button3
	case 3:
		return event.Button4
	case 4:
		return event.Button5
	default:
		return event.ButtonNone
	}
}

func location(ev C.CGEventRef) (int16, int16) {
	p := C.CGEventGetLocation(ev)
	return clampInt16(int64(math.Round(float64(p.x)))), clampInt16(int64(math.Round(float64(p.y))))
}

func clampInt16(v int64) int16 {
	return int16(max(math.MinInt16, min(math.MaxInt16, v)))
}

// Device-dependent modifier bits from IOLLEvent.h; they tell left from right.
var deviceFlags = map[C.CGEventFlags]event.Mask{
	0x00000001: event.MaskCtrlL,
	0x00000002: event.MaskShiftL,
	0x00000004: event.MaskShiftR,
	0x00000008: event.MaskMetaL,
	0x00000010: event.MaskMetaR,
	0x00000020: event.MaskAltL,
	0x00000040: event.MaskAltR,
	0x00002000: event.MaskCtrlR,
}

func maskFromFlags(flags C.CGEventFlags) event.Mask {
	var m event.Mask
	for device, bit := range deviceFlags {
		if flags&device != 0 {
			m |= bit
		}
	}
	if flags&C.kCGEventFlagMaskAlphaShift != 0 {
		m |= event.MaskCapsLock
	}
	return m
}
