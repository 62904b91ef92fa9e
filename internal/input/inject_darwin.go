//go:build darwin && cgo

package input

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation -framework ApplicationServices

#include <CoreGraphics/CoreGraphics.h>
#include <CoreFoundation/CoreFoundation.h>

static void postKey(CGKeyCode keyCode, bool pressed) {
    CGEventRef event = CGEventCreateKeyboardEvent(NULL, keyCode, pressed);
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}

static void postChar(UniChar ch) {
    CGEventRef down = CGEventCreateKeyboardEvent(NULL, 0, true);
    CGEventRef up = CGEventCreateKeyboardEvent(NULL, 0, false);
    CGEventKeyboardSetUnicodeString(down, 1, &ch);
    CGEventKeyboardSetUnicodeString(up, 1, &ch);
    CGEventPost(kCGHIDEventTap, down);
    CGEventPost(kCGHIDEventTap, up);
    CFRelease(down);
    CFRelease(up);
}

static void postMouse(CGEventType type, CGFloat x, CGFloat y, CGMouseButton button, int64_t clicks) {
    CGEventRef event = CGEventCreateMouseEvent(NULL, type, CGPointMake(x, y), button);
    if (clicks > 0) {
        CGEventSetIntegerValueField(event, kCGMouseEventClickState, clicks);
    }
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}

static void postScroll(int32_t vertical, int32_t horizontal) {
    CGEventRef event = CGEventCreateScrollWheelEvent2(NULL, kCGScrollEventUnitLine, 2, vertical, horizontal, 0);
    CGEventPost(kCGHIDEventTap, event);
    CFRelease(event);
}
*/
import "C"

import (
	"fmt"

	"inputhook/internal/event"
)

type darwinInjector struct{}

var platformInjector Injector = darwinInjector{}

func (darwinInjector) Post(ev event.InputEvent) error {
	switch p := ev.Payload().(type) {
	case event.Keyboard:
		return postKey(ev.Kind(), p)
	case event.Mouse:
		return postMouse(ev.Kind(), p)
	case event.Wheel:
		return postWheel(p)
	default:
		return errNotPostable(ev.Kind())
	}
}

func postKey(kind event.Kind, p event.Keyboard) error {
	if kind == event.KeyTyped {
		if p.Keychar == event.CharUndefined {
			return fmt.Errorf("input: typed event without a character")
		}
		C.postChar(C.UniChar(p.Keychar))
		return nil
	}
	keycode, ok := MacFromVC(p.Keycode)
	if !ok {
		return fmt.Errorf("input: no macOS keycode for %s", event.KeyName(p.Keycode))
	}
	C.postKey(C.CGKeyCode(keycode), C.bool(kind == event.KeyPressed))
	return nil
}

type macButton struct {
	button   C.CGMouseButton
	down, up C.CGEventType
	drag     C.CGEventType
}

func macButtonFor(button uint16) (macButton, error) {
	switch button {
	case event.Button1:
		return macButton{C.kCGMouseButtonLeft, C.kCGEventLeftMouseDown, C.kCGEventLeftMouseUp, C.kCGEventLeftMouseDragged}, nil
	case event.Button2:
		return macButton{C.kCGMouseButtonRight, C.kCGEventRightMouseDown, C.kCGEventRightMouseUp, C.kCGEventRightMouseDragged}, nil
	case event.Button3, event.Button4, event.Button5:
		return macButton{C.CGMouseButton(button - 1), C.kCGEventOtherMouseDown, C.kCGEventOtherMouseUp, C.kCGEventOtherMouseDragged}, nil
	default:
		return macButton{}, fmt.Errorf("input: invalid button number: %d", button)
	}
}

func postMouse(kind event.Kind, p event.Mouse) error {
	x, y := C.CGFloat(p.X), C.CGFloat(p.Y)
	if kind == event.MouseMoved {
		C.postMouse(C.kCGEventMouseMoved, x, y, C.kCGMouseButtonLeft, 0)
		return nil
	}

	b, err := macButtonFor(p.Button)
	if err != nil {
		if kind == event.MouseDragged {
			C.postMouse(C.kCGEventLeftMouseDragged, x, y, C.kCGMouseButtonLeft, 0)
			return nil
		}
		return err
	}

	switch kind {
	case event.MouseDragged:
		C.postMouse(b.drag, x, y, b.button, 0)
	case event.MousePressed:
		C.postMouse(b.down, x, y, b.button, C.int64_t(p.Clicks))
	case event.MouseReleased:
		C.postMouse(b.up, x, y, b.button, C.int64_t(p.Clicks))
	default:
		for n := range max(int(p.Clicks), 1) {
			C.postMouse(b.down, x, y, b.button, C.int64_t(n+1))
			C.postMouse(b.up, x, y, b.button, C.int64_t(n+1))
		}
	}
	return nil
}

// postWheel scrolls by rotation lines. macOS counts positive deltas as up and left,
// the opposite of rotation.
func postWheel(p event.Wheel) error {
	delta := -C.int32_t(p.Rotation)
	if p.Direction == event.WheelHorizontal {
		C.postScroll(0, delta)
	} else {
		C.postScroll(delta, 0)
	}
	return nil
}
