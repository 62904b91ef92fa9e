//go:build darwin && cgo

package settings

/*
#cgo LDFLAGS: -framework CoreFoundation
#include <CoreFoundation/CoreFoundation.h>
#include <stdlib.h>

static int readGlobalPref(const char *name, double *out) {
	CFStringRef key = CFStringCreateWithCString(NULL, name, kCFStringEncodingUTF8);
	if (key == NULL) {
		return 0;
	}
	CFPropertyListRef value = CFPreferencesCopyAppValue(key, kCFPreferencesAnyApplication);
	CFRelease(key);
	if (value == NULL) {
		return 0;
	}
	int ok = 0;
	if (CFGetTypeID(value) == CFNumberGetTypeID()) {
		ok = CFNumberGetValue((CFNumberRef)value, kCFNumberDoubleType, out);
	}
	CFRelease(value);
	return ok;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

var errNotExposed = errors.New("not exposed by macOS")

func globalPref(name string) (float64, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var v C.double
	if C.readGlobalPref(cname, &v) == 0 {
		return 0, fmt.Errorf("preference %s is not set", name)
	}
	return float64(v), nil
}

// AutoRepeatRate returns KeyRepeat, the repeat interval in 15ms ticks.
func AutoRepeatRate() (int64, error) {
	v, err := globalPref("KeyRepeat")
	if err != nil {
		return 0, queryFailed("auto-repeat rate", err)
	}
	return int64(v), nil
}

// AutoRepeatDelay returns InitialKeyRepeat, the delay in 15ms ticks.
func AutoRepeatDelay() (int64, error) {
	v, err := globalPref("InitialKeyRepeat")
	if err != nil {
		return 0, queryFailed("auto-repeat delay", err)
	}
	return int64(v), nil
}

func PointerAccelerationMultiplier() (int64, error) {
	return 0, queryFailed("pointer acceleration multiplier", errNotExposed)
}

func PointerAccelerationThreshold() (int64, error) {
	return 0, queryFailed("pointer acceleration threshold", errNotExposed)
}

// PointerSensitivity returns the tracking speed in thousandths.
func PointerSensitivity() (int64, error) {
	v, err := globalPref("com.apple.mouse.scaling")
	if err != nil {
		return 0, queryFailed("pointer sensitivity", err)
	}
	return int64(math.Round(v * 1000)), nil
}

func MultiClickTime() (int64, error) {
	v, err := globalPref("com.apple.mouse.doubleClickThreshold")
	if err != nil {
		return 0, queryFailed("multi-click time", err)
	}
	return int64(math.Round(v * 1000)), nil
}
