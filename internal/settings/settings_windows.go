//go:build windows

package settings

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfo = user32.NewProc("SystemParametersInfoW")
	procGetDoubleClickTime   = user32.NewProc("GetDoubleClickTime")
)

const (
	spiGetMouse         = 0x0003
	spiGetKeyboardSpeed = 0x000A
	spiGetKeyboardDelay = 0x0016
	spiGetMouseSpeed    = 0x0070
)

func systemParameter(action uintptr, out unsafe.Pointer) error {
	r, _, err := procSystemParametersInfo.Call(action, 0, uintptr(out), 0)
	if r == 0 {
		return err
	}
	return nil
}

// mouseParams returns SPI_GETMOUSE's first threshold, second threshold and
// acceleration level.
func mouseParams() ([3]int32, error) {
	var params [3]int32
	err := systemParameter(spiGetMouse, unsafe.Pointer(&params[0]))
	return params, err
}

// AutoRepeatRate returns the keyboard repeat speed, 0 (about 2.5/s) to 31 (about 30/s).
func AutoRepeatRate() (int64, error) {
	var v uint32
	if err := systemParameter(spiGetKeyboardSpeed, unsafe.Pointer(&v)); err != nil {
		return 0, queryFailed("auto-repeat rate", err)
	}
	return int64(v), nil
}

// AutoRepeatDelay returns the keyboard repeat delay, 0 (250ms) to 3 (1s).
func AutoRepeatDelay() (int64, error) {
	var v int32
	if err := systemParameter(spiGetKeyboardDelay, unsafe.Pointer(&v)); err != nil {
		return 0, queryFailed("auto-repeat delay", err)
	}
	return int64(v), nil
}

// PointerAccelerationMultiplier returns the "enhance pointer precision" level, 0 when
// acceleration is off.
func PointerAccelerationMultiplier() (int64, error) {
	params, err := mouseParams()
	if err != nil {
		return 0, queryFailed("pointer acceleration multiplier", err)
	}
	return int64(params[2]), nil
}

// PointerAccelerationThreshold returns the first mouse threshold in mickeys.
func PointerAccelerationThreshold() (int64, error) {
	params, err := mouseParams()
	if err != nil {
		return 0, queryFailed("pointer acceleration threshold", err)
	}
	return int64(params[0]), nil
}

// PointerSensitivity returns the pointer speed, 1 to 20.
func PointerSensitivity() (int64, error) {
	var v int32
	if err := systemParameter(spiGetMouseSpeed, unsafe.Pointer(&v)); err != nil {
		return 0, queryFailed("pointer sensitivity", err)
	}
	return int64(v), nil
}

func MultiClickTime() (int64, error) {
	r, _, _ := procGetDoubleClickTime.Call()
	if r == 0 {
		return 0, queryFailed("multi-click time", nil)
	}
	return int64(r), nil
}
