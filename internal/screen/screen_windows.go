//go:build windows

package screen

import (
	"errors"
	"sync"
	"syscall"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procEnumDisplayMonitors = user32.NewProc("EnumDisplayMonitors")

	enumCallback = syscall.NewCallback(monitorEnumProc)

	// enumMu serialises EnumDisplayMonitors so the callback can append to enumResult.
	enumMu     sync.Mutex
	enumResult []bounds
)

type rect struct {
	Left, Top, Right, Bottom int32
}

func monitorEnumProc(monitor, hdc uintptr, r *rect, data uintptr) uintptr {
	enumResult = append(enumResult, bounds{
		x:      int64(r.Left),
		y:      int64(r.Top),
		width:  int64(r.Right) - int64(r.Left),
		height: int64(r.Bottom) - int64(r.Top),
	})
	return 1
}

func platformBounds() ([]bounds, error) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumResult = nil
	ret, _, err := procEnumDisplayMonitors.Call(0, 0, enumCallback, 0)
	if ret == 0 {
		if err == nil || errors.Is(err, windows.ERROR_SUCCESS) {
			err = errors.New("EnumDisplayMonitors failed")
		}
		return nil, err
	}
	out := enumResult
	enumResult = nil
	return out, nil
}
