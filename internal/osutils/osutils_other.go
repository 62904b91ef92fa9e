//go:build !windows && !linux && !(darwin && cgo)

package osutils

import "runtime"

func platformWarnings() []string {
	return []string{"input capture is not supported on " + runtime.GOOS}
}
