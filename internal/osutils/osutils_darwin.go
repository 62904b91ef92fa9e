//go:build darwin && cgo

package osutils

/*
#cgo LDFLAGS: -framework ApplicationServices
#include <ApplicationServices/ApplicationServices.h>
*/
import "C"

// IsTrusted reports whether the process has been granted accessibility access.
func IsTrusted() bool {
	return C.AXIsProcessTrusted() != 0
}

func platformWarnings() []string {
	if IsTrusted() {
		return nil
	}
	return []string{"accessibility access not granted: enable it under System Settings > Privacy & Security > Accessibility"}
}
