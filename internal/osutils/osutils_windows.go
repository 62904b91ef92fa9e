//go:build windows

package osutils

import (
	"golang.org/x/sys/windows"
)

// IsElevated checks if the current process runs with an elevated token
func IsElevated() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token)
	if err != nil {
		return false
	}
	defer token.Close()

	return token.IsElevated()
}

func platformWarnings() []string {
	if IsElevated() {
		return nil
	}
	return []string{"process is not elevated: input directed at elevated windows is not captured and cannot be injected into them"}
}
