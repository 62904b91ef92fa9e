//go:build !windows && !linux && !(darwin && cgo)

package screen

import "inputhook/internal/hookerr"

func platformBounds() ([]bounds, error) {
	return nil, hookerr.ErrUnsupportedPlatform
}
