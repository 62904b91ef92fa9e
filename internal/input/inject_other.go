//go:build !windows && !linux && !(darwin && cgo)

package input

import (
	"inputhook/internal/event"
	"inputhook/internal/hookerr"
)

type unsupportedInjector struct{}

var platformInjector Injector = unsupportedInjector{}

func (unsupportedInjector) Post(event.InputEvent) error {
	return hookerr.ErrUnsupportedPlatform
}
