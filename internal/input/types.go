// Package input provides native input injection and the translation state shared by
// the capture sessions: native key code tables, modifier tracking and click counting.
package input

import (
	"fmt"

	"inputhook/internal/event"
)

// Injector synthesizes native input from InputEvent values.
type Injector interface {
	Post(ev event.InputEvent) error
}

// Post synthesizes ev through the native injector. It is safe to call from any
// goroutine, including from a dispatch consumer, whatever the state of capture.
func Post(ev event.InputEvent) error {
	return platformInjector.Post(ev)
}

// Default returns the native injector used by Post.
func Default() Injector {
	return platformInjector
}

// errNotPostable is returned for event kinds that have no native equivalent.
func errNotPostable(k event.Kind) error {
	return fmt.Errorf("input: %s events cannot be posted", k)
}
