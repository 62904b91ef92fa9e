package input

import "inputhook/internal/event"

var keyModifiers = map[uint16]event.Mask{
	event.VCShiftL:   event.MaskShiftL,
	event.VCShiftR:   event.MaskShiftR,
	event.VCControlL: event.MaskCtrlL,
	event.VCControlR: event.MaskCtrlR,
	event.VCMetaL:    event.MaskMetaL,
	event.VCMetaR:    event.MaskMetaR,
	event.VCAltL:     event.MaskAltL,
	event.VCAltR:     event.MaskAltR,
}

var lockModifiers = map[uint16]event.Mask{
	event.VCNumLock:    event.MaskNumLock,
	event.VCCapsLock:   event.MaskCapsLock,
	event.VCScrollLock: event.MaskScrollLock,
}

// ModifierFor returns the mask bit a key holds or toggles, or 0 for ordinary keys.
func ModifierFor(keycode uint16) event.Mask {
	if m, ok := keyModifiers[keycode]; ok {
		return m
	}
	return lockModifiers[keycode]
}

// ModifierState tracks the modifier mask from observed key and button transitions.
// It belongs to a single capture thread and is not safe for concurrent use.
type ModifierState struct {
	mask event.Mask
}

// Mask returns the current mask.
func (s *ModifierState) Mask() event.Mask {
	return s.mask
}

// Key records a key transition and returns the resulting mask. Modifier keys are held
// while down; lock keys toggle on press.
func (s *ModifierState) Key(keycode uint16, down bool) event.Mask {
	if m, ok := keyModifiers[keycode]; ok {
		if down {
			s.mask |= m
		} else {
			s.mask &^= m
		}
	} else if m, ok := lockModifiers[keycode]; ok && down {
		s.mask ^= m
	}
	return s.mask
}

// Button records a mouse button transition and returns the resulting mask.
func (s *ModifierState) Button(button uint16, down bool) event.Mask {
	m := event.ButtonMask(button)
	if down {
		s.mask |= m
	} else {
		s.mask &^= m
	}
	return s.mask
}

// SetLocks seeds the lock-key bits from the platform's toggle state.
func (s *ModifierState) SetLocks(num, caps, scroll bool) {
	s.mask &^= event.MaskLocks
	if num {
		s.mask |= event.MaskNumLock
	}
	if caps {
		s.mask |= event.MaskCapsLock
	}
	if scroll {
		s.mask |= event.MaskScrollLock
	}
}

// Set replaces the whole mask. Sessions that read modifier flags directly from the
// platform use it instead of Key.
func (s *ModifierState) Set(mask event.Mask) {
	s.mask = mask
}
