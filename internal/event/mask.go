package event

import "strings"

// Mask records held modifier keys, held mouse buttons and toggled lock keys at the
// moment of an event. Bit positions are fixed.
type Mask uint16

const (
	MaskShiftL Mask = 1 << 0
	MaskCtrlL  Mask = 1 << 1
	MaskMetaL  Mask = 1 << 2
	MaskAltL   Mask = 1 << 3

	MaskShiftR Mask = 1 << 4
	MaskCtrlR  Mask = 1 << 5
	MaskMetaR  Mask = 1 << 6
	MaskAltR   Mask = 1 << 7

	MaskButton1 Mask = 1 << 8
	MaskButton2 Mask = 1 << 9
	MaskButton3 Mask = 1 << 10
	MaskButton4 Mask = 1 << 11
	MaskButton5 Mask = 1 << 12

	MaskNumLock    Mask = 1 << 13
	MaskCapsLock   Mask = 1 << 14
	MaskScrollLock Mask = 1 << 15
)

const (
	MaskShift = MaskShiftL | MaskShiftR
	MaskCtrl  = MaskCtrlL | MaskCtrlR
	MaskMeta  = MaskMetaL | MaskMetaR
	MaskAlt   = MaskAltL | MaskAltR

	MaskButtons = MaskButton1 | MaskButton2 | MaskButton3 | MaskButton4 | MaskButton5
	MaskLocks   = MaskNumLock | MaskCapsLock | MaskScrollLock
)

var maskNames = [16]string{
	"Shift-L", "Ctrl-L", "Meta-L", "Alt-L",
	"Shift-R", "Ctrl-R", "Meta-R", "Alt-R",
	"Button1", "Button2", "Button3", "Button4", "Button5",
	"NumLock", "CapsLock", "ScrollLock",
}

// Has reports whether any bit of flags is set in m.
func (m Mask) Has(flags Mask) bool {
	return m&flags != 0
}

// ButtonMask returns the held-button bit for a mouse button code, or 0 for ButtonNone
// and unknown buttons.
func ButtonMask(button uint16) Mask {
	if button < Button1 || button > Button5 {
		return 0
	}
	return MaskButton1 << (button - Button1)
}

func (m Mask) String() string {
	if m == 0 {
		return "0"
	}
	var parts []string
	for i, name := range maskNames {
		if m&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
