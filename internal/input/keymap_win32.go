package input

import "inputhook/internal/event"

// Windows virtual-key codes that need translation beyond the letter and digit ranges.
var win32Keys = newKeyTable([]codePair{
	{0x08, event.VCBackspace},
	{0x09, event.VCTab},
	{0x0C, event.VCClear},
	{0x0D, event.VCEnter},
	{0x10, event.VCShiftL},
	{0x11, event.VCControlL},
	{0x12, event.VCAltL},
	{0x13, event.VCPause},
	{0x14, event.VCCapsLock},
	{0x15, event.VCKatakana},
	{0x19, event.VCKanji},
	{0x1B, event.VCEscape},
	{0x1C, event.VCKanji},
	{0x1D, event.VCHiragana},
	{0x20, event.VCSpace},
	{0x21, event.VCPageUp},
	{0x22, event.VCPageDown},
	{0x23, event.VCEnd},
	{0x24, event.VCHome},
	{0x25, event.VCLeft},
	{0x26, event.VCUp},
	{0x27, event.VCRight},
	{0x28, event.VCDown},
	{0x2C, event.VCPrintscreen},
	{0x2D, event.VCInsert},
	{0x2E, event.VCDelete},
	{0x2F, event.VCSunHelp},
	{0x5B, event.VCMetaL},
	{0x5C, event.VCMetaR},
	{0x5D, event.VCContextMenu},
	{0x5F, event.VCSleep},
	{0x60, event.VCKp0},
	{0x61, event.VCKp1},
	{0x62, event.VCKp2},
	{0x63, event.VCKp3},
	{0x64, event.VCKp4},
	{0x65, event.VCKp5},
	{0x66, event.VCKp6},
	{0x67, event.VCKp7},
	{0x68, event.VCKp8},
	{0x69, event.VCKp9},
	{0x6A, event.VCKpMultiply},
	{0x6B, event.VCKpAdd},
	{0x6C, event.VCKpComma},
	{0x6D, event.VCKpSubtract},
	{0x6E, event.VCKpSeparator},
	{0x6F, event.VCKpDivide},
	{0x70, event.VCF1},
	{0x71, event.VCF2},
	{0x72, event.VCF3},
	{0x73, event.VCF4},
	{0x74, event.VCF5},
	{0x75, event.VCF6},
	{0x76, event.VCF7},
	{0x77, event.VCF8},
	{0x78, event.VCF9},
	{0x79, event.VCF10},
	{0x7A, event.VCF11},
	{0x7B, event.VCF12},
	{0x7C, event.VCF13},
	{0x7D, event.VCF14},
	{0x7E, event.VCF15},
	{0x7F, event.VCF16},
	{0x80, event.VCF17},
	{0x81, event.VCF18},
	{0x82, event.VCF19},
	{0x83, event.VCF20},
	{0x84, event.VCF21},
	{0x85, event.VCF22},
	{0x86, event.VCF23},
	{0x87, event.VCF24},
	{0x90, event.VCNumLock},
	{0x91, event.VCScrollLock},
	{0x92, event.VCKpEquals},
	{0xA0, event.VCShiftL},
	{0xA1, event.VCShiftR},
	{0xA2, event.VCControlL},
	{0xA3, event.VCControlR},
	{0xA4, event.VCAltL},
	{0xA5, event.VCAltR},
	{0xA6, event.VCBrowserBack},
	{0xA7, event.VCBrowserForward},
	{0xA8, event.VCBrowserRefresh},
	{0xA9, event.VCBrowserStop},
	{0xAA, event.VCBrowserSearch},
	{0xAB, event.VCBrowserFavorites},
	{0xAC, event.VCBrowserHome},
	{0xAD, event.VCVolumeMute},
	{0xAE, event.VCVolumeDown},
	{0xAF, event.VCVolumeUp},
	{0xB0, event.VCMediaNext},
	{0xB1, event.VCMediaPrevious},
	{0xB2, event.VCMediaStop},
	{0xB3, event.VCMediaPlay},
	{0xB4, event.VCAppMail},
	{0xB5, event.VCMediaSelect},
	{0xB6, event.VCAppMusic},
	{0xB7, event.VCAppCalculator},
	{0xBA, event.VCSemicolon},
	{0xBB, event.VCEquals},
	{0xBC, event.VCComma},
	{0xBD, event.VCMinus},
	{0xBE, event.VCPeriod},
	{0xBF, event.VCSlash},
	{0xC0, event.VCBackquote},
	{0xDB, event.VCOpenBracket},
	{0xDC, event.VCBackSlash},
	{0xDD, event.VCCloseBracket},
	{0xDE, event.VCQuote},
	{0xE2, event.VCLesserGreater},
})

// Navigation keys report the keypad code when the extended flag is clear, which is
// how Windows delivers the keypad with NumLock off.
var win32KeypadNav = map[uint16]uint16{
	event.VCInsert:   event.VCKpInsert,
	event.VCDelete:   event.VCKpDelete,
	event.VCHome:     event.VCKpHome,
	event.VCEnd:      event.VCKpEnd,
	event.VCPageUp:   event.VCKpPageUp,
	event.VCPageDown: event.VCKpPageDown,
	event.VCUp:       event.VCKpUp,
	event.VCDown:     event.VCKpDown,
	event.VCLeft:     event.VCKpLeft,
	event.VCRight:    event.VCKpRight,
	event.VCClear:    event.VCKpClear,
}

// Virtual codes whose native key carries the extended-key flag.
var win32Extended = map[uint16]bool{
	event.VCKpEnter:     true,
	event.VCControlR:    true,
	event.VCAltR:        true,
	event.VCKpDivide:    true,
	event.VCPrintscreen: true,
	event.VCInsert:      true,
	event.VCDelete:      true,
	event.VCHome:        true,
	event.VCEnd:         true,
	event.VCPageUp:      true,
	event.VCPageDown:    true,
	event.VCUp:          true,
	event.VCDown:        true,
	event.VCLeft:        true,
	event.VCRight:       true,
	event.VCMetaL:       true,
	event.VCMetaR:       true,
	event.VCContextMenu: true,
	event.VCNumLock:     true,
}

// VCFromWindows translates a Windows virtual-key code into a virtual key code.
// extended is the LLKHF_EXTENDED flag of the notification.
func VCFromWindows(vk uint16, extended bool) uint16 {
	if (vk >= '0' && vk <= '9') || (vk >= 'A' && vk <= 'Z') {
		return asciiVC[vk]
	}
	vc, ok := win32Keys.vc(vk)
	if !ok {
		return event.VCUndefined
	}
	switch {
	case vc == event.VCEnter && extended:
		return event.VCKpEnter
	case vc == event.VCControlL && extended:
		return event.VCControlR
	case vc == event.VCAltL && extended:
		return event.VCAltR
	case !extended:
		if kp, ok := win32KeypadNav[vc]; ok {
			return kp
		}
	}
	return vc
}

// WindowsFromVC translates a virtual key code into a Windows virtual-key code and
// whether it must be sent with the extended-key flag.
func WindowsFromVC(vc uint16) (uint16, bool, bool) {
	for nav, kp := range win32KeypadNav {
		if kp == vc {
			vk, _ := win32Keys.native(nav)
			return vk, false, true
		}
	}
	if vc == event.VCKpEnter {
		return 0x0D, true, true
	}
	if vk, ok := asciiVK[vc]; ok {
		return vk, false, true
	}
	vk, ok := win32Keys.native(vc)
	if !ok {
		return 0, false, false
	}
	switch vc {
	case event.VCShiftL:
		vk = 0xA0
	case event.VCControlL:
		vk = 0xA2
	case event.VCAltL:
		vk = 0xA4
	}
	return vk, win32Extended[vc], true
}

// asciiVC maps the letter and digit virtual-key codes, which equal their ASCII
// characters, to virtual key codes.
var asciiVC = map[uint16]uint16{
	'0': event.VC0, '1': event.VC1, '2': event.VC2, '3': event.VC3, '4': event.VC4,
	'5': event.VC5, '6': event.VC6, '7': event.VC7, '8': event.VC8, '9': event.VC9,
	'A': event.VCA, 'B': event.VCB, 'C': event.VCC, 'D': event.VCD, 'E': event.VCE,
	'F': event.VCF, 'G': event.VCG, 'H': event.VCH, 'I': event.VCI, 'J': event.VCJ,
	'K': event.VCK, 'L': event.VCL, 'M': event.VCM, 'N': event.VCN, 'O': event.VCO,
	'P': event.VCP, 'Q': event.VCQ, 'R': event.VCR, 'S': event.VCS, 'T': event.VCT,
	'U': event.VCU, 'V': event.VCV, 'W': event.VCW, 'X': event.VCX, 'Y': event.VCY,
	'Z': event.VCZ,
}

var asciiVK = func() map[uint16]uint16 {
	m := make(map[uint16]uint16, len(asciiVC))
	for vk, vc := range asciiVC {
		m[vc] = vk
	}
	return m
}()
