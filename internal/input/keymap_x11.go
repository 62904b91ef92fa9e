package input

import "inputhook/internal/event"

// X11 keycodes are evdev codes offset by 8. Below 84 the evdev codes coincide with
// set 1 scan codes, which is what the virtual codes follow.
const x11KeycodeOffset = 8

var x11Keys = newKeyTable([]codePair{
	{86, event.VCLesserGreater},
	{87, event.VCF11},
	{88, event.VCF12},
	{89, event.VCUnderscore},
	{90, event.VCKatakana},
	{91, event.VCHiragana},
	{92, event.VCKanji},
	{93, event.VCKatakana},
	{94, event.VCHiragana},
	{95, event.VCKpComma},
	{96, event.VCKpEnter},
	{97, event.VCControlR},
	{98, event.VCKpDivide},
	{99, event.VCPrintscreen},
	{100, event.VCAltR},
	{102, event.VCHome},
	{103, event.VCUp},
	{104, event.VCPageUp},
	{105, event.VCLeft},
	{106, event.VCRight},
	{107, event.VCEnd},
	{108, event.VCDown},
	{109, event.VCPageDown},
	{110, event.VCInsert},
	{111, event.VCDelete},
	{113, event.VCVolumeMute},
	{114, event.VCVolumeDown},
	{115, event.VCVolumeUp},
	{116, event.VCPower},
	{117, event.VCKpEquals},
	{119, event.VCPause},
	{121, event.VCKpComma},
	{124, event.VCYen},
	{125, event.VCMetaL},
	{126, event.VCMetaR},
	{127, event.VCContextMenu},
	{128, event.VCSunStop},
	{129, event.VCSunAgain},
	{130, event.VCSunProps},
	{131, event.VCSunUndo},
	{132, event.VCSunFront},
	{133, event.VCSunCopy},
	{134, event.VCSunOpen},
	{135, event.VCSunInsert},
	{136, event.VCSunFind},
	{137, event.VCSunCut},
	{138, event.VCSunHelp},
	{139, event.VCContextMenu},
	{140, event.VCAppCalculator},
	{142, event.VCSleep},
	{143, event.VCWake},
	{155, event.VCAppMail},
	{156, event.VCBrowserFavorites},
	{158, event.VCBrowserBack},
	{159, event.VCBrowserForward},
	{161, event.VCMediaEject},
	{163, event.VCMediaNext},
	{164, event.VCMediaPlay},
	{165, event.VCMediaPrevious},
	{166, event.VCMediaStop},
	{172, event.VCBrowserHome},
	{173, event.VCBrowserRefresh},
	{183, event.VCF13},
	{184, event.VCF14},
	{185, event.VCF15},
	{186, event.VCF16},
	{187, event.VCF17},
	{188, event.VCF18},
	{189, event.VCF19},
	{190, event.VCF20},
	{191, event.VCF21},
	{192, event.VCF22},
	{193, event.VCF23},
	{194, event.VCF24},
	{217, event.VCBrowserSearch},
	{226, event.VCMediaSelect},
})

// VCFromX11 translates an X11 keycode into a virtual key code, or VCUndefined.
func VCFromX11(keycode uint8) uint16 {
	if keycode < x11KeycodeOffset {
		return event.VCUndefined
	}
	code := uint16(keycode) - x11KeycodeOffset
	if code >= 1 && code <= 83 {
		return code
	}
	if vc, ok := x11Keys.vc(code); ok {
		return vc
	}
	return event.VCUndefined
}

// X11FromVC translates a virtual key code into an X11 keycode.
func X11FromVC(vc uint16) (uint8, bool) {
	if vc >= 1 && vc <= 83 {
		return uint8(vc + x11KeycodeOffset), true
	}
	code, ok := x11Keys.native(vc)
	if !ok || code+x11KeycodeOffset > 255 {
		return 0, false
	}
	return uint8(code + x11KeycodeOffset), true
}
