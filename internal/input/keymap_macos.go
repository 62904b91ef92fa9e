package input

import "inputhook/internal/event"

// macOS virtual keycodes (kVK_*) are layout-position codes from the HIToolbox
// Events.h table.
var macKeys = newKeyTable([]codePair{
	{0x00, event.VCA},
	{0x01, event.VCS},
	{0x02, event.VCD},
	{0x03, event.VCF},
	{0x04, event.VCH},
	{0x05, event.VCG},
	{0x06, event.VCZ},
	{0x07, event.VCX},
	{0x08, event.VCC},
	{0x09, event.VCV},
	{0x0A, event.VCLesserGreater},
	{0x0B, event.VCB},
	{0x0C, event.VCQ},
	{0x0D, event.VCW},
	{0x0E, event.VCE},
	{0x0F, event.VCR},
	{0x10, event.VCY},
	{0x11, event.VCT},
	{0x12, event.VC1},
	{0x13, event.VC2},
	{0x14, event.VC3},
	{0x15, event.VC4},
	{0x16, event.VC6},
	{0x17, event.VC5},
	{0x18, event.VCEquals},
	{0x19, event.VC9},
	{0x1A, event.VC7},
	{0x1B, event.VCMinus},
	{0x1C, event.VC8},
	{0x1D, event.VC0},
	{0x1E, event.VCCloseBracket},
	{0x1F, event.VCO},
	{0x20, event.VCU},
	{0x21, event.VCOpenBracket},
	{0x22, event.VCI},
	{0x23, event.VCP},
	{0x24, event.VCEnter},
	{0x25, event.VCL},
	{0x26, event.VCJ},
	{0x27, event.VCQuote},
	{0x28, event.VCK},
	{0x29, event.VCSemicolon},
	{0x2A, event.VCBackSlash},
	{0x2B, event.VCComma},
	{0x2C, event.VCSlash},
	{0x2D, event.VCN},
	{0x2E, event.VCM},
	{0x2F, event.VCPeriod},
	{0x30, event.VCTab},
	{0x31, event.VCSpace},
	{0x32, event.VCBackquote},
	{0x33, event.VCBackspace},
	{0x35, event.VCEscape},
	{0x36, event.VCMetaR},
	{0x37, event.VCMetaL},
	{0x38, event.VCShiftL},
	{0x39, event.VCCapsLock},
	{0x3A, event.VCAltL},
	{0x3B, event.VCControlL},
	{0x3C, event.VCShiftR},
	{0x3D, event.VCAltR},
	{0x3E, event.VCControlR},
	{0x40, event.VCF17},
	{0x41, event.VCKpSeparator},
	{0x43, event.VCKpMultiply},
	{0x45, event.VCKpAdd},
	{0x47, event.VCNumLock},
	{0x48, event.VCVolumeUp},
	{0x49, event.VCVolumeDown},
	{0x4A, event.VCVolumeMute},
	{0x4B, event.VCKpDivide},
	{0x4C, event.VCKpEnter},
	{0x4E, event.VCKpSubtract},
	{0x4F, event.VCF18},
	{0x50, event.VCF19},
	{0x51, event.VCKpEquals},
	{0x52, event.VCKp0},
	{0x53, event.VCKp1},
	{0x54, event.VCKp2},
	{0x55, event.VCKp3},
	{0x56, event.VCKp4},
	{0x57, event.VCKp5},
	{0x58, event.VCKp6},
	{0x59, event.VCKp7},
	{0x5A, event.VCF20},
	{0x5B, event.VCKp8},
	{0x5C, event.VCKp9},
	{0x5D, event.VCYen},
	{0x5E, event.VCUnderscore},
	{0x5F, event.VCKpComma},
	{0x60, event.VCF5},
	{0x61, event.VCF6},
	{0x62, event.VCF7},
	{0x63, event.VCF3},
	{0x64, event.VCF8},
	{0x65, event.VCF9},
	{0x66, event.VCHiragana},
	{0x67, event.VCF11},
	{0x68, event.VCKatakana},
	{0x69, event.VCF13},
	{0x6A, event.VCF16},
	{0x6B, event.VCF14},
	{0x6D, event.VCF10},
	{0x6E, event.VCContextMenu},
	{0x6F, event.VCF12},
	{0x71, event.VCF15},
	{0x72, event.VCInsert},
	{0x73, event.VCHome},
	{0x74, event.VCPageUp},
	{0x75, event.VCDelete},
	{0x76, event.VCF4},
	{0x77, event.VCEnd},
	{0x78, event.VCF2},
	{0x79, event.VCPageDown},
	{0x7A, event.VCF1},
	{0x7B, event.VCLeft},
	{0x7C, event.VCRight},
	{0x7D, event.VCDown},
	{0x7E, event.VCUp},
})

// VCFromMac translates a macOS virtual keycode into a virtual key code, or VCUndefined.
func VCFromMac(keycode uint16) uint16 {
	if vc, ok := macKeys.vc(keycode); ok {
		return vc
	}
	return event.VCUndefined
}

// MacFromVC translates a virtual key code into a macOS virtual keycode.
func MacFromVC(vc uint16) (uint16, bool) {
	return macKeys.native(vc)
}
