package event

import (
	"fmt"
	"strings"
)

// Virtual key codes. They are platform-neutral logical codes that native key codes are
// translated into; most of them follow PC/AT set 1 scan codes.
const (
	VCEscape           uint16 = 0x0001
	VCF1               uint16 = 0x003B
	VCF2               uint16 = 0x003C
	VCF3               uint16 = 0x003D
	VCF4               uint16 = 0x003E
	VCF5               uint16 = 0x003F
	VCF6               uint16 = 0x0040
	VCF7               uint16 = 0x0041
	VCF8               uint16 = 0x0042
	VCF9               uint16 = 0x0043
	VCF10              uint16 = 0x0044
	VCF11              uint16 = 0x0057
	VCF12              uint16 = 0x0058
	VCF13              uint16 = 0x005B
	VCF14              uint16 = 0x005C
	VCF15              uint16 = 0x005D
	VCF16              uint16 = 0x0063
	VCF17              uint16 = 0x0064
	VCF18              uint16 = 0x0065
	VCF19              uint16 = 0x0066
	VCF20              uint16 = 0x0067
	VCF21              uint16 = 0x0068
	VCF22              uint16 = 0x0069
	VCF23              uint16 = 0x006A
	VCF24              uint16 = 0x006B
	VCBackquote        uint16 = 0x0029
	VC1                uint16 = 0x0002
	VC2                uint16 = 0x0003
	VC3                uint16 = 0x0004
	VC4                uint16 = 0x0005
	VC5                uint16 = 0x0006
	VC6                uint16 = 0x0007
	VC7                uint16 = 0x0008
	VC8                uint16 = 0x0009
	VC9                uint16 = 0x000A
	VC0                uint16 = 0x000B
	VCMinus            uint16 = 0x000C
	VCEquals           uint16 = 0x000D
	VCBackspace        uint16 = 0x000E
	VCTab              uint16 = 0x000F
	VCCapsLock         uint16 = 0x003A
	VCA                uint16 = 0x001E
	VCB                uint16 = 0x0030
	VCC                uint16 = 0x002E
	VCD                uint16 = 0x0020
	VCE                uint16 = 0x0012
	VCF                uint16 = 0x0021
	VCG                uint16 = 0x0022
	VCH                uint16 = 0x0023
	VCI                uint16 = 0x0017
	VCJ                uint16 = 0x0024
	VCK                uint16 = 0x0025
	VCL                uint16 = 0x0026
	VCM                uint16 = 0x0032
	VCN                uint16 = 0x0031
	VCO                uint16 = 0x0018
	VCP                uint16 = 0x0019
	VCQ                uint16 = 0x0010
	VCR                uint16 = 0x0013
	VCS                uint16 = 0x001F
	VCT                uint16 = 0x0014
	VCU                uint16 = 0x0016
	VCV                uint16 = 0x002F
	VCW                uint16 = 0x0011
	VCX                uint16 = 0x002D
	VCY                uint16 = 0x0015
	VCZ                uint16 = 0x002C
	VCOpenBracket      uint16 = 0x001A
	VCCloseBracket     uint16 = 0x001B
	VCBackSlash        uint16 = 0x002B
	VCSemicolon        uint16 = 0x0027
	VCQuote            uint16 = 0x0028
	VCEnter            uint16 = 0x001C
	VCComma            uint16 = 0x0033
	VCPeriod           uint16 = 0x0034
	VCSlash            uint16 = 0x0035
	VCSpace            uint16 = 0x0039
	VCPrintscreen      uint16 = 0x0E37
	VCScrollLock       uint16 = 0x0046
	VCPause            uint16 = 0x0E45
	VCLesserGreater    uint16 = 0x0E46
	VCInsert           uint16 = 0x0E52
	VCDelete           uint16 = 0x0E53
	VCHome             uint16 = 0x0E47
	VCEnd              uint16 = 0x0E4F
	VCPageUp           uint16 = 0x0E49
	VCPageDown         uint16 = 0x0E51
	VCUp               uint16 = 0xE048
	VCLeft             uint16 = 0xE04B
	VCClear            uint16 = 0xE04C
	VCRight            uint16 = 0xE04D
	VCDown             uint16 = 0xE050
	VCNumLock          uint16 = 0x0045
	VCKpDivide         uint16 = 0x0E35
	VCKpMultiply       uint16 = 0x0037
	VCKpSubtract       uint16 = 0x004A
	VCKpEquals         uint16 = 0x0E0D
	VCKpAdd            uint16 = 0x004E
	VCKpEnter          uint16 = 0x0E1C
	VCKpSeparator      uint16 = 0x0053
	VCKp1              uint16 = 0x004F
	VCKp2              uint16 = 0x0050
	VCKp3              uint16 = 0x0051
	VCKp4              uint16 = 0x004B
	VCKp5              uint16 = 0x004C
	VCKp6              uint16 = 0x004D
	VCKp7              uint16 = 0x0047
	VCKp8              uint16 = 0x0048
	VCKp9              uint16 = 0x0049
	VCKp0              uint16 = 0x0052
	VCKpEnd            uint16 = 0xEE00 | VCKp1
	VCKpDown           uint16 = 0xEE00 | VCKp2
	VCKpPageDown       uint16 = 0xEE00 | VCKp3
	VCKpLeft           uint16 = 0xEE00 | VCKp4
	VCKpClear          uint16 = 0xEE00 | VCKp5
	VCKpRight          uint16 = 0xEE00 | VCKp6
	VCKpHome           uint16 = 0xEE00 | VCKp7
	VCKpUp             uint16 = 0xEE00 | VCKp8
	VCKpPageUp         uint16 = 0xEE00 | VCKp9
	VCKpInsert         uint16 = 0xEE00 | VCKp0
	VCKpDelete         uint16 = 0xEE00 | VCKpSeparator
	VCShiftL           uint16 = 0x002A
	VCShiftR           uint16 = 0x0036
	VCControlL         uint16 = 0x001D
	VCControlR         uint16 = 0x0E1D
	VCAltL             uint16 = 0x0038
	VCAltR             uint16 = 0x0E38
	VCMetaL            uint16 = 0x0E5B
	VCMetaR            uint16 = 0x0E5C
	VCContextMenu      uint16 = 0x0E5D
	VCPower            uint16 = 0xE05E
	VCSleep            uint16 = 0xE05F
	VCWake             uint16 = 0xE063
	VCMediaPlay        uint16 = 0xE022
	VCMediaStop        uint16 = 0xE024
	VCMediaPrevious    uint16 = 0xE010
	VCMediaNext        uint16 = 0xE019
	VCMediaSelect      uint16 = 0xE06D
	VCMediaEject       uint16 = 0xE02C
	VCVolumeMute       uint16 = 0xE020
	VCVolumeUp         uint16 = 0xE030
	VCVolumeDown       uint16 = 0xE02E
	VCAppMail          uint16 = 0xE06C
	VCAppCalculator    uint16 = 0xE021
	VCAppMusic         uint16 = 0xE03C
	VCAppPictures      uint16 = 0xE064
	VCBrowserSearch    uint16 = 0xE065
	VCBrowserHome      uint16 = 0xE032
	VCBrowserBack      uint16 = 0xE06A
	VCBrowserForward   uint16 = 0xE069
	VCBrowserStop      uint16 = 0xE068
	VCBrowserRefresh   uint16 = 0xE067
	VCBrowserFavorites uint16 = 0xE066
	VCKatakana         uint16 = 0x0070
	VCUnderscore       uint16 = 0x0073
	VCFurigana         uint16 = 0x0077
	VCKanji            uint16 = 0x0079
	VCHiragana         uint16 = 0x007B
	VCYen              uint16 = 0x007D
	VCKpComma          uint16 = 0x007E
	VCSunHelp          uint16 = 0xFF75
	VCSunStop          uint16 = 0xFF78
	VCSunProps         uint16 = 0xFF76
	VCSunFront         uint16 = 0xFF77
	VCSunOpen          uint16 = 0xFF74
	VCSunFind          uint16 = 0xFF7E
	VCSunAgain         uint16 = 0xFF79
	VCSunUndo          uint16 = 0xFF7A
	VCSunCopy          uint16 = 0xFF7C
	VCSunInsert        uint16 = 0xFF7D
	VCSunCut           uint16 = 0xFF7B
	VCUndefined        uint16 = 0x0000

	// CharUndefined is the keychar of a key event that produced no character.
	CharUndefined uint16 = 0xFFFF
)

var keyNames = map[uint16]string{
	VCEscape:           "Escape",
	VCF1:               "F1",
	VCF2:               "F2",
	VCF3:               "F3",
	VCF4:               "F4",
	VCF5:               "F5",
	VCF6:               "F6",
	VCF7:               "F7",
	VCF8:               "F8",
	VCF9:               "F9",
	VCF10:              "F10",
	VCF11:              "F11",
	VCF12:              "F12",
	VCF13:              "F13",
	VCF14:              "F14",
	VCF15:              "F15",
	VCF16:              "F16",
	VCF17:              "F17",
	VCF18:              "F18",
	VCF19:              "F19",
	VCF20:              "F20",
	VCF21:              "F21",
	VCF22:              "F22",
	VCF23:              "F23",
	VCF24:              "F24",
	VCBackquote:        "Backquote",
	VC1:                "1",
	VC2:                "2",
	VC3:                "3",
	VC4:                "4",
	VC5:                "5",
	VC6:                "6",
	VC7:                "7",
	VC8:                "8",
	VC9:                "9",
	VC0:                "0",
	VCMinus:            "Minus",
	VCEquals:           "Equals",
	VCBackspace:        "Backspace",
	VCTab:              "Tab",
	VCCapsLock:         "Caps Lock",
	VCA:                "A",
	VCB:                "B",
	VCC:                "C",
	VCD:                "D",
	VCE:                "E",
	VCF:                "F",
	VCG:                "G",
	VCH:                "H",
	VCI:                "I",
	VCJ:                "J",
	VCK:                "K",
	VCL:                "L",
	VCM:                "M",
	VCN:                "N",
	VCO:                "O",
	VCP:                "P",
	VCQ:                "Q",
	VCR:                "R",
	VCS:                "S",
	VCT:                "T",
	VCU:                "U",
	VCV:                "V",
	VCW:                "W",
	VCX:                "X",
	VCY:                "Y",
	VCZ:                "Z",
	VCOpenBracket:      "Open Bracket",
	VCCloseBracket:     "Close Bracket",
	VCBackSlash:        "Back Slash",
	VCSemicolon:        "Semicolon",
	VCQuote:            "Quote",
	VCEnter:            "Enter",
	VCComma:            "Comma",
	VCPeriod:           "Period",
	VCSlash:            "Slash",
	VCSpace:            "Space",
	VCPrintscreen:      "Printscreen",
	VCScrollLock:       "Scroll Lock",
	VCPause:            "Pause",
	VCLesserGreater:    "Lesser Greater",
	VCInsert:           "Insert",
	VCDelete:           "Delete",
	VCHome:             "Home",
	VCEnd:              "End",
	VCPageUp:           "Page Up",
	VCPageDown:         "Page Down",
	VCUp:               "Up",
	VCLeft:             "Left",
	VCClear:            "Clear",
	VCRight:            "Right",
	VCDown:             "Down",
	VCNumLock:          "Num Lock",
	VCKpDivide:         "Numpad Divide",
	VCKpMultiply:       "Numpad Multiply",
	VCKpSubtract:       "Numpad Subtract",
	VCKpEquals:         "Numpad Equals",
	VCKpAdd:            "Numpad Add",
	VCKpEnter:          "Numpad Enter",
	VCKpSeparator:      "Numpad Separator",
	VCKp1:              "Numpad 1",
	VCKp2:              "Numpad 2",
	VCKp3:              "Numpad 3",
	VCKp4:              "Numpad 4",
	VCKp5:              "Numpad 5",
	VCKp6:              "Numpad 6",
	VCKp7:              "Numpad 7",
	VCKp8:              "Numpad 8",
	VCKp9:              "Numpad 9",
	VCKp0:              "Numpad 0",
	VCKpEnd:            "Numpad End",
	VCKpDown:           "Numpad Down",
	VCKpPageDown:       "Numpad Page Down",
	VCKpLeft:           "Numpad Left",
	VCKpClear:          "Numpad Clear",
	VCKpRight:          "Numpad Right",
	VCKpHome:           "Numpad Home",
	VCKpUp:             "Numpad Up",
	VCKpPageUp:         "Numpad Page Up",
	VCKpInsert:         "Numpad Insert",
	VCKpDelete:         "Numpad Delete",
	VCShiftL:           "Shift L",
	VCShiftR:           "Shift R",
	VCControlL:         "Control L",
	VCControlR:         "Control R",
	VCAltL:             "Alt L",
	VCAltR:             "Alt R",
	VCMetaL:            "Meta L",
	VCMetaR:            "Meta R",
	VCContextMenu:      "Context Menu",
	VCPower:            "Power",
	VCSleep:            "Sleep",
	VCWake:             "Wake",
	VCMediaPlay:        "Media Play",
	VCMediaStop:        "Media Stop",
	VCMediaPrevious:    "Media Previous",
	VCMediaNext:        "Media Next",
	VCMediaSelect:      "Media Select",
	VCMediaEject:       "Media Eject",
	VCVolumeMute:       "Volume Mute",
	VCVolumeUp:         "Volume Up",
	VCVolumeDown:       "Volume Down",
	VCAppMail:          "App Mail",
	VCAppCalculator:    "App Calculator",
	VCAppMusic:         "App Music",
	VCAppPictures:      "App Pictures",
	VCBrowserSearch:    "Browser Search",
	VCBrowserHome:      "Browser Home",
	VCBrowserBack:      "Browser Back",
	VCBrowserForward:   "Browser Forward",
	VCBrowserStop:      "Browser Stop",
	VCBrowserRefresh:   "Browser Refresh",
	VCBrowserFavorites: "Browser Favorites",
	VCKatakana:         "Katakana",
	VCUnderscore:       "Underscore",
	VCFurigana:         "Furigana",
	VCKanji:            "Kanji",
	VCHiragana:         "Hiragana",
	VCYen:              "Yen",
	VCKpComma:          "Numpad Comma",
	VCSunHelp:          "Sun Help",
	VCSunStop:          "Sun Stop",
	VCSunProps:         "Sun Props",
	VCSunFront:         "Sun Front",
	VCSunOpen:          "Sun Open",
	VCSunFind:          "Sun Find",
	VCSunAgain:         "Sun Again",
	VCSunUndo:          "Sun Undo",
	VCSunCopy:          "Sun Copy",
	VCSunInsert:        "Sun Insert",
	VCSunCut:           "Sun Cut",
	VCUndefined:        "Undefined",
}

// KeyName returns a human-readable name for a virtual key code, or a hex form for codes
// outside the table.
func KeyName(code uint16) string {
	if name, ok := keyNames[code]; ok {
		return name
	}
	return fmt.Sprintf("0x%04X", code)
}

var keyCodesByName = func() map[string]uint16 {
	m := make(map[string]uint16, len(keyNames))
	for code, name := range keyNames {
		if code != VCUndefined {
			m[strings.ToUpper(name)] = code
		}
	}
	return m
}()

// ParseKeyName is the inverse of KeyName. It ignores case and surrounding space.
func ParseKeyName(name string) (uint16, bool) {
	code, ok := keyCodesByName[strings.ToUpper(strings.TrimSpace(name))]
	return code, ok
}
