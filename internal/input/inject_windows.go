//go:build windows

package input

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"inputhook/internal/event"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procSendInput        = user32.NewProc("SendInput")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	keyeventfExtendedKey = 0x0001
	keyeventfKeyUp       = 0x0002
	keyeventfUnicode     = 0x0004

	mouseeventfMove        = 0x0001
	mouseeventfLeftDown    = 0x0002
	mouseeventfLeftUp      = 0x0004
	mouseeventfRightDown   = 0x0008
	mouseeventfRightUp     = 0x0010
	mouseeventfMiddleDown  = 0x0020
	mouseeventfMiddleUp    = 0x0040
	mouseeventfXDown       = 0x0080
	mouseeventfXUp         = 0x0100
	mouseeventfWheel       = 0x0800
	mouseeventfHWheel      = 0x1000
	mouseeventfVirtualDesk = 0x4000
	mouseeventfAbsolute    = 0x8000

	xButton1 = 0x0001
	xButton2 = 0x0002

	wheelDelta = 120

	smXVirtualScreen  = 76
	smYVirtualScreen  = 77
	smCXVirtualScreen = 78
	smCYVirtualScreen = 79
)

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type keybdInput struct {
	WVk         uint16
	WScan       uint16
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

// input mirrors the INPUT union, sized by its largest member.
type input struct {
	Type uint32
	Mi   mouseInput
}

func keyboardInput(ki keybdInput) input {
	var in input
	in.Type = inputKeyboard
	*(*keybdInput)(unsafe.Pointer(&in.Mi)) = ki
	return in
}

type windowsInjector struct{}

var platformInjector Injector = windowsInjector{}

func (windowsInjector) Post(ev event.InputEvent) error {
	inputs, err := buildInputs(ev)
	if err != nil {
		return err
	}
	return sendInputs(inputs)
}

func buildInputs(ev event.InputEvent) ([]input, error) {
	switch p := ev.Payload().(type) {
	case event.Keyboard:
		return keyInputs(ev.Kind(), p)
	case event.Mouse:
		return mouseInputs(ev.Kind(), p)
	case event.Wheel:
		return []input{wheelInput(p)}, nil
	default:
		return nil, errNotPostable(ev.Kind())
	}
}

func keyInputs(kind event.Kind, p event.Keyboard) ([]input, error) {
	if kind == event.KeyTyped {
		if p.Keychar == event.CharUndefined {
			return nil, fmt.Errorf("input: typed event without a character")
		}
		down := keybdInput{WScan: p.Keychar, DwFlags: keyeventfUnicode}
		up := down
		up.DwFlags |= keyeventfKeyUp
		return []input{keyboardInput(down), keyboardInput(up)}, nil
	}

	vk, extended, ok := WindowsFromVC(p.Keycode)
	if !ok {
		return nil, fmt.Errorf("input: no Windows key for %s", event.KeyName(p.Keycode))
	}
	ki := keybdInput{WVk: vk}
	if extended {
		ki.DwFlags |= keyeventfExtendedKey
	}
	if kind == event.KeyReleased {
		ki.DwFlags |= keyeventfKeyUp
	}
	return []input{keyboardInput(ki)}, nil
}

func mouseInputs(kind event.Kind, p event.Mouse) ([]input, error) {
	move := absoluteMove(p.X, p.Y)
	if kind == event.MouseMoved || kind == event.MouseDragged {
		return []input{move}, nil
	}

	down, up, data, err := buttonFlags(p.Button)
	if err != nil {
		return nil, err
	}
	button := func(flags uint32) input {
		return input{Type: inputMouse, Mi: mouseInput{DwFlags: flags, MouseData: data}}
	}

	switch kind {
	case event.MousePressed:
		return []input{move, button(down)}, nil
	case event.MouseReleased:
		return []input{move, button(up)}, nil
	default:
		clicks := max(int(p.Clicks), 1)
		inputs := []input{move}
		for range clicks {
			inputs = append(inputs, button(down), button(up))
		}
		return inputs, nil
	}
}

func buttonFlags(button uint16) (down, up, data uint32, err error) {
	switch button {
	case event.Button1:
		return mouseeventfLeftDown, mouseeventfLeftUp, 0, nil
	case event.Button2:
		return mouseeventfRightDown, mouseeventfRightUp, 0, nil
	case event.Button3:
		return mouseeventfMiddleDown, mouseeventfMiddleUp, 0, nil
	case event.Button4:
		return mouseeventfXDown, mouseeventfXUp, xButton1, nil
	case event.Button5:
		return mouseeventfXDown, mouseeventfXUp, xButton2, nil
	default:
		return 0, 0, 0, fmt.Errorf("input: invalid button number: %d", button)
	}
}

// absoluteMove normalizes screen coordinates onto the 0..65535 virtual desktop range.
func absoluteMove(x, y int16) input {
	left := systemMetric(smXVirtualScreen)
	top := systemMetric(smYVirtualScreen)
	width := max(systemMetric(smCXVirtualScreen), 1)
	height := max(systemMetric(smCYVirtualScreen), 1)

	nx := (int64(x) - left) * 65535 / max(width-1, 1)
	ny := (int64(y) - top) * 65535 / max(height-1, 1)
	return input{
		Type: inputMouse,
		Mi: mouseInput{
			Dx:      int32(nx),
			Dy:      int32(ny),
			DwFlags: mouseeventfMove | mouseeventfAbsolute | mouseeventfVirtualDesk,
		},
	}
}

// wheelInput converts rotation back to WHEEL_DELTA units. Positive vertical rotation is
// toward the user, which Windows reports as a negative delta.
func wheelInput(p event.Wheel) input {
	amount := int32(p.Rotation) * wheelDelta
	flags := uint32(mouseeventfWheel)
	if p.Direction == event.WheelHorizontal {
		flags = mouseeventfHWheel
	} else {
		amount = -amount
	}
	return input{Type: inputMouse, Mi: mouseInput{MouseData: uint32(amount), DwFlags: flags}}
}

func systemMetric(index uintptr) int64 {
	r, _, _ := procGetSystemMetrics.Call(index)
	return int64(int32(r))
}

func sendInputs(inputs []input) error {
	if len(inputs) == 0 {
		return nil
	}
	sent, _, callErr := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if sent != uintptr(len(inputs)) {
		if callErr != nil && callErr != windows.ERROR_SUCCESS {
			return fmt.Errorf("input: SendInput: %w", callErr)
		}
		return fmt.Errorf("input: SendInput sent %d of %d inputs", sent, len(inputs))
	}
	return nil
}
