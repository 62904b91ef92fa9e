package event

// Mouse button codes.
const (
	ButtonNone uint16 = 0 // any button
	Button1    uint16 = 1 // left
	Button2    uint16 = 2 // right
	Button3    uint16 = 3 // middle
	Button4    uint16 = 4
	Button5    uint16 = 5
)

// Wheel scroll types.
const (
	WheelUnitScroll  uint8 = 1
	WheelBlockScroll uint8 = 2
)

// Wheel directions.
const (
	WheelVertical   uint8 = 3
	WheelHorizontal uint8 = 4
)
