package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"

	"inputhook/internal/event"
)

// Frame layout, big-endian:
//
//	kind(1) time(8) mask(2) reserved(2)                     = 13 byte header
//	Keyboard: keycode(2) rawcode(2) keychar(2)              =  6 bytes
//	Mouse:    button(2) clicks(2) x(2) y(2)                 =  8 bytes
//	Wheel:    clicks(2) x(2) y(2) type(1) amount(2)
//	          rotation(2) direction(1)                      = 12 bytes
//
// The payload area is always 12 bytes; unused bytes are zero.
const (
	HeaderSize  = 13
	PayloadSize = 12
	FrameSize   = HeaderSize + PayloadSize
)

var (
	ErrShortFrame = errors.New("protocol: frame too short")
	ErrPadding    = errors.New("protocol: non-zero padding")
)

// EncodeEvent serializes e into a fixed-size frame.
func EncodeEvent(e event.InputEvent) ([]byte, error) {
	return AppendEvent(make([]byte, 0, FrameSize), e)
}

// AppendEvent appends the frame for e to buf.
func AppendEvent(buf []byte, e event.InputEvent) ([]byte, error) {
	if !e.Kind().Valid() {
		return buf, fmt.Errorf("protocol: cannot encode event without kind")
	}
	start := len(buf)
	buf = append(buf, byte(e.Kind()))
	buf = binary.BigEndian.AppendUint64(buf, e.Time())
	buf = binary.BigEndian.AppendUint16(buf, uint16(e.Mask()))
	buf = binary.BigEndian.AppendUint16(buf, e.Reserved())
	buf = e.AppendPayload(buf)
	for len(buf)-start < FrameSize {
		buf = append(buf, 0)
	}
	return buf, nil
}

// DecodeEvent parses one frame. The payload is rebuilt through event.FromParts, so a
// frame can never produce an event whose payload does not match its kind.
func DecodeEvent(data []byte) (event.InputEvent, error) {
	if len(data) < FrameSize {
		return event.InputEvent{}, ErrShortFrame
	}

	kind := event.Kind(data[0])
	if !kind.Valid() {
		return event.InputEvent{}, fmt.Errorf("protocol: unknown event kind %d", data[0])
	}
	t := binary.BigEndian.Uint64(data[1:9])
	mask := event.Mask(binary.BigEndian.Uint16(data[9:11]))
	reserved := binary.BigEndian.Uint16(data[11:13])

	payload := data[HeaderSize:FrameSize]
	var (
		p    event.Payload
		used int
	)
	switch {
	case kind.IsKeyboard():
		p = event.Keyboard{
			Keycode: binary.BigEndian.Uint16(payload[0:2]),
			Rawcode: binary.BigEndian.Uint16(payload[2:4]),
			Keychar: binary.BigEndian.Uint16(payload[4:6]),
		}
		used = 6
	case kind.IsMouse():
		p = event.Mouse{
			Button: binary.BigEndian.Uint16(payload[0:2]),
			Clicks: binary.BigEndian.Uint16(payload[2:4]),
			X:      int16(binary.BigEndian.Uint16(payload[4:6])),
			Y:      int16(binary.BigEndian.Uint16(payload[6:8])),
		}
		used = 8
	case kind.IsWheel():
		p = event.Wheel{
			Clicks:    binary.BigEndian.Uint16(payload[0:2]),
			X:         int16(binary.BigEndian.Uint16(payload[2:4])),
			Y:         int16(binary.BigEndian.Uint16(payload[4:6])),
			Type:      payload[6],
			Amount:    binary.BigEndian.Uint16(payload[7:9]),
			Rotation:  int16(binary.BigEndian.Uint16(payload[9:11])),
			Direction: payload[11],
		}
		used = 12
	}
	for _, b := range payload[used:] {
		if b != 0 {
			return event.InputEvent{}, ErrPadding
		}
	}

	return event.FromParts(kind, t, mask, reserved, p)
}
