package event

import (
	"encoding/json"
	"fmt"
)

// jsonEvent is the JSON shape of an InputEvent. Only the payload field matching the kind
// is populated.
type jsonEvent struct {
	Kind     Kind      `json:"kind"`
	Time     uint64    `json:"time"`
	Mask     Mask      `json:"mask"`
	Reserved uint16    `json:"reserved,omitempty"`
	Keyboard *Keyboard `json:"keyboard,omitempty"`
	Mouse    *Mouse    `json:"mouse,omitempty"`
	Wheel    *Wheel    `json:"wheel,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e InputEvent) MarshalJSON() ([]byte, error) {
	if !e.kind.Valid() {
		return nil, fmt.Errorf("event: cannot marshal event without kind")
	}
	out := jsonEvent{Kind: e.kind, Time: e.time, Mask: e.mask, Reserved: e.reserved}
	switch p := e.payload.(type) {
	case Keyboard:
		out.Keyboard = &p
	case Mouse:
		out.Mouse = &p
	case Wheel:
		out.Wheel = &p
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. The payload object must match the kind; a
// payload object for any other shape is rejected with ErrWrongVariant.
func (e *InputEvent) UnmarshalJSON(data []byte) error {
	var in jsonEvent
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	var (
		p     Payload
		count int
	)
	if in.Keyboard != nil {
		p = *in.Keyboard
		count++
	}
	if in.Mouse != nil {
		p = *in.Mouse
		count++
	}
	if in.Wheel != nil {
		p = *in.Wheel
		count++
	}
	if count > 1 {
		return fmt.Errorf("event: %s has %d payload objects", in.Kind, count)
	}

	parsed, err := FromParts(in.Kind, in.Time, in.Mask, in.Reserved, p)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
