// Package protocol defines the encodings used to ship events out of the process: a JSON
// message envelope for the WebSocket stream and a fixed-size binary frame.
package protocol

import (
	"encoding/json"
	"fmt"

	"inputhook/internal/event"
)

// MessageType defines the type of a stream message
type MessageType string

const (
	// TypeHello is sent once when a subscriber connects
	TypeHello MessageType = "hello"

	// TypeEvent carries one InputEvent
	TypeEvent MessageType = "event"

	// TypeDropped reports events discarded because the subscriber fell behind
	TypeDropped MessageType = "dropped"

	// TypePing can be used for application-level heartbeats if needed
	TypePing MessageType = "ping"
)

// Message is the generic container for all stream messages
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// HelloPayload is the payload for TypeHello
type HelloPayload struct {
	Version string `json:"version"`
	State   string `json:"state"`
	Format  string `json:"format"` // "json" or "binary"
}

// DroppedPayload is the payload for TypeDropped
type DroppedPayload struct {
	Count uint64 `json:"count"`
}

// NewMessage wraps payload in a message of type t.
func NewMessage(t MessageType, payload any) (Message, error) {
	msg := Message{Type: t}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("protocol: encode %s payload: %w", t, err)
	}
	msg.Payload = raw
	return msg, nil
}

// EventMessage wraps e in a TypeEvent message.
func EventMessage(e event.InputEvent) (Message, error) {
	return NewMessage(TypeEvent, e)
}

// Event extracts the event of a TypeEvent message.
func (m Message) Event() (event.InputEvent, error) {
	var e event.InputEvent
	if m.Type != TypeEvent {
		return e, fmt.Errorf("protocol: %s message carries no event", m.Type)
	}
	if err := json.Unmarshal(m.Payload, &e); err != nil {
		return e, fmt.Errorf("protocol: decode event: %w", err)
	}
	return e, nil
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("protocol: %s message has no payload", m.Type)
	}
	return json.Unmarshal(m.Payload, v)
}
