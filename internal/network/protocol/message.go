// Package protocol defines the wire format shared with the game server.
package protocol

import "encoding/json"

// Message is the envelope for every event on the wire.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MessageType is the event name inside the envelope.
type MessageType string

// Client → server events.
const (
	MsgCreateGame  MessageType = "create_game"
	MsgJoinGame    MessageType = "join_game"
	MsgPlayCard    MessageType = "play_card"
	MsgDiscardCard MessageType = "discard_card"
	MsgRpsChoice   MessageType = "rps_choice"
)

// Server → client events.
const (
	MsgGameState MessageType = "game_state"
	MsgError     MessageType = "error"
)

// Synthetic events emitted by the channel layer, never sent on the wire.
const (
	MsgConnected    MessageType = "connect"
	MsgDisconnected MessageType = "disconnect"
)

// NewMessage creates a message with an encoded payload.
func NewMessage(msgType MessageType, payload any) (*Message, error) {
	msg := &Message{Type: msgType}

	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = data
	}

	return msg, nil
}

// MustNewMessage panics on encode failure. Only for payload types the
// caller controls.
func MustNewMessage(msgType MessageType, payload any) *Message {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		panic(err)
	}
	return msg
}

// Encode serializes the message for the wire.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// Decode parses a wire message.
func Decode(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DecodePayload unmarshals the envelope payload into v.
func (m *Message) DecodePayload(v any) error {
	return json.Unmarshal(m.Payload, v)
}
