package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// inbound
	MessageTypeMove   MessageType = "move"
	MessageTypeSelect MessageType = "select"

	// outbound
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries a move in algebraic squares, e.g. {"from":"e2","to":"e4"}.
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type SelectPayload struct {
	Square string `json:"square"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// ErrorMessage wraps err for the outbound error channel.
func ErrorMessage(err error) Message {
	payload, _ := json.Marshal(ErrorPayload{Message: err.Error()})
	return Message{Type: MessageTypeError, Payload: payload}
}
