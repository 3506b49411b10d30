package websocket

import (
	"encoding/json"

	"github.com/pixwingai/pixwing-site/internal/core/domain"
)

// Message types exchanged with the activity widget script.
const (
	// Client to server
	MessageViewport          = "VIEWPORT"
	MessageAnimationComplete = "ANIMATION_COMPLETE"
	MessagePing              = "PING"

	// Server to client
	MessageRender = "RENDER"
	MessagePong   = "PONG"
)

// ServerMessage is a message sent to the client.
type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// ClientMessage is the structure for messages sent from the client.
type ClientMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ViewportPayload carries the window size and the measured chart container.
type ViewportPayload struct {
	Width  int        `json:"width"`
	Height int        `json:"height"`
	Box    domain.Box `json:"box"`
}
