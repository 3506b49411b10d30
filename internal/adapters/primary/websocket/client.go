package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/pixwingai/pixwing-site/internal/adapters/primary/validation"
	"github.com/pixwingai/pixwing-site/internal/core/domain"
	"github.com/pixwingai/pixwing-site/internal/core/services"
	"github.com/pixwingai/pixwing-site/internal/infrastructure/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Inbound message budget; resize events arrive in bursts.
	messagesPerSecond = 20
	messageBurst      = 40
)

// Client is one mounted activity widget bound to a websocket connection.
type Client struct {
	Hub *Hub

	// The websocket connection.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan ServerMessage

	// SessionID identifies this connection in logs.
	SessionID uuid.UUID

	widget  *services.ActivityWidget
	signal  *services.ViewportSignal
	limiter *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc

	// mu guards closed; Send is never written after it is closed.
	mu        sync.Mutex
	closed    bool
	closeOnce sync.Once

	logger *slog.Logger
}

// NewClient creates a client owning widget.
func NewClient(hub *Hub, conn *websocket.Conn, widget *services.ActivityWidget, logger *slog.Logger) *Client {
	sessionID := uuid.New()
	ctx, cancel := context.WithCancel(logging.WithSessionID(context.Background(), sessionID.String()))

	return &Client{
		Hub:       hub,
		Conn:      conn,
		Send:      make(chan ServerMessage, 16),
		SessionID: sessionID,
		widget:    widget,
		signal:    services.NewViewportSignal(),
		limiter:   rate.NewLimiter(messagesPerSecond, messageBurst),
		ctx:       ctx,
		cancel:    cancel,
		logger:    logger.With(slog.String("session_id", sessionID.String())),
	}
}

// Start registers the client, starts its pumps and loads the series.
func (c *Client) Start() {
	if !c.Hub.register(c) {
		c.close()
		_ = c.Conn.Close()
		return
	}

	c.widget.ObserveViewport(c.signal, c.enqueueRender)

	go c.WritePump()
	go c.ReadPump()
	go func() {
		_ = c.widget.Load(c.ctx)
	}()
}

// close unmounts the widget and closes the Send channel exactly once.
func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.widget.Unmount()
		c.cancel()

		c.mu.Lock()
		c.closed = true
		close(c.Send)
		c.mu.Unlock()
	})
}

func (c *Client) enqueue(msg ServerMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) enqueueRender(r services.WidgetRender) {
	if !c.enqueue(ServerMessage{Type: MessageRender, Payload: r}) {
		c.logger.Warn("dropping render, send buffer full or closed",
			slog.String("branch", string(r.Branch)),
		)
	}
}

// ReadPump pumps messages from the websocket connection to the widget.
// This method runs in its own goroutine.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error("failed to set read deadline", slog.String("error", err.Error()))
		return
	}

	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", slog.String("error", err.Error()))
			}
			break
		}

		if !c.limiter.Allow() {
			c.logger.Debug("dropping client message over rate limit")
			continue
		}

		c.handleIncomingMessage(message)
	}
}

// WritePump pumps messages from the Send channel to the websocket connection.
// This method runs in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline", slog.String("error", err.Error()))
				return
			}

			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug("failed to send close message", slog.String("error", err.Error()))
				}
				return
			}

			if err := c.Conn.WriteJSON(msg); err != nil {
				c.logger.Error("failed to write message", slog.String("error", err.Error()))
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error("failed to set write deadline for ping", slog.String("error", err.Error()))
				return
			}

			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Debug("failed to send ping", slog.String("error", err.Error()))
				return
			}
		}
	}
}

// handleIncomingMessage processes messages received from the client
func (c *Client) handleIncomingMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		c.logger.Warn("failed to unmarshal client message", slog.String("error", err.Error()))
		return
	}

	switch msg.Type {
	case MessageViewport:
		c.handleViewport(msg.Payload)

	case MessageAnimationComplete:
		c.widget.CompleteAnimation()

	case MessagePing:
		c.enqueue(ServerMessage{Type: MessagePong})

	default:
		c.logger.Debug("received unknown message type", slog.String("type", msg.Type))
	}
}

func (c *Client) handleViewport(payload json.RawMessage) {
	var p ViewportPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		c.logger.Warn("failed to unmarshal viewport payload", slog.String("error", err.Error()))
		return
	}

	v := validation.NewValidator().
		Range("width", p.Width, 0, validation.MaxDimension).
		Range("height", p.Height, 0, validation.MaxDimension).
		Range("box.width", p.Box.Width, 0, validation.MaxDimension).
		Range("box.height", p.Box.Height, 0, validation.MaxDimension)
	if v.HasErrors() {
		c.logger.Warn("invalid viewport", slog.Any("fields", v.Errors().Errors))
		return
	}

	c.widget.SetBox(p.Box)
	c.signal.Publish(domain.Viewport{Width: p.Width, Height: p.Height})
}
