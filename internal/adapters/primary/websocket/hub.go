package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pixwingai/pixwing-site/internal/infrastructure/metrics"
)

// Hub maintains the set of connected widget sessions.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	// done is closed when Run returns
	done chan struct{}

	// mu protects the clients map
	mu sync.RWMutex

	logger *slog.Logger
}

// NewHub creates a new WebSocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger.With(slog.String("component", "websocket_hub")),
	}
}

// Run starts the hub's event loop and blocks until ctx is cancelled, at
// which point every remaining session is closed.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

// Done is closed once the hub has stopped.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) register(c *Client) bool {
	select {
	case h.Register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) unregister(c *Client) {
	select {
	case h.Unregister <- c:
	case <-h.done:
		c.close()
	}
}

// registerClient adds a client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client.SessionID] = client
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WidgetSessions.Inc()
	h.logger.Info("client registered",
		slog.String("session_id", client.SessionID.String()),
		slog.Int("total_connections", total),
	)
}

// unregisterClient removes a client and unmounts its widget
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client.SessionID]
	delete(h.clients, client.SessionID)
	h.mu.Unlock()

	client.close()

	if ok {
		metrics.WidgetSessions.Dec()
		h.logger.Info("client unregistered",
			slog.String("session_id", client.SessionID.String()),
		)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for id, c := range h.clients {
		clients = append(clients, c)
		delete(h.clients, id)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
		metrics.WidgetSessions.Dec()
	}

	if len(clients) > 0 {
		h.logger.Info("closed widget sessions on shutdown", slog.Int("count", len(clients)))
	}
}

// GetClientCount returns the total number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
