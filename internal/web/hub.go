package web

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jukebox/internal/player"
	"github.com/desertthunder/jukebox/internal/shared"
)

const clientBuffer = 16

// event is a single server-sent event.
type event struct {
	name string
	data []byte
}

// client is one connected browser tab.
type client struct {
	id     string
	events chan event
}

// Hub fans player commands out to every connected browser.
//
// Hub implements [player.Widget]: a load is broadcast to all clients and fails only when nobody is connected.
// Sends never block; a client whose buffer is full misses the event.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*client
	logger  *log.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Hub{
		clients: make(map[string]*client),
		logger:  shared.WithLogger(logger, "component", "hub"),
	}
}

// Load broadcasts cmd to every client.
func (h *Hub) Load(cmd player.Command) error {
	ev, err := newEvent("load", cmd)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) == 0 {
		return fmt.Errorf("%w: no player connected", shared.ErrServiceUnavailable)
	}

	delivered := 0
	for _, c := range h.clients {
		if h.send(c, ev) {
			delivered++
		}
	}
	if delivered == 0 {
		return fmt.Errorf("%w: every player is lagging", shared.ErrServiceUnavailable)
	}
	return nil
}

// Widget returns a widget that addresses only the client with id.
func (h *Hub) Widget(id string) (player.Widget, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[id]; !ok {
		return nil, false
	}

	return player.WidgetFunc(func(cmd player.Command) error {
		ev, err := newEvent("load", cmd)
		if err != nil {
			return err
		}

		h.mu.Lock()
		defer h.mu.Unlock()

		c, ok := h.clients[id]
		if !ok {
			return fmt.Errorf("%w: player %s disconnected", shared.ErrServiceUnavailable, id)
		}
		if !h.send(c, ev) {
			return fmt.Errorf("%w: player %s is lagging", shared.ErrServiceUnavailable, id)
		}
		return nil
	}), true
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) connect() *client {
	c := &client{id: shared.GenerateID(), events: make(chan event, clientBuffer)}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	h.logger.Info("player connected", "client", c.id)
	return c
}

// disconnect removes the client and reports whether it was the last one.
func (h *Hub) disconnect(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, id)
	h.logger.Info("player disconnected", "client", id, "remaining", len(h.clients))
	return len(h.clients) == 0
}

func (h *Hub) empty() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) == 0
}

// send must be called with h.mu held.
func (h *Hub) send(c *client, ev event) bool {
	select {
	case c.events <- ev:
		return true
	default:
		h.logger.Warn("dropped event for slow client", "client", c.id, "event", ev.name)
		return false
	}
}

func newEvent(name string, v any) (event, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return event{}, fmt.Errorf("failed to encode %s event: %w", name, err)
	}
	return event{name: name, data: data}, nil
}
