package ws

import (
	"log"
	"sync"
)

// Hub fans assignment and status events out to every connected
// dashboard. Slow subscribers are dropped rather than allowed to
// stall the broadcast loop.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}

	events chan []byte
	joins  chan *Client
	leaves chan *Client

	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		events:  make(chan []byte, 1024),
		joins:   make(chan *Client, 128),
		leaves:  make(chan *Client, 128),
		logger:  logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.joins:
			if client == nil {
				continue
			}
			h.mu.Lock()
			h.clients[client] = struct{}{}
			total := len(h.clients)
			h.mu.Unlock()
			h.logf("ws=hub event=connect clients=%d", total)

		case client := <-h.leaves:
			if client == nil {
				continue
			}
			h.drop(client)

		case message := <-h.events:
			h.fanOut(message)
		}
	}
}

func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	h.logf("ws=hub event=disconnect clients=%d", total)
}

func (h *Hub) fanOut(message []byte) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.send <- message:
		default:
			// Full send buffer means the reader is gone or wedged.
			h.leaves <- client
		}
	}
	h.logf("ws=hub event=broadcast clients=%d", len(targets))
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.joins <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.leaves <- client
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.events <- message:
	default:
		h.logf("ws=hub event=drop reason=buffer_full")
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
