package websocket

import (
	"context"
	"sync"

	"leo-chat/internal/domain/message"
	"leo-chat/internal/events"
)

// Hub tracks the live subscribers connected to this instance.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	// ops keeps register and unregister in call order.
	ops chan hubOp
}

type hubOp struct {
	client   *Client
	register bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		ops:     make(chan hubOp, 512),
	}
}

// Run applies registrations until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-h.ops:
			if op.register {
				h.addClient(op.client)
			} else {
				h.removeClient(op.client)
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.ops <- hubOp{client: client, register: true}
}

func (h *Hub) Unregister(client *Client) {
	h.ops <- hubOp{client: client}
}

// Deliver queues payload for every client interested in participants.
func (h *Hub) Deliver(participants []string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.Wants(participants) {
			c.SendMessage(payload)
		}
	}
}

// Relay delivers an envelope received from another instance.
func (h *Hub) Relay(payload []byte) {
	h.Deliver(events.ParticipantsOf(payload), payload)
}

// Emit implements events.Broadcaster for a single instance deployment.
func (h *Hub) Emit(ctx context.Context, event string, m message.Message) error {
	data, err := events.NewMessageEnvelope(event, m)
	if err != nil {
		return err
	}
	h.Deliver([]string{m.SenderUsername, m.ReceiverUsername}, data)
	return nil
}

func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}
