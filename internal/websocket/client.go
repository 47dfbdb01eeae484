package websocket

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	sendBuffer = 256
)

// Client is one live subscriber. A client that connected with a username only receives
// events of conversations that user takes part in; an anonymous client receives all of them.
type Client struct {
	ID       string
	Username string
	Conn     *websocket.Conn
	Send     chan []byte
	mu       sync.Mutex // serializes writes on Conn
}

func NewClient(conn *websocket.Conn, username string) *Client {
	return &Client{
		ID:       uuid.NewString(),
		Username: username,
		Conn:     conn,
		Send:     make(chan []byte, sendBuffer),
	}
}

// Wants reports whether an event between participants should reach this client.
func (c *Client) Wants(participants []string) bool {
	if c.Username == "" || len(participants) == 0 {
		return true
	}
	for _, p := range participants {
		if strings.EqualFold(p, c.Username) {
			return true
		}
	}
	return false
}

// WriteLoop drains Send onto the connection and keeps it alive with pings.
func (c *Client) WriteLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer c.close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-c.Send:
			if !ok {
				c.write(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadLoop discards inbound frames until the peer goes away. Subscribers never send
// chat traffic over the socket; reading is only needed for control frames.
func (c *Client) ReadLoop() {
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
		_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	}
}

func (c *Client) write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.Conn.WriteMessage(messageType, data)
}

func (c *Client) close() {
	c.mu.Lock()
	_ = c.Conn.Close()
	c.mu.Unlock()
}

// SendMessage queues msg without blocking; a slow client loses messages instead of stalling the hub.
func (c *Client) SendMessage(msg []byte) {
	select {
	case c.Send <- msg:
	default:
	}
}
