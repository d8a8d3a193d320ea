package services

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	clientSendBuffer = 8
	pingInterval     = 25 * time.Second
	writeWait        = 10 * time.Second
)

// TotalsClient owns the only goroutine allowed to write to its
// connection; everyone else enqueues on send.
type TotalsClient struct {
	UserID uint
	Conn   *websocket.Conn
	send   chan []byte
	once   sync.Once
}

func NewTotalsClient(userID uint, conn *websocket.Conn) *TotalsClient {
	return &TotalsClient{
		UserID: userID,
		Conn:   conn,
		send:   make(chan []byte, clientSendBuffer),
	}
}

func (c *TotalsClient) close() {
	c.once.Do(func() { close(c.send) })
}

// WritePump drains send onto the connection and keeps it alive with
// pings. It returns when send is closed or a write fails; the caller
// is responsible for unregistering.
func (c *TotalsClient) WritePump() {
	t := time.NewTicker(pingInterval)
	defer func() {
		t.Stop()
		_ = c.Conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-t.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TotalsHub fans recomputed daily totals out to a user's open
// websocket connections after an entry or target mutation.
type TotalsHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*TotalsClient]struct{}
}

func NewTotalsHub() *TotalsHub {
	return &TotalsHub{clients: make(map[uint]map[*TotalsClient]struct{})}
}

func (h *TotalsHub) Register(c *TotalsClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*TotalsClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *TotalsHub) Unregister(c *TotalsClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// Broadcast enqueues the payload for every open connection of the
// user. Clients whose buffer is full are dropped; their write pump
// closes the connection and the read loop unregisters them.
func (h *TotalsHub) Broadcast(userID uint, payload interface{}) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- msg:
		default:
		}
	}
}
