package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"fad/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client is one admin browser tab subscribed to the activity feed.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager fans activity messages out to every connected admin client.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
	}
}

// Start runs the manager's main loop until ctx is done.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				logger.Info("Feed client registered: %s (%s)", client.ID, client.UserID)

			case client := <-m.Unregister:
				m.removeClient(client.ID)
				logger.Info("Feed client unregistered: %s (%s)", client.ID, client.UserID)

			case message := <-m.broadcast:
				m.mutex.RLock()
				var slow []string
				for id, client := range m.clients {
					select {
					case client.Send <- message:
					default:
						slow = append(slow, id)
					}
				}
				m.mutex.RUnlock()

				for _, id := range slow {
					logger.Warn("Feed client %s is not draining, dropping it", id)
					m.removeClient(id)
				}

			case <-ctx.Done():
				close(m.done)
				m.mutex.Lock()
				for id, client := range m.clients {
					close(client.Send)
					delete(m.clients, id)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

func (m *Manager) removeClient(id string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if client, ok := m.clients[id]; ok {
		delete(m.clients, id)
		close(client.Send)
	}
}

// RegisterClient hands the client to the manager loop. It reports false once
// the manager has shut down.
func (m *Manager) RegisterClient(client *Client) bool {
	select {
	case m.Register <- client:
		return true
	case <-m.done:
		return false
	}
}

// Broadcast queues a message for every client. It never blocks the caller.
func (m *Manager) Broadcast(message WSMessage) {
	data, err := message.Encode()
	if err != nil {
		logger.Error("Failed to encode feed message: %v", err)
		return
	}

	select {
	case m.broadcast <- data:
	default:
		logger.Warn("Feed broadcast queue full, dropping %s message", message.Type)
	}
}

// sendTo queues data for one client if it is still registered.
func (m *Manager) sendTo(id string, data []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if client, ok := m.clients[id]; ok {
		select {
		case client.Send <- data:
		default:
		}
	}
}

func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// ReadPump reads control messages from the client until the connection closes.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		select {
		case m.Unregister <- c:
		case <-m.done:
		}
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("Feed client %s read error: %v", c.ID, err)
			}
			break
		}

		if reply := HandleClientMessage(message); reply != nil {
			if data, err := reply.Encode(); err == nil {
				m.sendTo(c.ID, data)
			}
		}
	}
}

// WritePump writes queued messages and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Error("Feed client %s write error: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
