package events

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Hub tracks the open websocket sessions per user and fans note change
// events out to all of a user's connections.
type Hub struct {
	clients        map[string]*Client
	userIndex      map[string]map[string]bool
	clientsMutex   sync.RWMutex
	Register       chan *Client
	Unregister     chan *Client
	maxConnPerUser int
	writeWait      time.Duration
	pongWait       time.Duration
	pingPeriod     time.Duration
}

func NewHub(maxConnPerUser int, writeWait, pongWait, pingPeriod time.Duration) *Hub {
	return &Hub{
		clients:        make(map[string]*Client),
		userIndex:      make(map[string]map[string]bool),
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		maxConnPerUser: maxConnPerUser,
		writeWait:      writeWait,
		pongWait:       pongWait,
		pingPeriod:     pingPeriod,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	if h.userIndex[client.UserID] == nil {
		h.userIndex[client.UserID] = make(map[string]bool)
	}

	if len(h.userIndex[client.UserID]) >= h.maxConnPerUser {
		log.Printf("max connections reached for user %s", client.UserID)
		close(client.Send)
		return
	}

	h.clients[client.ID] = client
	h.userIndex[client.UserID][client.ID] = true

	log.Printf("events client registered: %s (user: %s)", client.ID, client.UserID)
}

func (h *Hub) unregisterClient(client *Client) {
	h.clientsMutex.Lock()
	defer h.clientsMutex.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		delete(h.userIndex[client.UserID], client.ID)

		if len(h.userIndex[client.UserID]) == 0 {
			delete(h.userIndex, client.UserID)
		}

		close(client.Send)
		log.Printf("events client unregistered: %s", client.ID)
	}
}

// BroadcastToUser delivers the message to every open session of the user.
// Sessions with a full send buffer are dropped rather than blocked on.
func (h *Hub) BroadcastToUser(userID string, message *Message) error {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	clientIDs, exists := h.userIndex[userID]
	if !exists {
		return nil
	}

	for clientID := range clientIDs {
		client := h.clients[clientID]
		select {
		case client.Send <- messageBytes:
		default:
			log.Printf("events client %s send buffer full, closing connection", clientID)
			go func(c *Client) { h.Unregister <- c }(client)
		}
	}

	return nil
}

func (h *Hub) UserConnections(userID string) int {
	h.clientsMutex.RLock()
	defer h.clientsMutex.RUnlock()

	if clients, exists := h.userIndex[userID]; exists {
		return len(clients)
	}
	return 0
}
