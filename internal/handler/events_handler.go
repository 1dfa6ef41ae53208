package handler

import (
	"log"
	"net/http"
	"strings"

	"quicknotes-server/internal/events"
	"quicknotes-server/pkg/jwt"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

type EventsHandler struct {
	hub       *events.Hub
	jwtSecret string
	upgrader  ws.Upgrader
}

func NewEventsHandler(hub *events.Hub, jwtSecret string) *EventsHandler {
	return &EventsHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		upgrader: ws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleConnection authenticates the caller and upgrades the request to a
// websocket subscribed to the caller's note change events. Browsers cannot
// set headers on websocket requests, so the token is also accepted as a
// query parameter.
func (h *EventsHandler) HandleConnection(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}

	if token == "" {
		http.Error(w, "missing authorization token", http.StatusUnauthorized)
		return
	}

	claims, err := jwt.ValidateToken(token, h.jwtSecret)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("failed to upgrade events connection: %v", err)
		return
	}

	client := events.NewClient(uuid.New().String(), claims.UserID, conn, h.hub)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
