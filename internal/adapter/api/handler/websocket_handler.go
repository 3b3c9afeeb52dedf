package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	ws "fad/internal/infrastructure/websocket"
	"fad/pkg/errors"
	"fad/pkg/response"
)

// FeedHandler streams activity entries to admin dashboards.
type FeedHandler struct {
	wsManager *ws.Manager
	upgrader  gorillaws.Upgrader
}

var feedHandler *FeedHandler

func NewFeedHandler(wsManager *ws.Manager, allowedOrigins []string) *FeedHandler {
	return &FeedHandler{
		wsManager: wsManager,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func SetupFeedHandler(wsManager *ws.Manager, allowedOrigins []string) {
	feedHandler = NewFeedHandler(wsManager, allowedOrigins)
}

func GetFeedHandler() *FeedHandler {
	return feedHandler
}

// originChecker allows any origin when the list is empty.
func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(r *http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		set[o] = true
	}
	return func(r *http.Request) bool {
		return set[r.Header.Get("Origin")]
	}
}

func (h *FeedHandler) HandleWebSocket(c echo.Context) error {
	session := sessionFrom(c)
	if session == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// the upgrader has already written the HTTP error
		return nil
	}

	client := &ws.Client{
		ID:     uuid.New().String(),
		UserID: session.UID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	if !h.wsManager.RegisterClient(client) {
		conn.Close()
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
