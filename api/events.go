package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/studiobooking/internal/realtime"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const pingInterval = 30 * time.Second

// EventsHandler streams change signals to websocket clients. Every message is
// the same no-payload "bookings-changed" notice; clients re-fetch on receipt.
type EventsHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
}

type changeMessage struct {
	Type string `json:"type"`
}

func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (h *EventsHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.stream)
}

func (h *EventsHandler) stream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	signals, unsubscribe := h.hub.Subscribe()
	defer unsubscribe()

	// Drain client frames so close messages are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case _, ok := <-signals:
			if !ok {
				return
			}
			if err := conn.WriteJSON(changeMessage{Type: "bookings-changed"}); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
