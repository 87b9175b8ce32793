package handler

import (
	"ai-boardroom-be/internal/pkg/logger"
	internalWS "ai-boardroom-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// MeetingEventsHandler exposes the live meeting feed over websocket.
type MeetingEventsHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewMeetingEventsHandler(hub *internalWS.Hub, log logger.ILogger) *MeetingEventsHandler {
	return &MeetingEventsHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *MeetingEventsHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/meeting/v1/events/ws", h.ServeWs)
}

// ServeWs upgrades the connection and attaches it to the hub.
func (h *MeetingEventsHandler) ServeWs(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("MeetingEventsHandler", "Starting WebSocket session", nil)
			internalWS.ServeWs(h.hub, conn)
			h.logger.Info("MeetingEventsHandler", "WebSocket session ended", nil)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
