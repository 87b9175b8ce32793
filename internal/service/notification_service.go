package service

import (
	"context"

	"ai-boardroom-be/internal/pkg/logger"
	internalWS "ai-boardroom-be/internal/websocket"
	"ai-boardroom-be/pkg/events"
	pktNats "ai-boardroom-be/pkg/nats"
)

// NotificationService forwards meeting events from the NATS bus to every
// connected websocket client.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	hub        *internalWS.Hub
	logger     logger.ILogger
}

func NewNotificationService(subscriber *pktNats.Subscriber, hub *internalWS.Hub, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: subscriber,
		hub:        hub,
		logger:     log,
	}
}

// Start subscribes to meeting completions with a durable consumer so events
// survive restarts. Blocks only on setup; delivery runs in NATS callbacks.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.MEETING_COMPLETED", "meeting-notifier", s.handleMeetingCompleted)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to subscribe to meeting events", map[string]interface{}{"error": err.Error()})
	}
}

func (s *NotificationService) handleMeetingCompleted(ctx context.Context, event events.Event) error {
	s.logger.Info("NotificationService", "Meeting completed", event.Payload())
	s.hub.Broadcast("meeting_completed", event.Payload())
	return nil
}
