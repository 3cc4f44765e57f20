package service

import (
	"context"
	"strings"

	"notesync-be/internal/dto"
	"notesync-be/internal/pkg/logger"
	"notesync-be/pkg/events"
	pkgNats "notesync-be/pkg/nats"

	"github.com/google/uuid"
)

// SyncFeedDelivery pushes an event to every live connection owned by one user.
// The websocket hub satisfies this.
type SyncFeedDelivery interface {
	Send(userId uuid.UUID, event dto.SyncEvent)
}

// SyncFeedService bridges the durable event stream into per-user realtime
// pushes so a client can watch its note move through the sync pipeline without
// polling.
type SyncFeedService struct {
	subscriber *pkgNats.Subscriber
	delivery   SyncFeedDelivery
	logger     logger.ILogger
}

func NewSyncFeedService(subscriber *pkgNats.Subscriber, delivery SyncFeedDelivery, logger logger.ILogger) *SyncFeedService {
	return &SyncFeedService{
		subscriber: subscriber,
		delivery:   delivery,
		logger:     logger,
	}
}

func (s *SyncFeedService) Start() error {
	return s.subscriber.Subscribe("events.>", "sync-feed-worker", s.handleEvent)
}

func (s *SyncFeedService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	rawUserId, ok := payload["user_id"].(string)
	if !ok {
		// Not addressed to a user, nothing to fan out.
		return nil
	}
	userId, err := uuid.Parse(rawUserId)
	if err != nil {
		s.logger.Warn("SyncFeedService", "Event carries malformed user_id", map[string]interface{}{
			"type":    event.EventType(),
			"user_id": rawUserId,
		})
		return nil
	}

	feedEvent := dto.SyncEvent{
		// Subjects arrive as "events.<TYPE>"; clients see the bare type.
		Type: strings.TrimPrefix(event.EventType(), "events."),
	}
	if rawNoteId, ok := payload["note_id"].(string); ok {
		if noteId, err := uuid.Parse(rawNoteId); err == nil {
			feedEvent.NoteId = noteId
		}
	}
	if title, ok := payload["title"].(string); ok {
		feedEvent.Title = title
	}
	if ref, ok := payload["external_ref"].(string); ok {
		feedEvent.ExternalRef = ref
	}
	if syncStatus, ok := payload["sync_status"].(string); ok {
		feedEvent.SyncStatus = syncStatus
	}

	s.delivery.Send(userId, feedEvent)
	return nil
}
