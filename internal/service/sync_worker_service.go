package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"notesync-be/internal/dto"
	"notesync-be/internal/entity"
	"notesync-be/internal/pkg/logger"
	"notesync-be/internal/repository/specification"
	"notesync-be/internal/repository/unitofwork"
	"notesync-be/pkg/classify"
	"notesync-be/pkg/events"
	pkgNats "notesync-be/pkg/nats"
	"notesync-be/pkg/workspace"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

// ISyncWorkerService drains the sync queue and mirrors notes into the external
// workspace. Transient failures are retried with exponential backoff; rejections
// are terminal after a single attempt. Outcomes land on the note's sync_status,
// never on a user-facing error.
type ISyncWorkerService interface {
	Consume(ctx context.Context) error
	SyncNote(ctx context.Context, noteId uuid.UUID) error
}

type syncWorkerService struct {
	topicName          string
	pubSub             *gochannel.GoChannel
	uowFactory         unitofwork.RepositoryFactory
	workspacePublisher workspace.Publisher
	eventPublisher     *pkgNats.Publisher
	logger             logger.ILogger
	maxAttempts        int
	baseDelay          time.Duration
}

func NewSyncWorkerService(
	topicName string,
	pubSub *gochannel.GoChannel,
	uowFactory unitofwork.RepositoryFactory,
	workspacePublisher workspace.Publisher,
	eventPublisher *pkgNats.Publisher,
	logger logger.ILogger,
	maxAttempts int,
	baseDelay time.Duration,
) ISyncWorkerService {
	return &syncWorkerService{
		topicName:          topicName,
		pubSub:             pubSub,
		uowFactory:         uowFactory,
		workspacePublisher: workspacePublisher,
		eventPublisher:     eventPublisher,
		logger:             logger,
		maxAttempts:        maxAttempts,
		baseDelay:          baseDelay,
	}
}

// Consume subscribes to the sync topic and processes each message on its own
// goroutine so a note mid-retry never delays the ones behind it. The ctx here
// is the process lifetime, not a request context; a client disconnecting does
// not cancel its note's sync.
func (s *syncWorkerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			go s.processMessage(ctx, msg)
		}
	}()

	s.logger.Info("SyncWorkerService", "Consuming sync queue", map[string]interface{}{
		"topic": s.topicName,
	})
	return nil
}

func (s *syncWorkerService) processMessage(ctx context.Context, msg *message.Message) {
	// Ack unconditionally: retry policy lives in SyncNote, and a poison
	// message must not wedge the queue.
	defer msg.Ack()

	var payload dto.PublishSyncNoteMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.Error("SyncWorkerService", "Discarding malformed sync message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		return
	}

	if err := s.SyncNote(ctx, payload.NoteId); err != nil {
		s.logger.Error("SyncWorkerService", "Sync processing error", map[string]interface{}{
			"note_id": payload.NoteId.String(),
			"error":   err.Error(),
		})
	}
}

// SyncNote publishes one note to the workspace, including the retry loop and
// the sync_status bookkeeping. Safe to call again for an already synced note;
// the publisher updates the existing page instead of creating another.
func (s *syncWorkerService) SyncNote(ctx context.Context, noteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NoteRepository()

	note, err := repo.FindOne(ctx, specification.ByID{ID: noteId})
	if err != nil {
		return err
	}
	if note == nil {
		s.logger.Warn("SyncWorkerService", "Note vanished before sync", map[string]interface{}{
			"note_id": noteId.String(),
		})
		return nil
	}

	page := workspace.Page{
		IdempotencyKey: note.Id.String(),
		Title:          note.Title,
		Category:       note.Category,
		Status:         note.Status,
		Tags:           note.Tags,
		Content:        note.FormattedContent,
	}
	if note.ExternalRef != nil {
		page.ExternalRef = *note.ExternalRef
	}
	if note.TargetDate != nil {
		page.TargetDate = classify.FormatDate(*note.TargetDate)
	}

	attempts := 0
	operation := func() (string, error) {
		attempts++
		ref, err := s.workspacePublisher.Publish(ctx, page)
		if err != nil {
			if errors.Is(err, workspace.ErrRejected) {
				return "", backoff.Permanent(err)
			}
			return "", err
		}
		return ref, nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.baseDelay
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	externalRef, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(s.maxAttempts)),
	)
	now := time.Now()

	if err != nil {
		syncStatus := entity.SyncStatusFailed
		if errors.Is(err, workspace.ErrRejected) {
			syncStatus = entity.SyncStatusRejected
		}
		note.SyncStatus = syncStatus
		note.UpdatedAt = &now
		if updateErr := repo.Update(ctx, note); updateErr != nil {
			return updateErr
		}

		s.logger.Error("SyncWorkerService", "Workspace sync gave up", map[string]interface{}{
			"note_id":     note.Id.String(),
			"sync_status": syncStatus,
			"attempts":    attempts,
			"error":       err.Error(),
		})
		s.emitSyncEvent(ctx, events.TypeNoteSyncFailed, note)
		return nil
	}

	note.ExternalRef = &externalRef
	note.SyncStatus = entity.SyncStatusSynced
	note.SyncedAt = &now
	note.UpdatedAt = &now
	if err := repo.Update(ctx, note); err != nil {
		return err
	}

	s.logger.Info("SyncWorkerService", "Note synced to workspace", map[string]interface{}{
		"note_id":      note.Id.String(),
		"external_ref": externalRef,
		"attempts":     attempts,
	})
	s.emitSyncEvent(ctx, events.TypeNoteSynced, note)
	return nil
}

func (s *syncWorkerService) emitSyncEvent(ctx context.Context, eventType string, note *entity.Note) {
	if s.eventPublisher == nil {
		return
	}
	data := map[string]interface{}{
		"note_id":     note.Id.String(),
		"user_id":     note.UserId.String(),
		"title":       note.Title,
		"sync_status": note.SyncStatus,
	}
	if note.ExternalRef != nil {
		data["external_ref"] = *note.ExternalRef
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("SyncWorkerService", "Failed to publish sync event", map[string]interface{}{
			"note_id": note.Id.String(),
			"type":    eventType,
			"error":   err.Error(),
		})
	}
}
