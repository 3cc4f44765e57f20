package service

import (
	"context"
	"encoding/json"
	"time"

	"notesync-be/internal/dto"
	"notesync-be/internal/entity"
	"notesync-be/internal/pkg/logger"
	"notesync-be/internal/pkg/serverutils"
	"notesync-be/internal/repository/unitofwork"
	"notesync-be/pkg/classify"
	"notesync-be/pkg/events"
	pkgNats "notesync-be/pkg/nats"
	"notesync-be/pkg/transcribe"

	"github.com/google/uuid"
)

// IIngestionService runs the capture pipeline: intake validation, optional
// transcription, classification, persistence, and handing the note off to the
// async sync worker. Every failure before persistence is surfaced to the caller;
// nothing after persistence is.
type IIngestionService interface {
	Submit(ctx context.Context, userId uuid.UUID, request *dto.SubmitNoteRequest) (*dto.NoteResponse, error)
}

type ingestionService struct {
	uowFactory        unitofwork.RepositoryFactory
	transcriber       transcribe.Transcriber
	classifier        classify.Classifier
	publisherService  IPublisherService
	eventPublisher    *pkgNats.Publisher
	logger            logger.ILogger
	transcribeTimeout time.Duration
	classifyTimeout   time.Duration
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	transcriber transcribe.Transcriber,
	classifier classify.Classifier,
	publisherService IPublisherService,
	eventPublisher *pkgNats.Publisher,
	logger logger.ILogger,
	transcribeTimeout time.Duration,
	classifyTimeout time.Duration,
) IIngestionService {
	return &ingestionService{
		uowFactory:        uowFactory,
		transcriber:       transcriber,
		classifier:        classifier,
		publisherService:  publisherService,
		eventPublisher:    eventPublisher,
		logger:            logger,
		transcribeTimeout: transcribeTimeout,
		classifyTimeout:   classifyTimeout,
	}
}

func (s *ingestionService) Submit(ctx context.Context, userId uuid.UUID, request *dto.SubmitNoteRequest) (*dto.NoteResponse, error) {
	if request.Text == "" && len(request.Audio) == 0 {
		return nil, serverutils.ErrEmptyInput()
	}

	submittedAt := time.Now()

	workingText := request.Text
	if len(request.Audio) > 0 {
		if !transcribe.IsSupported(request.AudioContentType) {
			return nil, serverutils.ErrUnsupportedFormat(request.AudioContentType)
		}

		transcribeCtx, cancel := context.WithTimeout(ctx, s.transcribeTimeout)
		transcript, err := s.transcriber.Transcribe(transcribeCtx, request.Audio, request.AudioContentType)
		cancel()
		if err != nil {
			s.logger.Error("IngestionService", "Transcription failed", map[string]interface{}{
				"user_id":      userId.String(),
				"content_type": request.AudioContentType,
				"error":        err.Error(),
			})
			return nil, serverutils.ErrTranscriptionFailed(err)
		}

		// Transcript is appended after the typed text so the combined note
		// reads in the order the user produced it.
		if transcript != "" {
			if workingText != "" {
				workingText = workingText + "\n" + transcript
			} else {
				workingText = transcript
			}
		}
	}

	classifyCtx, cancel := context.WithTimeout(ctx, s.classifyTimeout)
	result, err := s.classifier.Classify(classifyCtx, workingText, submittedAt)
	cancel()
	if err != nil {
		s.logger.Error("IngestionService", "Classification failed", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return nil, serverutils.ErrClassificationFailed(err)
	}

	note := &entity.Note{
		Id:               uuid.New(),
		UserId:           userId,
		Title:            result.Title,
		SourceText:       workingText,
		FormattedContent: result.FormattedContent,
		Category:         string(result.Category),
		Status:           entity.NoteStatusActive,
		TargetDate:       result.TargetDate,
		Tags:             result.Tags,
		SyncStatus:       entity.SyncStatusPending,
		CreatedAt:        submittedAt,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	// The note exists from here on. Sync hand-off problems degrade to a
	// pending sync_status, never to a failed submission.
	syncMsg, err := json.Marshal(dto.PublishSyncNoteMessage{NoteId: note.Id})
	if err == nil {
		err = s.publisherService.Publish(ctx, syncMsg)
	}
	if err != nil {
		s.logger.Error("IngestionService", "Failed to enqueue workspace sync", map[string]interface{}{
			"note_id": note.Id.String(),
			"error":   err.Error(),
		})
	}

	s.emitCaptured(ctx, note)

	s.logger.Info("IngestionService", "Note captured", map[string]interface{}{
		"note_id":  note.Id.String(),
		"user_id":  userId.String(),
		"category": note.Category,
	})

	return noteToResponse(note), nil
}

func (s *ingestionService) emitCaptured(ctx context.Context, note *entity.Note) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type: events.TypeNoteCaptured,
		Data: map[string]interface{}{
			"note_id":  note.Id.String(),
			"user_id":  note.UserId.String(),
			"title":    note.Title,
			"category": note.Category,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("IngestionService", "Failed to publish NOTE_CAPTURED event", map[string]interface{}{
			"note_id": note.Id.String(),
			"error":   err.Error(),
		})
	}
}
