package service

import (
	"context"
	"time"

	"notesync-be/internal/dto"
	"notesync-be/internal/entity"
	"notesync-be/internal/pkg/logger"
	"notesync-be/internal/pkg/serverutils"
	"notesync-be/internal/repository/specification"
	"notesync-be/internal/repository/unitofwork"
	"notesync-be/pkg/classify"

	"github.com/google/uuid"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type INoteService interface {
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error)
	List(ctx context.Context, userId uuid.UUID, request *dto.ListNotesRequest) ([]*dto.NoteResponse, error)
	UpdateStatus(ctx context.Context, userId uuid.UUID, request *dto.UpdateNoteStatusRequest) (*dto.UpdateNoteStatusResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *noteService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.ErrNotFound("note not found")
	}
	return noteToResponse(note), nil
}

func (s *noteService) List(ctx context.Context, userId uuid.UUID, request *dto.ListNotesRequest) ([]*dto.NoteResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := request.Offset
	if offset < 0 {
		offset = 0
	}

	specs := []specification.Specification{
		specification.UserOwnedBy{UserID: userId},
		specification.ByRecency{},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if request.Status != "" {
		specs = append(specs, specification.ByStatus{Status: request.Status})
	}
	if request.Category != "" {
		specs = append(specs, specification.ByCategory{Category: request.Category})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		responses = append(responses, noteToResponse(note))
	}
	return responses, nil
}

func (s *noteService) UpdateStatus(ctx context.Context, userId uuid.UUID, request *dto.UpdateNoteStatusRequest) (*dto.UpdateNoteStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NoteRepository()

	note, err := repo.FindOne(ctx,
		specification.ByID{ID: request.Id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, serverutils.ErrNotFound("note not found")
	}

	now := time.Now()
	note.Status = request.Status
	note.UpdatedAt = &now
	if err := repo.Update(ctx, note); err != nil {
		return nil, err
	}

	s.logger.Info("NoteService", "Note status updated", map[string]interface{}{
		"note_id": note.Id.String(),
		"status":  note.Status,
	})

	return &dto.UpdateNoteStatusResponse{Id: note.Id, Status: note.Status}, nil
}

func (s *noteService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.NoteRepository()

	note, err := repo.FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if note == nil {
		return serverutils.ErrNotFound("note not found")
	}

	return repo.Delete(ctx, id)
}

func noteToResponse(note *entity.Note) *dto.NoteResponse {
	response := &dto.NoteResponse{
		Id:               note.Id,
		Category:         note.Category,
		Title:            note.Title,
		FormattedContent: note.FormattedContent,
		SourceText:       note.SourceText,
		Status:           note.Status,
		Tags:             note.Tags,
		ExternalRef:      note.ExternalRef,
		SyncStatus:       note.SyncStatus,
		CreatedAt:        note.CreatedAt,
		UpdatedAt:        note.UpdatedAt,
	}
	if note.TargetDate != nil {
		formatted := classify.FormatDate(*note.TargetDate)
		response.TargetDate = &formatted
	}
	if response.Tags == nil {
		response.Tags = []string{}
	}
	return response
}
