package service

import (
	"context"
	"testing"
	"time"

	"notesync-be/internal/dto"
	"notesync-be/internal/entity"
	"notesync-be/internal/pkg/serverutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteServiceShowNotFound(t *testing.T) {
	svc := NewNoteService(&fakeUowFactory{repo: newFakeNoteRepo()}, noopLogger{})

	_, err := svc.Show(context.Background(), uuid.New(), uuid.New())

	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeNotFound, appErr.Code)
}

func TestNoteServiceShowFormatsTargetDate(t *testing.T) {
	repo := newFakeNoteRepo()
	target := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	note := &entity.Note{
		Id:         uuid.New(),
		UserId:     uuid.New(),
		Title:      "Buy milk",
		Category:   "Task",
		Status:     entity.NoteStatusActive,
		TargetDate: &target,
		SyncStatus: entity.SyncStatusPending,
		CreatedAt:  time.Now(),
	}
	repo.notes[note.Id] = note
	svc := NewNoteService(&fakeUowFactory{repo: repo}, noopLogger{})

	res, err := svc.Show(context.Background(), note.UserId, note.Id)

	require.NoError(t, err)
	require.NotNil(t, res.TargetDate)
	assert.Equal(t, "2025-03-13", *res.TargetDate)
	assert.NotNil(t, res.Tags, "tags never serialize as null")
}

func TestNoteServiceUpdateStatus(t *testing.T) {
	repo := newFakeNoteRepo()
	note := seedPendingNote(repo)
	svc := NewNoteService(&fakeUowFactory{repo: repo}, noopLogger{})

	res, err := svc.UpdateStatus(context.Background(), note.UserId, &dto.UpdateNoteStatusRequest{
		Id:     note.Id,
		Status: entity.NoteStatusDone,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.NoteStatusDone, res.Status)

	stored := repo.notes[note.Id]
	assert.Equal(t, entity.NoteStatusDone, stored.Status)
	assert.NotNil(t, stored.UpdatedAt)
}

func TestNoteServiceDelete(t *testing.T) {
	repo := newFakeNoteRepo()
	note := seedPendingNote(repo)
	svc := NewNoteService(&fakeUowFactory{repo: repo}, noopLogger{})

	require.NoError(t, svc.Delete(context.Background(), note.UserId, note.Id))
	assert.Empty(t, repo.notes)

	err := svc.Delete(context.Background(), note.UserId, note.Id)
	appErr, ok := serverutils.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, serverutils.CodeNotFound, appErr.Code)
}

func TestNoteServiceListCapsLimit(t *testing.T) {
	repo := newFakeNoteRepo()
	userId := uuid.New()
	for i := 0; i < 3; i++ {
		note := &entity.Note{Id: uuid.New(), UserId: userId, SyncStatus: entity.SyncStatusPending, CreatedAt: time.Now()}
		repo.notes[note.Id] = note
	}
	svc := NewNoteService(&fakeUowFactory{repo: repo}, noopLogger{})

	res, err := svc.List(context.Background(), userId, &dto.ListNotesRequest{Limit: 100000})

	require.NoError(t, err)
	assert.Len(t, res, 3)
}
