package mapper

import (
	"testing"
	"time"

	"notesync-be/internal/entity"
	"notesync-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteMapperRoundTrip(t *testing.T) {
	m := NewNoteMapper()
	target := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	syncedAt := time.Now()
	ref := "page-123"

	e := &entity.Note{
		Id:               uuid.New(),
		UserId:           uuid.New(),
		Title:            "Buy milk",
		SourceText:       "buy milk tomorrow",
		FormattedContent: "- [ ] Buy milk",
		Category:         "Task",
		Status:           entity.NoteStatusActive,
		TargetDate:       &target,
		Tags:             []string{"Task", "errands"},
		ExternalRef:      &ref,
		SyncStatus:       entity.SyncStatusSynced,
		SyncedAt:         &syncedAt,
		CreatedAt:        time.Now(),
	}

	got := m.ToEntity(m.ToModel(e))

	require.NotNil(t, got)
	assert.Equal(t, e.Id, got.Id)
	assert.Equal(t, e.Title, got.Title)
	assert.Equal(t, e.Tags, got.Tags)
	assert.Equal(t, e.TargetDate, got.TargetDate)
	assert.Equal(t, e.ExternalRef, got.ExternalRef)
	assert.Equal(t, e.SyncStatus, got.SyncStatus)
	assert.False(t, got.IsDeleted)
}

func TestNoteMapperSoftDelete(t *testing.T) {
	m := NewNoteMapper()
	deletedAt := time.Now()

	e := &entity.Note{
		Id:        uuid.New(),
		UserId:    uuid.New(),
		Title:     "Gone",
		DeletedAt: &deletedAt,
	}

	got := m.ToEntity(m.ToModel(e))

	require.NotNil(t, got)
	assert.True(t, got.IsDeleted)
	require.NotNil(t, got.DeletedAt)
}

func TestNoteMapperNil(t *testing.T) {
	m := NewNoteMapper()

	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
	assert.Empty(t, m.ToEntities(nil))
	assert.Empty(t, m.ToModels([]*entity.Note{}))
}

func TestNoteMapperTableName(t *testing.T) {
	assert.Equal(t, "notes", model.Note{}.TableName())
}
