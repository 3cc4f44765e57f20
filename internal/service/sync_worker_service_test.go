package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"notesync-be/internal/entity"
	"notesync-be/internal/repository/specification"
	"notesync-be/pkg/workspace"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWorkspace fails a configurable number of times before succeeding.
type fakeWorkspace struct {
	mu        sync.Mutex
	attempts  int
	failUntil int
	failWith  error
	ref       string
}

func (f *fakeWorkspace) Publish(ctx context.Context, page workspace.Page) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++
	if f.attempts <= f.failUntil {
		return "", f.failWith
	}
	if f.ref == "" {
		f.ref = "page-" + page.IdempotencyKey
	}
	return f.ref, nil
}

func (f *fakeWorkspace) attemptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attempts
}

func newWorkerFixture(repo *fakeNoteRepo, ws workspace.Publisher) ISyncWorkerService {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	return NewSyncWorkerService(
		"SYNC_NOTE",
		pubSub,
		&fakeUowFactory{repo: repo},
		ws,
		nil,
		noopLogger{},
		3,
		time.Millisecond,
	)
}

func seedPendingNote(repo *fakeNoteRepo) *entity.Note {
	note := &entity.Note{
		Id:         uuid.New(),
		UserId:     uuid.New(),
		Title:      "Buy milk",
		Category:   "Task",
		Status:     entity.NoteStatusActive,
		SyncStatus: entity.SyncStatusPending,
		CreatedAt:  time.Now(),
	}
	repo.notes[note.Id] = note
	return note
}

func TestSyncNoteSuccessFirstTry(t *testing.T) {
	repo := newFakeNoteRepo()
	note := seedPendingNote(repo)
	ws := &fakeWorkspace{}
	svc := newWorkerFixture(repo, ws)

	require.NoError(t, svc.SyncNote(context.Background(), note.Id))

	stored, _ := repo.FindOne(context.Background(), specification.ByID{ID: note.Id})
	require.NotNil(t, stored)
	assert.Equal(t, entity.SyncStatusSynced, stored.SyncStatus)
	require.NotNil(t, stored.ExternalRef)
	assert.Equal(t, "page-"+note.Id.String(), *stored.ExternalRef)
	assert.NotNil(t, stored.SyncedAt)
	assert.Equal(t, 1, ws.attemptCount())
}

func TestSyncNoteRetriesTransientFailures(t *testing.T) {
	repo := newFakeNoteRepo()
	note := seedPendingNote(repo)
	ws := &fakeWorkspace{failUntil: 2, failWith: workspace.ErrUnavailable}
	svc := newWorkerFixture(repo, ws)

	require.NoError(t, svc.SyncNote(context.Background(), note.Id))

	stored, _ := repo.FindOne(context.Background(), specification.ByID{ID: note.Id})
	assert.Equal(t, entity.SyncStatusSynced, stored.SyncStatus)
	assert.Equal(t, 3, ws.attemptCount(), "two transient failures then success")
}

func TestSyncNoteExhaustsRetries(t *testing.T) {
	repo := newFakeNoteRepo()
	note := seedPendingNote(repo)
	ws := &fakeWorkspace{failUntil: 100, failWith: workspace.ErrUnavailable}
	svc := newWorkerFixture(repo, ws)

	require.NoError(t, svc.SyncNote(context.Background(), note.Id), "exhaustion is recorded, not returned")

	stored, _ := repo.FindOne(context.Background(), specification.ByID{ID: note.Id})
	assert.Equal(t, entity.SyncStatusFailed, stored.SyncStatus)
	assert.Nil(t, stored.ExternalRef)
	assert.Equal(t, entity.NoteStatusActive, stored.Status, "the note stays visible")
	assert.Equal(t, 3, ws.attemptCount(), "bounded by the configured max attempts")
}

func TestSyncNoteRejectionIsNotRetried(t *testing.T) {
	repo := newFakeNoteRepo()
	note := seedPendingNote(repo)
	ws := &fakeWorkspace{failUntil: 100, failWith: workspace.ErrRejected}
	svc := newWorkerFixture(repo, ws)

	require.NoError(t, svc.SyncNote(context.Background(), note.Id))

	stored, _ := repo.FindOne(context.Background(), specification.ByID{ID: note.Id})
	assert.Equal(t, entity.SyncStatusRejected, stored.SyncStatus)
	assert.Equal(t, 1, ws.attemptCount(), "a rejection gets exactly one attempt")
}

func TestSyncNoteMissingNote(t *testing.T) {
	repo := newFakeNoteRepo()
	ws := &fakeWorkspace{}
	svc := newWorkerFixture(repo, ws)

	require.NoError(t, svc.SyncNote(context.Background(), uuid.New()))

	assert.Equal(t, 0, ws.attemptCount(), "nothing to publish for a vanished note")
}

func TestSyncNoteIdempotentRepublish(t *testing.T) {
	repo := newFakeNoteRepo()
	note := seedPendingNote(repo)
	ref := "page-existing"
	note.ExternalRef = &ref
	note.SyncStatus = entity.SyncStatusSynced

	var gotRefs []string
	ws := &capturingWorkspace{refs: &gotRefs}
	svc := newWorkerFixture(repo, ws)

	require.NoError(t, svc.SyncNote(context.Background(), note.Id))

	require.Len(t, gotRefs, 1)
	assert.Equal(t, "page-existing", gotRefs[0], "republish must target the recorded page")
}

type capturingWorkspace struct {
	refs *[]string
}

func (c *capturingWorkspace) Publish(ctx context.Context, page workspace.Page) (string, error) {
	*c.refs = append(*c.refs, page.ExternalRef)
	if page.ExternalRef != "" {
		return page.ExternalRef, nil
	}
	return "page-new", nil
}

func TestConsumeProcessesQueuedMessage(t *testing.T) {
	repo := newFakeNoteRepo()
	note := seedPendingNote(repo)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	svc := NewSyncWorkerService(
		"SYNC_NOTE",
		pubSub,
		&fakeUowFactory{repo: repo},
		&fakeWorkspace{},
		nil,
		noopLogger{},
		3,
		time.Millisecond,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, svc.Consume(ctx))

	publisher := NewPublisherService("SYNC_NOTE", pubSub)
	require.NoError(t, publisher.Publish(ctx, []byte(`{"note_id":"`+note.Id.String()+`"}`)))

	assert.Eventually(t, func() bool {
		stored, _ := repo.FindOne(context.Background(), specification.ByID{ID: note.Id})
		return stored != nil && stored.SyncStatus == entity.SyncStatusSynced
	}, 3*time.Second, 10*time.Millisecond, "queued note should be synced in the background")
}
