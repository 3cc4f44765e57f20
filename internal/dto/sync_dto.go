package dto

import "github.com/google/uuid"

// PublishSyncNoteMessage is the payload dispatched onto the in-process bus after a
// note is persisted. The worker re-reads the note by id, so the message stays small.
type PublishSyncNoteMessage struct {
	NoteId uuid.UUID `json:"note_id"`
}

// SyncEvent is what the realtime feed pushes to connected clients.
type SyncEvent struct {
	Type        string    `json:"type"` // NOTE_CAPTURED | NOTE_SYNCED | NOTE_SYNC_FAILED
	NoteId      uuid.UUID `json:"note_id"`
	Title       string    `json:"title,omitempty"`
	ExternalRef string    `json:"external_ref,omitempty"`
	SyncStatus  string    `json:"sync_status,omitempty"`
}
