package dto

import (
	"time"

	"github.com/google/uuid"
)

// SubmitNoteRequest is the submission intake. Text comes from the form field or a
// JSON body; audio from the multipart file part. At least one must be present,
// which the ingestion service enforces (EMPTY_INPUT).
type SubmitNoteRequest struct {
	Text             string `json:"text"`
	Audio            []byte `json:"-"`
	AudioContentType string `json:"-"`
}

// NoteResponse is the read model shape the client consumes.
type NoteResponse struct {
	Id               uuid.UUID  `json:"id"`
	Category         string     `json:"category"`
	Title            string     `json:"title"`
	FormattedContent string     `json:"formatted_content"`
	SourceText       string     `json:"source_text"`
	Status           string     `json:"status"`
	TargetDate       *string    `json:"target_date,omitempty"` // YYYY-MM-DD
	Tags             []string   `json:"tags"`
	ExternalRef      *string    `json:"external_ref,omitempty"`
	SyncStatus       string     `json:"sync_status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

type ListNotesRequest struct {
	Status   string `query:"status"`
	Category string `query:"category"`
	Limit    int    `query:"limit"`
	Offset   int    `query:"offset"`
}

type UpdateNoteStatusRequest struct {
	Id     uuid.UUID
	Status string `json:"status" validate:"required,oneof=Active Done Archived"`
}

type UpdateNoteStatusResponse struct {
	Id     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}
