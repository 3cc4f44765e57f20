package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note statuses, user controlled after creation.
const (
	NoteStatusActive   = "Active"
	NoteStatusDone     = "Done"
	NoteStatusArchived = "Archived"
)

// Sync statuses, pipeline controlled. A note is visible regardless of sync state;
// external_ref is best effort.
const (
	SyncStatusPending  = "pending"
	SyncStatusSynced   = "synced"
	SyncStatusFailed   = "failed"
	SyncStatusRejected = "rejected"
)

type Note struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId           uuid.UUID `gorm:"type:uuid;index"`
	Title            string
	SourceText       string
	FormattedContent string
	Category         string
	Status           string
	TargetDate       *time.Time
	Tags             []string
	ExternalRef      *string
	SyncStatus       string
	SyncedAt         *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
