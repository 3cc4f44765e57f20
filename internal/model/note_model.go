package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Note struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId           uuid.UUID `gorm:"type:uuid;not null;index:idx_notes_user_created,priority:1"`
	Title            string    `gorm:"type:varchar(255);not null"`
	SourceText       string    `gorm:"type:text;not null"`
	FormattedContent string    `gorm:"type:text"`
	Category         string    `gorm:"type:varchar(20);not null;index"`
	Status           string    `gorm:"type:varchar(20);not null;default:'Active'"`
	TargetDate       *time.Time
	Tags             datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	ExternalRef      *string                     `gorm:"type:varchar(255)"`
	SyncStatus       string                      `gorm:"type:varchar(20);not null;default:'pending'"`
	SyncedAt         *time.Time
	CreatedAt        time.Time      `gorm:"autoCreateTime;index:idx_notes_user_created,priority:2"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Note) TableName() string {
	return "notes"
}
