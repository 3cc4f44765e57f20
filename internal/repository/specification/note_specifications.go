package specification

import "gorm.io/gorm"

// ByStatus filters notes by lifecycle status (Active/Done/Archived).
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByCategory filters notes by classifier category.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// ByRecency orders newest first, the default read-model ordering.
type ByRecency struct{}

func (s ByRecency) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}
