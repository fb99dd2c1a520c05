package models

import (
	"time"

	"gorm.io/gorm"
)

// ImmutableModel contains common fields for append-only models.
// UpdatedAt is intentionally omitted: audit entries are created, never updated.
type ImmutableModel struct {
	CreatedAt time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// BeforeCreate GORM hook for ImmutableModel
func (m *ImmutableModel) BeforeCreate(tx *gorm.DB) error {
	m.CreatedAt = time.Now().UTC()
	return nil
}
