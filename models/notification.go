package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification is the outbox row for a seller-facing compliance notification.
// It is written in the same transaction as the state change that caused it;
// the dispatcher worker drains pending rows to the delivery stream, so
// delivery is eventually consistent and never blocks a transition.
type Notification struct {
	NotificationID string `gorm:"primaryKey;type:varchar(255)" json:"notificationId"`

	UserID  string           `gorm:"type:varchar(255);not null;index" json:"userId"`
	Type    NotificationType `gorm:"type:varchar(50);not null" json:"type"`
	Title   string           `gorm:"type:varchar(255);not null" json:"title"`
	Content string           `gorm:"type:text" json:"content"`

	// Metadata carries delivery context as a JSON object (seller id,
	// deadline, rejection reason).
	Metadata string `gorm:"type:text" json:"metadata,omitempty"`

	Status     NotificationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RetryCount int                `gorm:"not null;default:0" json:"retryCount"`
	MaxRetries int                `gorm:"not null;default:5" json:"maxRetries"`
	SentAt     *time.Time         `json:"sentAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for Notification model
func (Notification) TableName() string {
	return "compliance_notifications"
}

// BeforeCreate hook to set default values
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == "" {
		n.NotificationID = "ntf_" + uuid.New().String()
	}
	if n.Status == "" {
		n.Status = NotificationStatusPending
	}
	if n.MaxRetries == 0 {
		n.MaxRetries = 5
	}
	return nil
}
