package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SellerVerification tracks a seller's identity-verification lifecycle and
// the rolling revenue counters that drive compliance obligations.
// One row per seller, created when revenue first crosses the verification
// threshold. Rows are never deleted, only status-transitioned.
//
// VerificationDeadline is set whenever the seller enters pending. Rejection
// and suspension keep the value for history; approval clears it.
type SellerVerification struct {
	VerificationID string `gorm:"primaryKey;type:varchar(255)" json:"verificationId"`
	SellerID       string `gorm:"type:varchar(255);not null;uniqueIndex" json:"sellerId"`

	// Rolling counters, populated by upstream order aggregation.
	// Monetary values are US cents; within a tax year they only increase.
	// Naming strategy would derive revenue30_day_cents from this field;
	// pin the column so raw update maps and the struct stay in sync.
	Revenue30DayCents  int64 `gorm:"column:revenue_30_day_cents;not null;default:0" json:"revenue30DayCents"`
	RevenueAnnualCents int64 `gorm:"not null;default:0" json:"revenueAnnualCents"`
	TransactionCount   int   `gorm:"not null;default:0" json:"transactionCount"`

	Status                  VerificationStatus `gorm:"type:varchar(20);not null;default:'unverified';index" json:"status"`
	VerificationTriggeredAt *time.Time         `json:"verificationTriggeredAt,omitempty"`
	VerificationDeadline    *time.Time         `gorm:"index" json:"verificationDeadline,omitempty"`
	SuspensionDate          *time.Time         `json:"suspensionDate,omitempty"`

	// Admin review fields
	ReviewedBy      *string `gorm:"type:varchar(255)" json:"reviewedBy,omitempty"`
	ReviewNotes     *string `gorm:"type:text" json:"reviewNotes,omitempty"`
	RejectionReason *string `gorm:"type:text" json:"rejectionReason,omitempty"`

	// Version supports optimistic concurrency: every transition increments
	// it and writes are guarded by WHERE version = <read value>.
	Version int64 `gorm:"not null;default:0" json:"version"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for SellerVerification model
func (SellerVerification) TableName() string {
	return "seller_verifications"
}

// BeforeCreate hook to set default values
func (v *SellerVerification) BeforeCreate(tx *gorm.DB) error {
	if v.VerificationID == "" {
		v.VerificationID = "ver_" + uuid.New().String()
	}
	if v.Status == "" {
		v.Status = VerificationStatusUnverified
	}
	return nil
}
