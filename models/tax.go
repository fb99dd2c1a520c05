package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TaxFormW9 holds a seller's W-9 taxpayer information. One row per seller,
// created when annual revenue first crosses the W-9 threshold.
//
// Invariant: once SubmittedAt is set it is never cleared. An amended
// submission overwrites the taxpayer fields but not the historical trigger.
type TaxFormW9 struct {
	FormID   string `gorm:"primaryKey;type:varchar(255)" json:"formId"`
	SellerID string `gorm:"type:varchar(255);not null;uniqueIndex" json:"sellerId"`

	// TaxpayerIDMasked holds only the last four digits (e.g. "***-**-1234").
	// The full TIN never reaches this service.
	TaxpayerIDMasked string `gorm:"type:varchar(20)" json:"taxpayerIdMasked"`
	LegalName        string `gorm:"type:varchar(255)" json:"legalName"`

	RequestedAt time.Time  `gorm:"not null" json:"requestedAt"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
	Verified    bool       `gorm:"not null;default:false" json:"verified"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for TaxFormW9 model
func (TaxFormW9) TableName() string {
	return "tax_forms_w9"
}

// BeforeCreate hook to set default values
func (f *TaxFormW9) BeforeCreate(tx *gorm.DB) error {
	if f.FormID == "" {
		f.FormID = "w9_" + uuid.New().String()
	}
	if f.RequestedAt.IsZero() {
		f.RequestedAt = time.Now().UTC()
	}
	return nil
}

// Tax1099K tracks 1099-K eligibility and filing lifecycle for a seller in a
// tax year. One row per seller per year.
type Tax1099K struct {
	RecordID string `gorm:"primaryKey;type:varchar(255)" json:"recordId"`
	SellerID string `gorm:"type:varchar(255);not null;uniqueIndex:idx_1099k_seller_year" json:"sellerId"`
	TaxYear  int    `gorm:"not null;uniqueIndex:idx_1099k_seller_year" json:"taxYear"`

	GrossRevenueCents int64 `gorm:"not null;default:0" json:"grossRevenueCents"`
	TotalTransactions int   `gorm:"not null;default:0" json:"totalTransactions"`

	// FormRequired is derived from the thresholds and is monotonic within a
	// tax year: once true, recomputation never clears it.
	FormRequired bool `gorm:"not null;default:false" json:"formRequired"`

	GeneratedAt *time.Time `json:"generatedAt,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	FiledAt     *time.Time `json:"filedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for Tax1099K model
func (Tax1099K) TableName() string {
	return "tax_1099k_records"
}

// BeforeCreate hook to set default values
func (r *Tax1099K) BeforeCreate(tx *gorm.DB) error {
	if r.RecordID == "" {
		r.RecordID = "t99_" + uuid.New().String()
	}
	return nil
}
