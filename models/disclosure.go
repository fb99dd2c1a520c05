package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PublicDisclosure holds the business contact details a high-volume seller
// must publish. One row per seller, required once annual revenue crosses the
// disclosure threshold.
//
// Invariant: an active seller above the disclosure threshold must have all
// contact fields populated or is in breach (reported by the evaluator).
type PublicDisclosure struct {
	DisclosureID string `gorm:"primaryKey;type:varchar(255)" json:"disclosureId"`
	SellerID     string `gorm:"type:varchar(255);not null;uniqueIndex" json:"sellerId"`

	BusinessName    string `gorm:"type:varchar(255)" json:"businessName"`
	BusinessAddress string `gorm:"type:varchar(512)" json:"businessAddress"`
	BusinessEmail   string `gorm:"type:varchar(320)" json:"businessEmail"`
	BusinessPhone   string `gorm:"type:varchar(15)" json:"businessPhone"`

	IsActive bool `gorm:"not null;default:false" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for PublicDisclosure model
func (PublicDisclosure) TableName() string {
	return "public_disclosures"
}

// BeforeCreate hook to set default values
func (d *PublicDisclosure) BeforeCreate(tx *gorm.DB) error {
	if d.DisclosureID == "" {
		d.DisclosureID = "dsc_" + uuid.New().String()
	}
	return nil
}

// IsComplete reports whether all required contact fields are populated.
func (d *PublicDisclosure) IsComplete() bool {
	return d.BusinessName != "" && d.BusinessAddress != "" &&
		d.BusinessEmail != "" && d.BusinessPhone != ""
}
