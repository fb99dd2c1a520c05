package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PerformanceMetricsPeriod aggregates a seller's service metrics over one
// evaluation window. One row per seller per window; MeetsStandards is derived
// from the configured minimums when the period is recorded.
type PerformanceMetricsPeriod struct {
	PeriodID string `gorm:"primaryKey;type:varchar(255)" json:"periodId"`
	SellerID string `gorm:"type:varchar(255);not null;uniqueIndex:idx_perf_seller_period" json:"sellerId"`

	PeriodStart time.Time `gorm:"not null;uniqueIndex:idx_perf_seller_period" json:"periodStart"`
	PeriodEnd   time.Time `gorm:"not null" json:"periodEnd"`

	AvgResponseHours float64 `gorm:"not null;default:0" json:"avgResponseHours"`
	AvgRating        float64 `gorm:"not null;default:0" json:"avgRating"`
	OnTimeRate       float64 `gorm:"not null;default:0" json:"onTimeRate"`

	MeetsStandards bool `gorm:"not null;default:false" json:"meetsStandards"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for PerformanceMetricsPeriod model
func (PerformanceMetricsPeriod) TableName() string {
	return "performance_metrics_periods"
}

// BeforeCreate hook to set default values
func (p *PerformanceMetricsPeriod) BeforeCreate(tx *gorm.DB) error {
	if p.PeriodID == "" {
		p.PeriodID = "pmp_" + uuid.New().String()
	}
	return nil
}
