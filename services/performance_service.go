package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/craftmarket/compliance-service/config"
	"github.com/craftmarket/compliance-service/models"
	"gorm.io/gorm"
)

// PerformanceService records seller performance periods and derives the
// meets-standards flag from the configured minimums.
type PerformanceService struct {
	db        *gorm.DB
	standards config.PerformanceStandards
}

// NewPerformanceService creates a new performance service
func NewPerformanceService(db *gorm.DB, standards config.PerformanceStandards) *PerformanceService {
	return &PerformanceService{db: db, standards: standards}
}

// RecordPeriod stores one seller performance window. An existing row for the
// same seller and period start is overwritten (upstream aggregation may
// re-emit a corrected window).
func (s *PerformanceService) RecordPeriod(ctx context.Context, sellerID string, req *models.RecordPerformanceRequest) (*models.PerformanceMetricsPeriod, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}

	periodStart, err := time.Parse(time.RFC3339, req.PeriodStart)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid periodStart: %v", ErrInvalidInput, err)
	}
	periodEnd, err := time.Parse(time.RFC3339, req.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid periodEnd: %v", ErrInvalidInput, err)
	}
	if !periodEnd.After(periodStart) {
		return nil, fmt.Errorf("%w: periodEnd must be after periodStart", ErrInvalidInput)
	}
	if req.AvgResponseHours < 0 || req.OnTimeRate < 0 || req.OnTimeRate > 1 {
		return nil, fmt.Errorf("%w: metrics out of range", ErrInvalidInput)
	}
	if req.AvgRating < 0 || req.AvgRating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidInput)
	}

	meets := MeetsPerformanceStandards(req.AvgResponseHours, req.AvgRating, req.OnTimeRate, s.standards)

	var result *models.PerformanceMetricsPeriod
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var period models.PerformanceMetricsPeriod
		err := tx.First(&period, "seller_id = ? AND period_start = ?", sellerID, periodStart.UTC()).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load performance period: %w", err)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			period = models.PerformanceMetricsPeriod{
				SellerID:         sellerID,
				PeriodStart:      periodStart.UTC(),
				PeriodEnd:        periodEnd.UTC(),
				AvgResponseHours: req.AvgResponseHours,
				AvgRating:        req.AvgRating,
				OnTimeRate:       req.OnTimeRate,
				MeetsStandards:   meets,
			}
			if err := tx.Create(&period).Error; err != nil {
				return fmt.Errorf("failed to create performance period: %w", err)
			}
		} else {
			period.PeriodEnd = periodEnd.UTC()
			period.AvgResponseHours = req.AvgResponseHours
			period.AvgRating = req.AvgRating
			period.OnTimeRate = req.OnTimeRate
			period.MeetsStandards = meets
			if err := tx.Save(&period).Error; err != nil {
				return fmt.Errorf("failed to update performance period: %w", err)
			}
		}

		result = &period
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListPeriods returns a seller's performance history, newest first
func (s *PerformanceService) ListPeriods(ctx context.Context, sellerID string) ([]models.PerformanceMetricsPeriod, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}

	var periods []models.PerformanceMetricsPeriod
	if err := s.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("period_start DESC").
		Find(&periods).Error; err != nil {
		return nil, fmt.Errorf("failed to list performance periods: %w", err)
	}
	return periods, nil
}
