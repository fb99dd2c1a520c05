package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/craftmarket/compliance-service/models"
	"gorm.io/gorm"
)

// DisclosureService handles public business disclosure records
type DisclosureService struct {
	db *gorm.DB
}

// NewDisclosureService creates a new disclosure service
func NewDisclosureService(db *gorm.DB) *DisclosureService {
	return &DisclosureService{db: db}
}

// UpsertDisclosure creates or updates a seller's public disclosure. The
// record only becomes active once all contact fields are present.
func (s *DisclosureService) UpsertDisclosure(ctx context.Context, sellerID string, req *models.UpsertDisclosureRequest) (*models.PublicDisclosure, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.BusinessName) == "" {
		return nil, fmt.Errorf("%w: business name is required", ErrInvalidInput)
	}

	var result *models.PublicDisclosure
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var disclosure models.PublicDisclosure
		err := tx.First(&disclosure, "seller_id = ?", sellerID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load disclosure record: %w", err)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			disclosure = models.PublicDisclosure{
				SellerID:        sellerID,
				BusinessName:    req.BusinessName,
				BusinessAddress: req.BusinessAddress,
				BusinessEmail:   req.BusinessEmail,
				BusinessPhone:   req.BusinessPhone,
			}
			disclosure.IsActive = disclosure.IsComplete()
			if err := tx.Create(&disclosure).Error; err != nil {
				return fmt.Errorf("failed to create disclosure record: %w", err)
			}
		} else {
			disclosure.BusinessName = req.BusinessName
			disclosure.BusinessAddress = req.BusinessAddress
			disclosure.BusinessEmail = req.BusinessEmail
			disclosure.BusinessPhone = req.BusinessPhone
			disclosure.IsActive = disclosure.IsComplete()
			if err := tx.Save(&disclosure).Error; err != nil {
				return fmt.Errorf("failed to update disclosure record: %w", err)
			}
		}

		result = &disclosure
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetDisclosure fetches a seller's disclosure record
func (s *DisclosureService) GetDisclosure(ctx context.Context, sellerID string) (*models.PublicDisclosure, error) {
	var disclosure models.PublicDisclosure
	err := s.db.WithContext(ctx).First(&disclosure, "seller_id = ?", sellerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no disclosure record for seller %s", ErrNotFound, sellerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load disclosure record: %w", err)
	}
	return &disclosure, nil
}
