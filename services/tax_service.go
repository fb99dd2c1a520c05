package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/craftmarket/compliance-service/config"
	"github.com/craftmarket/compliance-service/models"
	"gorm.io/gorm"
)

// maskedTINPattern matches a masked taxpayer id: only the last four digits
// visible, e.g. "***-**-1234" or "****1234".
var maskedTINPattern = regexp.MustCompile(`^[*-]+\d{4}$`)

// TaxService handles W-9 intake and 1099-K eligibility
type TaxService struct {
	db         *gorm.DB
	thresholds config.Thresholds

	now func() time.Time
}

// NewTaxService creates a new tax service
func NewTaxService(db *gorm.DB, thresholds config.Thresholds) *TaxService {
	return &TaxService{db: db, thresholds: thresholds, now: func() time.Time { return time.Now().UTC() }}
}

// SubmitW9 records a seller's W-9 submission. The taxpayer id must arrive
// already masked. The submission timestamp, once set, is never cleared:
// an amended submission overwrites the taxpayer fields but keeps the
// original SubmittedAt as the historical trigger.
func (s *TaxService) SubmitW9(ctx context.Context, sellerID string, req *models.SubmitW9Request) (*models.TaxFormW9, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.LegalName) == "" {
		return nil, fmt.Errorf("%w: legal name is required", ErrInvalidInput)
	}
	if len(req.LegalName) > models.MaxNameLength {
		return nil, fmt.Errorf("%w: legal name exceeds %d characters", ErrInvalidInput, models.MaxNameLength)
	}
	if !maskedTINPattern.MatchString(req.TaxpayerIDMasked) {
		return nil, fmt.Errorf("%w: taxpayer id must be masked with only the last four digits visible", ErrInvalidInput)
	}

	var result *models.TaxFormW9
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var form models.TaxFormW9
		err := tx.First(&form, "seller_id = ?", sellerID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to load W-9 record: %w", err)
		}

		now := s.now()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			form = models.TaxFormW9{
				SellerID:         sellerID,
				TaxpayerIDMasked: req.TaxpayerIDMasked,
				LegalName:        req.LegalName,
				RequestedAt:      now,
				SubmittedAt:      &now,
			}
			if err := tx.Create(&form).Error; err != nil {
				return fmt.Errorf("failed to create W-9 record: %w", err)
			}
		} else {
			updates := map[string]interface{}{
				"taxpayer_id_masked": req.TaxpayerIDMasked,
				"legal_name":         req.LegalName,
				// Amendments reset verification until re-checked
				"verified": false,
			}
			if form.SubmittedAt == nil {
				updates["submitted_at"] = now
				form.SubmittedAt = &now
			}
			if err := tx.Model(&form).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update W-9 record: %w", err)
			}
			form.TaxpayerIDMasked = req.TaxpayerIDMasked
			form.LegalName = req.LegalName
			form.Verified = false
		}

		if err := WriteInTx(tx, AuditEntry{
			ActorID:    sellerID,
			ActorType:  models.ActorTypeSeller,
			Action:     models.AuditActionW9Submitted,
			EntityType: models.EntityTypeTaxFormW9,
			EntityID:   form.FormID,
			After:      &form,
		}); err != nil {
			return err
		}

		result = &form
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ComputeTaxFormEligibility derives 1099-K eligibility for a seller and tax
// year from the stored counters, upserting the per-year record. Eligibility
// is monotonic within a year: once FormRequired is true, recomputation
// never clears it.
func (s *TaxService) ComputeTaxFormEligibility(ctx context.Context, sellerID string, taxYear int) (*models.Eligibility1099KResponse, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}
	if taxYear < 2000 || taxYear > s.now().Year()+1 {
		return nil, fmt.Errorf("%w: tax year %d out of range", ErrInvalidInput, taxYear)
	}

	var response *models.Eligibility1099KResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := getVerification(tx, sellerID)
		if err != nil {
			return err
		}

		required := Form1099KRequired(v.RevenueAnnualCents, v.TransactionCount, s.thresholds)

		var record models.Tax1099K
		err = tx.First(&record, "seller_id = ? AND tax_year = ?", sellerID, taxYear).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			record = models.Tax1099K{
				SellerID:          sellerID,
				TaxYear:           taxYear,
				GrossRevenueCents: v.RevenueAnnualCents,
				TotalTransactions: v.TransactionCount,
				FormRequired:      required,
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to create 1099-K record: %w", err)
			}
			if required {
				if err := WriteInTx(tx, AuditEntry{
					ActorID:    "eligibility-calculator",
					ActorType:  models.ActorTypeSystem,
					Action:     models.AuditActionForm1099KFlagged,
					EntityType: models.EntityTypeTax1099K,
					EntityID:   record.RecordID,
					After:      &record,
				}); err != nil {
					return err
				}
			}
		} else if err != nil {
			return fmt.Errorf("failed to load 1099-K record: %w", err)
		} else {
			newlyRequired := required && !record.FormRequired
			updates := map[string]interface{}{
				"gross_revenue_cents": v.RevenueAnnualCents,
				"total_transactions":  v.TransactionCount,
				// Monotonic: never clear an already-set flag
				"form_required": record.FormRequired || required,
			}
			if err := tx.Model(&record).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update 1099-K record: %w", err)
			}
			before := record
			record.GrossRevenueCents = v.RevenueAnnualCents
			record.TotalTransactions = v.TransactionCount
			record.FormRequired = record.FormRequired || required

			if newlyRequired {
				if err := WriteInTx(tx, AuditEntry{
					ActorID:    "eligibility-calculator",
					ActorType:  models.ActorTypeSystem,
					Action:     models.AuditActionForm1099KFlagged,
					EntityType: models.EntityTypeTax1099K,
					EntityID:   record.RecordID,
					Before:     &before,
					After:      &record,
				}); err != nil {
					return err
				}
			}
		}

		response = &models.Eligibility1099KResponse{
			SellerID:          sellerID,
			TaxYear:           taxYear,
			GrossRevenueCents: record.GrossRevenueCents,
			TotalTransactions: record.TotalTransactions,
			FormRequired:      record.FormRequired,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

// GetW9 fetches a seller's W-9 record
func (s *TaxService) GetW9(ctx context.Context, sellerID string) (*models.TaxFormW9, error) {
	var form models.TaxFormW9
	err := s.db.WithContext(ctx).First(&form, "seller_id = ?", sellerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no W-9 record for seller %s", ErrNotFound, sellerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load W-9 record: %w", err)
	}
	return &form, nil
}
