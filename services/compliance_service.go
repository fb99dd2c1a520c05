package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/craftmarket/compliance-service/config"
	"github.com/craftmarket/compliance-service/models"
	"github.com/craftmarket/compliance-service/monitoring"
	"gorm.io/gorm"
)

// ComplianceService owns the seller verification lifecycle: threshold
// evaluation, the admin-driven state machine, and the deadline-expiry sweep.
//
// Every transition is applied as one transaction: re-read the row, validate
// the transition, write guarded by the row version, and append the audit
// entry and notification outbox row. If any of those writes fail the whole
// transition rolls back.
type ComplianceService struct {
	db         *gorm.DB
	thresholds config.Thresholds

	// now is injected for deterministic deadline tests
	now func() time.Time
}

// NewComplianceService creates a new compliance service
func NewComplianceService(db *gorm.DB, thresholds config.Thresholds) *ComplianceService {
	return &ComplianceService{db: db, thresholds: thresholds, now: func() time.Time { return time.Now().UTC() }}
}

// UpdateRevenueCounters stores the rolling counters pushed by upstream order
// aggregation, creating the seller's verification row on first contact.
// Counters only increase within a tax year upstream; refund handling is out
// of scope.
func (s *ComplianceService) UpdateRevenueCounters(ctx context.Context, sellerID string, req *models.UpdateCountersRequest) (*models.SellerVerification, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}
	if req.RevenueAnnualCents < 0 || req.Revenue30DayCents < 0 || req.TransactionCount < 0 {
		return nil, fmt.Errorf("%w: counters must not be negative", ErrInvalidInput)
	}

	var result *models.SellerVerification
	err := s.withConflictRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var v models.SellerVerification
			err := tx.First(&v, "seller_id = ?", sellerID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				v = models.SellerVerification{
					SellerID:           sellerID,
					Revenue30DayCents:  req.Revenue30DayCents,
					RevenueAnnualCents: req.RevenueAnnualCents,
					TransactionCount:   req.TransactionCount,
					Status:             models.VerificationStatusUnverified,
				}
				if err := tx.Create(&v).Error; err != nil {
					return fmt.Errorf("failed to create verification record: %w", err)
				}
				result = &v
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load verification record: %w", err)
			}

			if err := s.updateGuarded(tx, &v, map[string]interface{}{
				"revenue_30_day_cents": req.Revenue30DayCents,
				"revenue_annual_cents": req.RevenueAnnualCents,
				"transaction_count":    req.TransactionCount,
			}); err != nil {
				return err
			}

			// Re-read so the caller sees the committed counters, not the
			// pre-update struct.
			updated, err := getVerification(tx, sellerID)
			if err != nil {
				return err
			}
			result = updated
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// EvaluateThresholds runs the threshold evaluator against the seller's
// current counters and applies its automatic effects in one transaction:
// W-9 request creation, the unverified→pending transition with its deadline,
// the public-disclosure requirement, and the 1099-K flag for the current tax
// year. Re-running against an unchanged seller is a no-op.
func (s *ComplianceService) EvaluateThresholds(ctx context.Context, sellerID string) (*models.RequiredActionsResponse, error) {
	var response *models.RequiredActionsResponse
	err := s.withConflictRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			v, err := getVerification(tx, sellerID)
			if err != nil {
				return err
			}

			var w9 models.TaxFormW9
			w9Err := tx.First(&w9, "seller_id = ?", sellerID).Error
			if w9Err != nil && !errors.Is(w9Err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load W-9 record: %w", w9Err)
			}
			hasW9Row := w9Err == nil

			var disclosure models.PublicDisclosure
			dscErr := tx.First(&disclosure, "seller_id = ?", sellerID).Error
			if dscErr != nil && !errors.Is(dscErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("failed to load disclosure record: %w", dscErr)
			}

			in := EvaluationInput{
				SellerID:           sellerID,
				Revenue30DayCents:  v.Revenue30DayCents,
				RevenueAnnualCents: v.RevenueAnnualCents,
				TransactionCount:   v.TransactionCount,
				W9Submitted:        hasW9Row && w9.SubmittedAt != nil,
				VerificationStatus: v.Status,
				DisclosureActive:   dscErr == nil && disclosure.IsActive,
				DisclosureComplete: dscErr == nil && disclosure.IsComplete(),
			}
			result, err := Evaluate(in, s.thresholds)
			if err != nil {
				return err
			}

			if result.Requires(models.ActionSubmitW9) && !hasW9Row {
				if err := s.createW9Request(tx, v); err != nil {
					return err
				}
			}

			if result.Requires(models.ActionVerifyIdentity) {
				if err := s.triggerVerification(tx, v); err != nil {
					return err
				}
			}

			if result.Requires(models.ActionPublicDisclosure) {
				if err := s.notifyDisclosureRequired(tx, v); err != nil {
					return err
				}
			}

			if result.Form1099KRequired {
				if _, err := s.flag1099K(tx, v, s.now().Year()); err != nil {
					return err
				}
			}

			response = &models.RequiredActionsResponse{
				SellerID:         sellerID,
				Actions:          result.Actions,
				DisclosureBreach: result.DisclosureBreach,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	monitoring.RecordEvaluation()
	return response, nil
}

// RequestVerification is the idempotent create-or-fetch of a seller's
// verification record. A missing row is created directly in pending with a
// fresh deadline; an unverified row is moved to pending; any other status is
// returned unchanged.
func (s *ComplianceService) RequestVerification(ctx context.Context, sellerID string) (*models.SellerVerification, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}

	var result *models.SellerVerification
	err := s.withConflictRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var v models.SellerVerification
			err := tx.First(&v, "seller_id = ?", sellerID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				now := s.now()
				deadline := now.Add(s.thresholds.VerificationDeadline())
				v = models.SellerVerification{
					SellerID:                sellerID,
					Status:                  models.VerificationStatusPending,
					VerificationTriggeredAt: &now,
					VerificationDeadline:    &deadline,
				}
				if err := tx.Create(&v).Error; err != nil {
					return fmt.Errorf("failed to create verification record: %w", err)
				}
				if err := WriteInTx(tx, AuditEntry{
					ActorID:    "system",
					ActorType:  models.ActorTypeSystem,
					Action:     models.AuditActionVerificationRequested,
					EntityType: models.EntityTypeSellerVerification,
					EntityID:   v.VerificationID,
					After:      &v,
				}); err != nil {
					return err
				}
				if err := enqueueVerificationRequired(tx, &v, deadline); err != nil {
					return err
				}
				result = &v
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to load verification record: %w", err)
			}

			if v.Status == models.VerificationStatusUnverified {
				if err := s.triggerVerification(tx, &v); err != nil {
					return err
				}
			}
			result = &v
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ApproveVerification applies the admin approval: pending → verified.
// Notes are required; the deadline is cleared.
func (s *ComplianceService) ApproveVerification(ctx context.Context, sellerID, adminID, notes string) (*models.SellerVerification, error) {
	if adminID == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("%w: approval notes are required", ErrInvalidInput)
	}

	return s.applyTransition(ctx, sellerID, transition{
		from: models.VerificationStatusPending,
		to:   models.VerificationStatusVerified,
		mutate: func(v *models.SellerVerification, now time.Time) map[string]interface{} {
			return map[string]interface{}{
				"status":                models.VerificationStatusVerified,
				"verification_deadline": nil,
				"reviewed_by":           adminID,
				"review_notes":          notes,
			}
		},
		actorID:   adminID,
		actorType: models.ActorTypeAdmin,
		action:    models.AuditActionVerificationApproved,
		details:   notes,
		notify: &notificationSpec{
			Type:    models.NotificationVerificationApproved,
			Title:   "Identity verification approved",
			Content: "Your seller identity verification has been approved.",
		},
	})
}

// RejectVerification applies the admin rejection: pending → rejected.
// A non-empty reason is required and is surfaced verbatim to the seller;
// the deadline is not cleared, so the original clock keeps running until
// resubmission.
func (s *ComplianceService) RejectVerification(ctx context.Context, sellerID, adminID, reason string) (*models.SellerVerification, error) {
	if adminID == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrInvalidInput)
	}

	return s.applyTransition(ctx, sellerID, transition{
		from: models.VerificationStatusPending,
		to:   models.VerificationStatusRejected,
		mutate: func(v *models.SellerVerification, now time.Time) map[string]interface{} {
			return map[string]interface{}{
				"status":           models.VerificationStatusRejected,
				"reviewed_by":      adminID,
				"rejection_reason": reason,
			}
		},
		actorID:   adminID,
		actorType: models.ActorTypeAdmin,
		action:    models.AuditActionVerificationRejected,
		details:   reason,
		notify: &notificationSpec{
			Type:     models.NotificationVerificationRejected,
			Title:    "Identity verification rejected",
			Content:  "Your seller identity verification was rejected: " + reason,
			Metadata: map[string]string{"reason": reason},
		},
	})
}

// ResubmitVerification applies the seller's resubmission after a rejection:
// rejected → pending, with the deadline reset to a fresh window from the
// resubmission time rather than the original trigger.
func (s *ComplianceService) ResubmitVerification(ctx context.Context, sellerID string) (*models.SellerVerification, error) {
	return s.applyTransition(ctx, sellerID, transition{
		from: models.VerificationStatusRejected,
		to:   models.VerificationStatusPending,
		mutate: func(v *models.SellerVerification, now time.Time) map[string]interface{} {
			deadline := now.Add(s.thresholds.VerificationDeadline())
			return map[string]interface{}{
				"status":                models.VerificationStatusPending,
				"verification_deadline": deadline,
			}
		},
		actorID:   sellerID,
		actorType: models.ActorTypeSeller,
		action:    models.AuditActionVerificationResubmit,
	})
}

// ReinstateVerification is the manual admin override out of suspension:
// suspended → pending, restarting the deadline clock. Notes are required.
func (s *ComplianceService) ReinstateVerification(ctx context.Context, sellerID, adminID, notes string) (*models.SellerVerification, error) {
	if adminID == "" {
		return nil, fmt.Errorf("%w: admin id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(notes) == "" {
		return nil, fmt.Errorf("%w: reinstatement notes are required", ErrInvalidInput)
	}

	return s.applyTransition(ctx, sellerID, transition{
		from: models.VerificationStatusSuspended,
		to:   models.VerificationStatusPending,
		mutate: func(v *models.SellerVerification, now time.Time) map[string]interface{} {
			deadline := now.Add(s.thresholds.VerificationDeadline())
			return map[string]interface{}{
				"status":                models.VerificationStatusPending,
				"verification_deadline": deadline,
				"suspension_date":       nil,
				"reviewed_by":           adminID,
				"review_notes":          notes,
			}
		},
		actorID:   adminID,
		actorType: models.ActorTypeAdmin,
		action:    models.AuditActionVerificationReinstate,
		details:   notes,
		notify: &notificationSpec{
			Type:    models.NotificationVerificationRequired,
			Title:   "Identity verification reopened",
			Content: "Your account has been reinstated. Complete identity verification within the new deadline.",
		},
	})
}

// CheckExpiredDeadlines returns the sellers whose verification deadline has
// passed while still pending. Read-only and idempotent; already-suspended
// sellers are never returned.
func (s *ComplianceService) CheckExpiredDeadlines(ctx context.Context, now time.Time) ([]string, error) {
	var sellerIDs []string
	err := s.db.WithContext(ctx).Model(&models.SellerVerification{}).
		Where("status = ?", models.VerificationStatusPending).
		Where("verification_deadline IS NOT NULL AND verification_deadline < ?", now.UTC()).
		Order("verification_deadline ASC").
		Pluck("seller_id", &sellerIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query expired deadlines: %w", err)
	}
	return sellerIDs, nil
}

// SuspendExpired is the deadline-expiry sweep invoked by the external
// scheduler: every seller still pending past their deadline is suspended.
// The status guard on the write makes re-runs no-ops: an already-suspended
// seller is not touched and gets no duplicate notification.
func (s *ComplianceService) SuspendExpired(ctx context.Context, now time.Time) ([]string, error) {
	expired, err := s.CheckExpiredDeadlines(ctx, now)
	if err != nil {
		return nil, err
	}

	suspended := make([]string, 0, len(expired))
	for _, sellerID := range expired {
		_, err := s.applyTransition(ctx, sellerID, transition{
			from: models.VerificationStatusPending,
			to:   models.VerificationStatusSuspended,
			mutate: func(v *models.SellerVerification, txNow time.Time) map[string]interface{} {
				return map[string]interface{}{
					"status":          models.VerificationStatusSuspended,
					"suspension_date": now.UTC(),
				}
			},
			actorID:   "deadline-sweep",
			actorType: models.ActorTypeSystem,
			action:    models.AuditActionVerificationSuspended,
			notify: &notificationSpec{
				Type:    models.NotificationVerificationSuspended,
				Title:   "Account suspended",
				Content: "Your seller account was suspended because identity verification was not completed by the deadline.",
			},
		})
		if errors.Is(err, ErrInvalidTransition) {
			// Raced with an admin decision between the query and the write;
			// the seller is no longer pending, so skip.
			slog.Info("Skipping suspension, seller no longer pending", "sellerId", sellerID)
			continue
		}
		if err != nil {
			return suspended, fmt.Errorf("failed to suspend seller %s: %w", sellerID, err)
		}
		suspended = append(suspended, sellerID)
	}
	monitoring.RecordSweepSuspensions(len(suspended))
	return suspended, nil
}

// GetVerification fetches one seller's verification record
func (s *ComplianceService) GetVerification(ctx context.Context, sellerID string) (*models.SellerVerification, error) {
	return getVerification(s.db.WithContext(ctx), sellerID)
}

// ListVerifications returns the admin review queue, optionally filtered by
// status, oldest deadline first.
func (s *ComplianceService) ListVerifications(ctx context.Context, status *models.VerificationStatus) ([]models.SellerVerification, error) {
	query := s.db.WithContext(ctx).Model(&models.SellerVerification{})
	if status != nil {
		if !status.IsValid() {
			return nil, fmt.Errorf("%w: unknown verification status %q", ErrInvalidInput, *status)
		}
		query = query.Where("status = ?", *status)
	}

	var verifications []models.SellerVerification
	if err := query.Order("verification_deadline ASC NULLS LAST").Order("created_at ASC").Find(&verifications).Error; err != nil {
		return nil, fmt.Errorf("failed to list verifications: %w", err)
	}
	return verifications, nil
}

// transition describes one state machine edge and its side effects
type transition struct {
	from   models.VerificationStatus
	to     models.VerificationStatus
	mutate func(v *models.SellerVerification, now time.Time) map[string]interface{}

	actorID   string
	actorType models.ActorType
	action    models.AuditAction
	details   string
	notify    *notificationSpec
}

// applyTransition runs one guarded state machine transition: load, validate
// the source status, write with the version check, audit, and enqueue the
// notification, all in one transaction. Retried once on a version conflict.
func (s *ComplianceService) applyTransition(ctx context.Context, sellerID string, t transition) (*models.SellerVerification, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}

	var result *models.SellerVerification
	err := s.withConflictRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			v, err := getVerification(tx, sellerID)
			if err != nil {
				return err
			}
			if v.Status != t.from {
				return fmt.Errorf("%w: cannot move seller %s from %s to %s", ErrInvalidTransition, sellerID, v.Status, t.to)
			}

			before := *v
			now := s.now()
			updates := t.mutate(v, now)

			if err := s.updateGuarded(tx, v, updates); err != nil {
				return err
			}

			// Re-read so the audit after-state and the returned record
			// reflect what was committed.
			updated, err := getVerification(tx, sellerID)
			if err != nil {
				return err
			}

			if err := WriteInTx(tx, AuditEntry{
				ActorID:    t.actorID,
				ActorType:  t.actorType,
				Action:     t.action,
				EntityType: models.EntityTypeSellerVerification,
				EntityID:   v.VerificationID,
				Before:     &before,
				After:      updated,
				Details:    t.details,
			}); err != nil {
				return err
			}

			if t.notify != nil {
				if err := enqueueInTx(tx, v.SellerID, *t.notify); err != nil {
					return err
				}
			}

			result = updated
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordTransition(string(t.from), string(t.to))
	slog.Info("Verification transition applied",
		"sellerId", sellerID, "from", t.from, "to", t.to, "action", t.action, "actor", t.actorID)
	return result, nil
}

// triggerVerification moves an unverified seller to pending with a fresh
// deadline, inside the caller's transaction.
func (s *ComplianceService) triggerVerification(tx *gorm.DB, v *models.SellerVerification) error {
	if v.Status != models.VerificationStatusUnverified {
		return nil
	}

	before := *v
	now := s.now()
	deadline := now.Add(s.thresholds.VerificationDeadline())

	if err := s.updateGuarded(tx, v, map[string]interface{}{
		"status":                    models.VerificationStatusPending,
		"verification_triggered_at": now,
		"verification_deadline":     deadline,
	}); err != nil {
		return err
	}

	updated, err := getVerification(tx, v.SellerID)
	if err != nil {
		return err
	}
	*v = *updated

	if err := WriteInTx(tx, AuditEntry{
		ActorID:    "threshold-evaluator",
		ActorType:  models.ActorTypeSystem,
		Action:     models.AuditActionVerificationRequested,
		EntityType: models.EntityTypeSellerVerification,
		EntityID:   v.VerificationID,
		Before:     &before,
		After:      updated,
	}); err != nil {
		return err
	}

	if err := enqueueVerificationRequired(tx, v, deadline); err != nil {
		return err
	}

	monitoring.RecordTransition(string(models.VerificationStatusUnverified), string(models.VerificationStatusPending))
	return nil
}

// createW9Request creates the W-9 placeholder row recording when the
// obligation was triggered, and notifies the seller.
func (s *ComplianceService) createW9Request(tx *gorm.DB, v *models.SellerVerification) error {
	w9 := models.TaxFormW9{
		SellerID:    v.SellerID,
		RequestedAt: s.now(),
	}
	if err := tx.Create(&w9).Error; err != nil {
		return fmt.Errorf("failed to create W-9 request: %w", err)
	}

	if err := WriteInTx(tx, AuditEntry{
		ActorID:    "threshold-evaluator",
		ActorType:  models.ActorTypeSystem,
		Action:     models.AuditActionW9Requested,
		EntityType: models.EntityTypeTaxFormW9,
		EntityID:   w9.FormID,
		After:      &w9,
	}); err != nil {
		return err
	}

	return enqueueInTx(tx, v.SellerID, notificationSpec{
		Type:    models.NotificationW9Required,
		Title:   "W-9 form required",
		Content: "Your annual revenue now requires a W-9 taxpayer form on file. Submit it from your seller dashboard.",
	})
}

// notifyDisclosureRequired enqueues the disclosure notification once per
// seller; the pending/sent guard keeps re-evaluation from spamming.
func (s *ComplianceService) notifyDisclosureRequired(tx *gorm.DB, v *models.SellerVerification) error {
	var count int64
	if err := tx.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", v.SellerID, models.NotificationDisclosureRequired).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check disclosure notifications: %w", err)
	}
	if count > 0 {
		return nil
	}

	return enqueueInTx(tx, v.SellerID, notificationSpec{
		Type:    models.NotificationDisclosureRequired,
		Title:   "Public business disclosure required",
		Content: "Your annual revenue now requires public business contact information on your shop page.",
	})
}

// flag1099K upserts the seller's 1099-K record for the tax year. The
// FormRequired flag is monotonic within a year: once set it is never
// cleared by recomputation.
func (s *ComplianceService) flag1099K(tx *gorm.DB, v *models.SellerVerification, taxYear int) (*models.Tax1099K, error) {
	var record models.Tax1099K
	err := tx.First(&record, "seller_id = ? AND tax_year = ?", v.SellerID, taxYear).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record = models.Tax1099K{
			SellerID:          v.SellerID,
			TaxYear:           taxYear,
			GrossRevenueCents: v.RevenueAnnualCents,
			TotalTransactions: v.TransactionCount,
			FormRequired:      true,
		}
		if err := tx.Create(&record).Error; err != nil {
			return nil, fmt.Errorf("failed to create 1099-K record: %w", err)
		}
		if err := WriteInTx(tx, AuditEntry{
			ActorID:    "threshold-evaluator",
			ActorType:  models.ActorTypeSystem,
			Action:     models.AuditActionForm1099KFlagged,
			EntityType: models.EntityTypeTax1099K,
			EntityID:   record.RecordID,
			After:      &record,
		}); err != nil {
			return nil, err
		}
		return &record, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load 1099-K record: %w", err)
	}

	updates := map[string]interface{}{
		"gross_revenue_cents": v.RevenueAnnualCents,
		"total_transactions":  v.TransactionCount,
		"form_required":       true,
	}
	if err := tx.Model(&record).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update 1099-K record: %w", err)
	}

	if !record.FormRequired {
		before := record
		record.FormRequired = true
		if err := WriteInTx(tx, AuditEntry{
			ActorID:    "threshold-evaluator",
			ActorType:  models.ActorTypeSystem,
			Action:     models.AuditActionForm1099KFlagged,
			EntityType: models.EntityTypeTax1099K,
			EntityID:   record.RecordID,
			Before:     &before,
			After:      &record,
		}); err != nil {
			return nil, err
		}
	}
	return &record, nil
}

// updateGuarded applies column updates guarded by the row version. Zero rows
// affected means another writer won; the caller's retry re-reads and
// re-validates.
func (s *ComplianceService) updateGuarded(tx *gorm.DB, v *models.SellerVerification, updates map[string]interface{}) error {
	updates["version"] = v.Version + 1
	res := tx.Model(&models.SellerVerification{}).
		Where("verification_id = ? AND version = ?", v.VerificationID, v.Version).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to update verification record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: verification record for seller %s changed concurrently", ErrConcurrentModification, v.SellerID)
	}
	v.Version++
	return nil
}

// withConflictRetry retries the operation once on an optimistic-concurrency
// conflict before surfacing the error to the caller.
func (s *ComplianceService) withConflictRetry(fn func() error) error {
	err := fn()
	if errors.Is(err, ErrConcurrentModification) {
		slog.Warn("Optimistic concurrency conflict, retrying once", "error", err)
		return fn()
	}
	return err
}

func getVerification(tx *gorm.DB, sellerID string) (*models.SellerVerification, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}
	var v models.SellerVerification
	err := tx.First(&v, "seller_id = ?", sellerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: no verification record for seller %s", ErrNotFound, sellerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load verification record: %w", err)
	}
	return &v, nil
}

func enqueueVerificationRequired(tx *gorm.DB, v *models.SellerVerification, deadline time.Time) error {
	return enqueueInTx(tx, v.SellerID, notificationSpec{
		Type:    models.NotificationVerificationRequired,
		Title:   "Identity verification required",
		Content: "Your sales volume now requires identity verification. Complete it before the deadline to keep selling.",
		Metadata: map[string]string{
			"deadline": deadline.UTC().Format(time.RFC3339),
		},
	})
}
