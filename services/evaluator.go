package services

import (
	"fmt"

	"github.com/craftmarket/compliance-service/config"
	"github.com/craftmarket/compliance-service/models"
)

// EvaluationInput is a snapshot of a seller's counters and existing
// compliance records, as read by the service layer.
type EvaluationInput struct {
	SellerID           string
	Revenue30DayCents  int64
	RevenueAnnualCents int64
	TransactionCount   int

	W9Submitted        bool
	VerificationStatus models.VerificationStatus
	DisclosureActive   bool
	DisclosureComplete bool
}

// EvaluationResult is the set of obligations the seller has not yet
// satisfied. Thresholds are evaluated independently; a seller can owe W-9,
// verification and disclosure simultaneously.
type EvaluationResult struct {
	Actions []models.RequiredAction

	// DisclosureBreach is set when the seller is above the disclosure
	// threshold with an active but incomplete disclosure record.
	DisclosureBreach bool

	// Form1099KRequired marks 1099-K eligibility for the current tax year.
	Form1099KRequired bool
}

// Requires reports whether the result includes the given action.
func (r *EvaluationResult) Requires(action models.RequiredAction) bool {
	for _, a := range r.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Evaluate maps a seller's rolling counters and existing records to the set
// of required compliance actions. It is a pure function: no I/O, no
// mutation. Refunds are out of scope upstream, so counters are assumed to
// only increase within a tax year; decreasing revenue is not handled here.
func Evaluate(in EvaluationInput, thresholds config.Thresholds) (*EvaluationResult, error) {
	if in.SellerID == "" {
		return nil, fmt.Errorf("%w: seller id is required", ErrInvalidInput)
	}
	if in.RevenueAnnualCents < 0 || in.Revenue30DayCents < 0 {
		return nil, fmt.Errorf("%w: revenue must not be negative", ErrInvalidInput)
	}
	if in.TransactionCount < 0 {
		return nil, fmt.Errorf("%w: transaction count must not be negative", ErrInvalidInput)
	}
	if in.VerificationStatus != "" && !in.VerificationStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown verification status %q", ErrInvalidInput, in.VerificationStatus)
	}

	result := &EvaluationResult{}

	if in.RevenueAnnualCents >= thresholds.W9RevenueCents && !in.W9Submitted {
		result.Actions = append(result.Actions, models.ActionSubmitW9)
	}

	status := in.VerificationStatus
	if status == "" {
		status = models.VerificationStatusUnverified
	}
	if in.RevenueAnnualCents >= thresholds.VerificationRevenueCents && status == models.VerificationStatusUnverified {
		result.Actions = append(result.Actions, models.ActionVerifyIdentity)
	}

	if in.RevenueAnnualCents >= thresholds.DisclosureRevenueCents {
		if !in.DisclosureActive {
			result.Actions = append(result.Actions, models.ActionPublicDisclosure)
		} else if !in.DisclosureComplete {
			result.DisclosureBreach = true
		}
	}

	result.Form1099KRequired = Form1099KRequired(in.RevenueAnnualCents, in.TransactionCount, thresholds)

	return result, nil
}

// Form1099KRequired reports 1099-K eligibility for a tax year. Both
// thresholds are inclusive and AND'd; there is no partial-year prorating.
func Form1099KRequired(grossRevenueCents int64, totalTransactions int, thresholds config.Thresholds) bool {
	return grossRevenueCents >= thresholds.Form1099KRevenueCents &&
		totalTransactions >= thresholds.Form1099KTransactions
}

// MeetsPerformanceStandards derives the standards flag for one performance
// window from the configured minimums.
func MeetsPerformanceStandards(avgResponseHours, avgRating, onTimeRate float64, standards config.PerformanceStandards) bool {
	return avgResponseHours <= standards.MaxAvgResponseHours &&
		avgRating >= standards.MinAvgRating &&
		onTimeRate >= standards.MinOnTimeRate
}
