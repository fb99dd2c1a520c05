package models

import "time"

// ErrorResponse is the standard error payload for all endpoints
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// VerificationResponse represents a seller verification record over the wire.
// Timestamps are RFC3339 strings; nil pointers are omitted.
type VerificationResponse struct {
	VerificationID          string             `json:"verificationId"`
	SellerID                string             `json:"sellerId"`
	Status                  VerificationStatus `json:"status"`
	Revenue30DayCents       int64              `json:"revenue30DayCents"`
	RevenueAnnualCents      int64              `json:"revenueAnnualCents"`
	TransactionCount        int                `json:"transactionCount"`
	VerificationTriggeredAt *string            `json:"verificationTriggeredAt,omitempty"`
	VerificationDeadline    *string            `json:"verificationDeadline,omitempty"`
	SuspensionDate          *string            `json:"suspensionDate,omitempty"`
	ReviewedBy              *string            `json:"reviewedBy,omitempty"`
	ReviewNotes             *string            `json:"reviewNotes,omitempty"`
	RejectionReason         *string            `json:"rejectionReason,omitempty"`
	CreatedAt               string             `json:"createdAt"`
	UpdatedAt               string             `json:"updatedAt"`
}

// NewVerificationResponse converts a verification record to its wire shape
func NewVerificationResponse(v *SellerVerification) *VerificationResponse {
	return &VerificationResponse{
		VerificationID:          v.VerificationID,
		SellerID:                v.SellerID,
		Status:                  v.Status,
		Revenue30DayCents:       v.Revenue30DayCents,
		RevenueAnnualCents:      v.RevenueAnnualCents,
		TransactionCount:        v.TransactionCount,
		VerificationTriggeredAt: formatTimePtr(v.VerificationTriggeredAt),
		VerificationDeadline:    formatTimePtr(v.VerificationDeadline),
		SuspensionDate:          formatTimePtr(v.SuspensionDate),
		ReviewedBy:              v.ReviewedBy,
		ReviewNotes:             v.ReviewNotes,
		RejectionReason:         v.RejectionReason,
		CreatedAt:               v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:               v.UpdatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.UTC().Format(time.RFC3339)
	return &formatted
}

// RequiredActionsResponse is the evaluator output for one seller
type RequiredActionsResponse struct {
	SellerID string           `json:"sellerId"`
	Actions  []RequiredAction `json:"actions"`

	// DisclosureBreach is set when the seller is above the disclosure
	// threshold with an active but incomplete disclosure record.
	DisclosureBreach bool `json:"disclosureBreach"`
}

// Eligibility1099KResponse reports 1099-K eligibility for one tax year
type Eligibility1099KResponse struct {
	SellerID          string `json:"sellerId"`
	TaxYear           int    `json:"taxYear"`
	GrossRevenueCents int64  `json:"grossRevenueCents"`
	TotalTransactions int    `json:"totalTransactions"`
	FormRequired      bool   `json:"formRequired"`
}

// ExpiredDeadlinesResponse lists sellers whose verification deadline has
// passed while still pending
type ExpiredDeadlinesResponse struct {
	SellerIDs []string `json:"sellerIds"`
}

// SweepResponse reports the outcome of a deadline-expiry sweep
type SweepResponse struct {
	Suspended []string `json:"suspended"`
}

// AuditLogsResponse is a paginated audit log listing
type AuditLogsResponse struct {
	Logs   []ComplianceAuditLog `json:"logs"`
	Total  int64                `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}
