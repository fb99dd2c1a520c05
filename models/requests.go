package models

// UpdateCountersRequest carries the rolling revenue counters pushed by the
// upstream order-aggregation pipeline. Monetary values are US cents.
type UpdateCountersRequest struct {
	Revenue30DayCents  int64 `json:"revenue30DayCents"`
	RevenueAnnualCents int64 `json:"revenueAnnualCents"`
	TransactionCount   int   `json:"transactionCount"`
}

// ApproveVerificationRequest represents an admin approval action
type ApproveVerificationRequest struct {
	AdminID string `json:"adminId"`
	Notes   string `json:"notes"`
}

// RejectVerificationRequest represents an admin rejection action
type RejectVerificationRequest struct {
	AdminID string `json:"adminId"`
	Reason  string `json:"reason"`
}

// ReinstateVerificationRequest represents an admin override out of suspension
type ReinstateVerificationRequest struct {
	AdminID string `json:"adminId"`
	Notes   string `json:"notes"`
}

// SubmitW9Request represents a seller's W-9 submission.
// TaxpayerIDMasked must already be masked by the intake layer; this service
// never receives a full TIN.
type SubmitW9Request struct {
	TaxpayerIDMasked string `json:"taxpayerIdMasked"`
	LegalName        string `json:"legalName"`
}

// UpsertDisclosureRequest represents a seller's public disclosure submission
type UpsertDisclosureRequest struct {
	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`
	BusinessEmail   string `json:"businessEmail"`
	BusinessPhone   string `json:"businessPhone"`
}

// RecordPerformanceRequest represents one seller performance window
type RecordPerformanceRequest struct {
	PeriodStart      string  `json:"periodStart"` // RFC3339
	PeriodEnd        string  `json:"periodEnd"`   // RFC3339
	AvgResponseHours float64 `json:"avgResponseHours"`
	AvgRating        float64 `json:"avgRating"`
	OnTimeRate       float64 `json:"onTimeRate"`
}
