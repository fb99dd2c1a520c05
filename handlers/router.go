package handlers

import (
	"net/http"

	"github.com/craftmarket/compliance-service/services"
)

// Handlers bundles all HTTP handlers for route registration
type Handlers struct {
	Compliance *ComplianceHandler
	Tax        *TaxHandler
	Seller     *SellerHandler
	Audit      *AuditHandler
}

// NewHandlers wires all handlers from their services
func NewHandlers(
	compliance *services.ComplianceService,
	tax *services.TaxService,
	disclosure *services.DisclosureService,
	performance *services.PerformanceService,
	audit *services.AuditService,
) *Handlers {
	return &Handlers{
		Compliance: NewComplianceHandler(compliance),
		Tax:        NewTaxHandler(tax),
		Seller:     NewSellerHandler(disclosure, performance),
		Audit:      NewAuditHandler(audit),
	}
}

// SetupRoutes registers all API routes on the mux
func (h *Handlers) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("PUT /api/v1/sellers/{id}/counters", h.Compliance.UpdateCounters)
	mux.HandleFunc("POST /api/v1/sellers/{id}/evaluate", h.Compliance.Evaluate)
	mux.HandleFunc("POST /api/v1/sellers/{id}/verification", h.Compliance.RequestVerification)
	mux.HandleFunc("GET /api/v1/sellers/{id}/verification", h.Compliance.GetVerification)
	mux.HandleFunc("POST /api/v1/sellers/{id}/verification/approve", h.Compliance.Approve)
	mux.HandleFunc("POST /api/v1/sellers/{id}/verification/reject", h.Compliance.Reject)
	mux.HandleFunc("POST /api/v1/sellers/{id}/verification/resubmit", h.Compliance.Resubmit)
	mux.HandleFunc("POST /api/v1/sellers/{id}/verification/reinstate", h.Compliance.Reinstate)
	mux.HandleFunc("GET /api/v1/verifications", h.Compliance.ListVerifications)
	mux.HandleFunc("GET /api/v1/verifications/expired", h.Compliance.ExpiredDeadlines)
	mux.HandleFunc("POST /api/v1/sweeps/verification-deadlines", h.Compliance.Sweep)

	mux.HandleFunc("POST /api/v1/sellers/{id}/tax/w9", h.Tax.SubmitW9)
	mux.HandleFunc("GET /api/v1/sellers/{id}/tax/w9", h.Tax.GetW9)
	mux.HandleFunc("POST /api/v1/sellers/{id}/tax/1099k/{year}", h.Tax.Compute1099K)

	mux.HandleFunc("PUT /api/v1/sellers/{id}/disclosure", h.Seller.UpsertDisclosure)
	mux.HandleFunc("GET /api/v1/sellers/{id}/disclosure", h.Seller.GetDisclosure)
	mux.HandleFunc("POST /api/v1/sellers/{id}/performance", h.Seller.RecordPerformance)
	mux.HandleFunc("GET /api/v1/sellers/{id}/performance", h.Seller.ListPerformance)

	mux.HandleFunc("GET /api/v1/audit-logs", h.Audit.GetAuditLogs)
}

// RouteTemplates lists every registered route for metric normalization
func RouteTemplates() []string {
	return []string{
		"/api/v1/sellers/{id}/counters",
		"/api/v1/sellers/{id}/evaluate",
		"/api/v1/sellers/{id}/verification",
		"/api/v1/sellers/{id}/verification/approve",
		"/api/v1/sellers/{id}/verification/reject",
		"/api/v1/sellers/{id}/verification/resubmit",
		"/api/v1/sellers/{id}/verification/reinstate",
		"/api/v1/verifications",
		"/api/v1/verifications/expired",
		"/api/v1/sweeps/verification-deadlines",
		"/api/v1/sellers/{id}/tax/w9",
		"/api/v1/sellers/{id}/tax/1099k/{year}",
		"/api/v1/sellers/{id}/disclosure",
		"/api/v1/sellers/{id}/performance",
		"/api/v1/audit-logs",
		"/healthz",
		"/metrics",
	}
}
