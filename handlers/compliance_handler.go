package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/craftmarket/compliance-service/models"
	"github.com/craftmarket/compliance-service/services"
	"github.com/craftmarket/compliance-service/utils"
)

// ComplianceHandler handles HTTP requests for the verification lifecycle
type ComplianceHandler struct {
	compliance *services.ComplianceService
}

// NewComplianceHandler creates a new compliance handler
func NewComplianceHandler(compliance *services.ComplianceService) *ComplianceHandler {
	return &ComplianceHandler{compliance: compliance}
}

// UpdateCounters handles PUT /api/v1/sellers/{id}/counters
func (h *ComplianceHandler) UpdateCounters(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	var req models.UpdateCountersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	v, err := h.compliance.UpdateRevenueCounters(r.Context(), sellerID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.NewVerificationResponse(v))
}

// Evaluate handles POST /api/v1/sellers/{id}/evaluate
func (h *ComplianceHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	actions, err := h.compliance.EvaluateThresholds(r.Context(), sellerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, actions)
}

// RequestVerification handles POST /api/v1/sellers/{id}/verification
func (h *ComplianceHandler) RequestVerification(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	v, err := h.compliance.RequestVerification(r.Context(), sellerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.NewVerificationResponse(v))
}

// GetVerification handles GET /api/v1/sellers/{id}/verification
func (h *ComplianceHandler) GetVerification(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	v, err := h.compliance.GetVerification(r.Context(), sellerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.NewVerificationResponse(v))
}

// Approve handles POST /api/v1/sellers/{id}/verification/approve
func (h *ComplianceHandler) Approve(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	var req models.ApproveVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	v, err := h.compliance.ApproveVerification(r.Context(), sellerID, req.AdminID, req.Notes)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.NewVerificationResponse(v))
}

// Reject handles POST /api/v1/sellers/{id}/verification/reject
func (h *ComplianceHandler) Reject(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	var req models.RejectVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	v, err := h.compliance.RejectVerification(r.Context(), sellerID, req.AdminID, req.Reason)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.NewVerificationResponse(v))
}

// Resubmit handles POST /api/v1/sellers/{id}/verification/resubmit
func (h *ComplianceHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	v, err := h.compliance.ResubmitVerification(r.Context(), sellerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.NewVerificationResponse(v))
}

// Reinstate handles POST /api/v1/sellers/{id}/verification/reinstate
func (h *ComplianceHandler) Reinstate(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	var req models.ReinstateVerificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	v, err := h.compliance.ReinstateVerification(r.Context(), sellerID, req.AdminID, req.Notes)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.NewVerificationResponse(v))
}

// ListVerifications handles GET /api/v1/verifications
func (h *ComplianceHandler) ListVerifications(w http.ResponseWriter, r *http.Request) {
	var status *models.VerificationStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := models.VerificationStatus(s)
		status = &st
	}

	verifications, err := h.compliance.ListVerifications(r.Context(), status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]*models.VerificationResponse, 0, len(verifications))
	for i := range verifications {
		responses = append(responses, models.NewVerificationResponse(&verifications[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, responses)
}

// ExpiredDeadlines handles GET /api/v1/verifications/expired
func (h *ComplianceHandler) ExpiredDeadlines(w http.ResponseWriter, r *http.Request) {
	now, err := parseNowParam(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid now parameter, expected RFC3339", err)
		return
	}

	sellerIDs, err := h.compliance.CheckExpiredDeadlines(r.Context(), now)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if sellerIDs == nil {
		sellerIDs = []string{}
	}
	utils.RespondWithJSON(w, http.StatusOK, models.ExpiredDeadlinesResponse{SellerIDs: sellerIDs})
}

// Sweep handles POST /api/v1/sweeps/verification-deadlines.
// This is the entry point for the external scheduler's daily pass.
func (h *ComplianceHandler) Sweep(w http.ResponseWriter, r *http.Request) {
	now, err := parseNowParam(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid now parameter, expected RFC3339", err)
		return
	}

	suspended, err := h.compliance.SuspendExpired(r.Context(), now)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if suspended == nil {
		suspended = []string{}
	}
	utils.RespondWithJSON(w, http.StatusOK, models.SweepResponse{Suspended: suspended})
}

// parseNowParam reads an optional RFC3339 "now" query parameter, defaulting
// to the current time. Tests and backfills pass it explicitly.
func parseNowParam(r *http.Request) (time.Time, error) {
	if s := r.URL.Query().Get("now"); s != "" {
		return time.Parse(time.RFC3339, s)
	}
	return time.Now().UTC(), nil
}
