package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/craftmarket/compliance-service/models"
	"github.com/craftmarket/compliance-service/services"
	"github.com/craftmarket/compliance-service/utils"
)

// SellerHandler handles HTTP requests for disclosures and performance periods
type SellerHandler struct {
	disclosure  *services.DisclosureService
	performance *services.PerformanceService
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(disclosure *services.DisclosureService, performance *services.PerformanceService) *SellerHandler {
	return &SellerHandler{disclosure: disclosure, performance: performance}
}

// UpsertDisclosure handles PUT /api/v1/sellers/{id}/disclosure
func (h *SellerHandler) UpsertDisclosure(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	var req models.UpsertDisclosureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	disclosure, err := h.disclosure.UpsertDisclosure(r.Context(), sellerID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, disclosure)
}

// GetDisclosure handles GET /api/v1/sellers/{id}/disclosure
func (h *SellerHandler) GetDisclosure(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	disclosure, err := h.disclosure.GetDisclosure(r.Context(), sellerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, disclosure)
}

// RecordPerformance handles POST /api/v1/sellers/{id}/performance
func (h *SellerHandler) RecordPerformance(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	var req models.RecordPerformanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	period, err := h.performance.RecordPeriod(r.Context(), sellerID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, period)
}

// ListPerformance handles GET /api/v1/sellers/{id}/performance
func (h *SellerHandler) ListPerformance(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	periods, err := h.performance.ListPeriods(r.Context(), sellerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, periods)
}
