package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/craftmarket/compliance-service/models"
	"github.com/craftmarket/compliance-service/services"
	"github.com/craftmarket/compliance-service/utils"
)

// TaxHandler handles HTTP requests for W-9 intake and 1099-K eligibility
type TaxHandler struct {
	tax *services.TaxService
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(tax *services.TaxService) *TaxHandler {
	return &TaxHandler{tax: tax}
}

// SubmitW9 handles POST /api/v1/sellers/{id}/tax/w9
func (h *TaxHandler) SubmitW9(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	var req models.SubmitW9Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	form, err := h.tax.SubmitW9(r.Context(), sellerID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, form)
}

// GetW9 handles GET /api/v1/sellers/{id}/tax/w9
func (h *TaxHandler) GetW9(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	form, err := h.tax.GetW9(r.Context(), sellerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, form)
}

// Compute1099K handles POST /api/v1/sellers/{id}/tax/1099k/{year}
func (h *TaxHandler) Compute1099K(w http.ResponseWriter, r *http.Request) {
	sellerID := r.PathValue("id")

	taxYear, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid tax year", err)
		return
	}

	eligibility, err := h.tax.ComputeTaxFormEligibility(r.Context(), sellerID, taxYear)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, eligibility)
}
