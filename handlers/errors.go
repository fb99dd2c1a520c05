package handlers

import (
	"errors"
	"net/http"

	"github.com/craftmarket/compliance-service/services"
	"github.com/craftmarket/compliance-service/utils"
)

// handleServiceError maps service errors to HTTP responses. Validation and
// transition errors surface verbatim so admins see the actual reason;
// everything else gets a generic message.
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.RespondWithError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, services.ErrConcurrentModification):
		// The service already retried once; ask the caller to re-fetch
		utils.RespondWithError(w, http.StatusConflict, "Record changed concurrently, please retry", nil)
	case errors.Is(err, services.ErrDependencyUnavailable):
		utils.RespondWithError(w, http.StatusServiceUnavailable, "A required dependency is unavailable, please retry", nil)
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error", err)
	}
}
