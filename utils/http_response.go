package utils

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/craftmarket/compliance-service/models"
)

// RespondWithJSON writes payload as the JSON body of a response with the
// given status. Encoding failures are logged only; the status line is
// already on the wire at that point.
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err, "statusCode", statusCode)
	}
}

// RespondWithError writes the standard error envelope. message is the
// caller-facing summary; err, when present, lands in the details field.
func RespondWithError(w http.ResponseWriter, statusCode int, message string, err error) {
	resp := models.ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	RespondWithJSON(w, statusCode, resp)
}
