package handlers

import (
	"net/http"
	"strconv"

	"github.com/craftmarket/compliance-service/models"
	"github.com/craftmarket/compliance-service/services"
	"github.com/craftmarket/compliance-service/utils"
)

// AuditHandler handles HTTP requests for compliance audit logs
type AuditHandler struct {
	audit *services.AuditService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(audit *services.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// GetAuditLogs handles GET /api/v1/audit-logs
func (h *AuditHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	filters := &services.AuditLogFilters{
		Limit:  100,
		Offset: 0,
	}

	if entityID := r.URL.Query().Get("entityId"); entityID != "" {
		filters.EntityID = &entityID
	}
	if action := r.URL.Query().Get("action"); action != "" {
		filters.Action = &action
	}
	if actorID := r.URL.Query().Get("actorId"); actorID != "" {
		filters.ActorID = &actorID
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 1000 {
			filters.Limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filters.Offset = o
		}
	}

	logs, total, err := h.audit.GetAuditLogs(r.Context(), filters)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.AuditLogsResponse{
		Logs:   logs,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	})
}
