package handlers

import (
	"net/http"
	"testing"

	"github.com/craftmarket/compliance-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAuditLogsEndpoint(t *testing.T) {
	mux := setupTestRouter(t)

	// A verification request plus an approval produce two audit entries
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification/approve", models.ApproveVerificationRequest{
		AdminID: "admin-1", Notes: "documents checked",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/audit-logs", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[models.AuditLogsResponse](t, rec)
	assert.Equal(t, int64(2), resp.Total)
	assert.Len(t, resp.Logs, 2)

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/audit-logs?action=VERIFICATION_APPROVED", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeBody[models.AuditLogsResponse](t, rec)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, "admin-1", resp.Logs[0].ActorID)
}

func TestGetAuditLogsEndpoint_Pagination(t *testing.T) {
	mux := setupTestRouter(t)

	for _, seller := range []string{"a", "b", "c"} {
		rec := doJSON(t, mux, http.MethodPost, "/api/v1/sellers/"+seller+"/verification", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/audit-logs?limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[models.AuditLogsResponse](t, rec)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.Logs, 2)
	assert.Equal(t, 2, resp.Limit)
}
