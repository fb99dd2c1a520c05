package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/craftmarket/compliance-service/config"
	"github.com/craftmarket/compliance-service/models"
	"github.com/craftmarket/compliance-service/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	db := services.SetupSQLiteTestDB(t)

	h := NewHandlers(
		services.NewComplianceService(db, config.DefaultThresholds),
		services.NewTaxService(db, config.DefaultThresholds),
		services.NewDisclosureService(db),
		services.NewPerformanceService(db, config.DefaultPerformanceStandards),
		services.NewAuditService(db),
	)

	mux := http.NewServeMux()
	h.SetupRoutes(mux)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), "body: %s", rec.Body.String())
	return v
}

func TestUpdateCountersEndpoint(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPut, "/api/v1/sellers/seller-1/counters", models.UpdateCountersRequest{
		RevenueAnnualCents: 700_00,
		TransactionCount:   25,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[models.VerificationResponse](t, rec)
	assert.Equal(t, "seller-1", resp.SellerID)
	assert.Equal(t, int64(700_00), resp.RevenueAnnualCents)
	assert.Equal(t, models.VerificationStatusUnverified, resp.Status)
}

func TestUpdateCountersEndpoint_InvalidBody(t *testing.T) {
	mux := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/sellers/seller-1/counters", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEvaluateEndpoint_ReturnsRequiredActions(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPut, "/api/v1/sellers/seller-1/counters", models.UpdateCountersRequest{
		RevenueAnnualCents: 5_200_00,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/evaluate", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[models.RequiredActionsResponse](t, rec)
	assert.Contains(t, resp.Actions, models.ActionVerifyIdentity)
	assert.Contains(t, resp.Actions, models.ActionSubmitW9)
}

func TestEvaluateEndpoint_UnknownSeller(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/sellers/ghost/evaluate", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVerificationLifecycleEndpoints(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	created := decodeBody[models.VerificationResponse](t, rec)
	assert.Equal(t, models.VerificationStatusPending, created.Status)
	require.NotNil(t, created.VerificationDeadline)

	rec = doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification/reject", models.RejectVerificationRequest{
		AdminID: "admin-1", Reason: "document illegible",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rejected := decodeBody[models.VerificationResponse](t, rec)
	assert.Equal(t, models.VerificationStatusRejected, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "document illegible", *rejected.RejectionReason)

	rec = doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification/resubmit", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification/approve", models.ApproveVerificationRequest{
		AdminID: "admin-1", Notes: "documents checked",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	approved := decodeBody[models.VerificationResponse](t, rec)
	assert.Equal(t, models.VerificationStatusVerified, approved.Status)
	assert.Nil(t, approved.VerificationDeadline)
}

func TestApproveEndpoint_InvalidTransitionIs409(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := models.ApproveVerificationRequest{AdminID: "admin-1", Notes: "ok"}
	rec = doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification/approve", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification/approve", body)
	assert.Equal(t, http.StatusConflict, rec.Code)

	errResp := decodeBody[models.ErrorResponse](t, rec)
	assert.Contains(t, errResp.Error, "cannot move seller")
}

func TestApproveEndpoint_MissingNotesIs400(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification/approve", models.ApproveVerificationRequest{
		AdminID: "admin-1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetVerificationEndpoint_NotFound(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/sellers/ghost/verification", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListVerificationsEndpoint_StatusFilter(t *testing.T) {
	mux := setupTestRouter(t)

	for i := 1; i <= 3; i++ {
		rec := doJSON(t, mux, http.MethodPost, fmt.Sprintf("/api/v1/sellers/seller-%d/verification", i), nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification/approve", models.ApproveVerificationRequest{
		AdminID: "admin-1", Notes: "ok",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/verifications?status=pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pending := decodeBody[[]models.VerificationResponse](t, rec)
	assert.Len(t, pending, 2)

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/verifications?status=limbo", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSweepEndpoint_SuspendsExpired(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/verification", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Before the deadline nothing is expired
	soon := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)
	rec = doJSON(t, mux, http.MethodGet, "/api/v1/verifications/expired?now="+soon, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	expired := decodeBody[models.ExpiredDeadlinesResponse](t, rec)
	assert.Empty(t, expired.SellerIDs)

	// Past the deadline the sweep suspends
	later := time.Now().UTC().Add(11 * 24 * time.Hour).Format(time.RFC3339)
	rec = doJSON(t, mux, http.MethodPost, "/api/v1/sweeps/verification-deadlines?now="+later, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sweep := decodeBody[models.SweepResponse](t, rec)
	assert.Equal(t, []string{"seller-1"}, sweep.Suspended)

	// Second run is a no-op
	rec = doJSON(t, mux, http.MethodPost, "/api/v1/sweeps/verification-deadlines?now="+later, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sweep = decodeBody[models.SweepResponse](t, rec)
	assert.Empty(t, sweep.Suspended)
}

func TestSweepEndpoint_BadNowParam(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/sweeps/verification-deadlines?now=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
