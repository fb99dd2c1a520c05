package handlers

import (
	"net/http"
	"testing"

	"github.com/craftmarket/compliance-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisclosureEndpoints(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPut, "/api/v1/sellers/seller-1/disclosure", models.UpsertDisclosureRequest{
		BusinessName: "Maple & Thread LLC",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	partial := decodeBody[models.PublicDisclosure](t, rec)
	assert.False(t, partial.IsActive)

	rec = doJSON(t, mux, http.MethodPut, "/api/v1/sellers/seller-1/disclosure", models.UpsertDisclosureRequest{
		BusinessName:    "Maple & Thread LLC",
		BusinessAddress: "12 Orchard Lane, Portland OR",
		BusinessEmail:   "hello@mapleandthread.example",
		BusinessPhone:   "+15035550123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	complete := decodeBody[models.PublicDisclosure](t, rec)
	assert.True(t, complete.IsActive)

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/sellers/seller-1/disclosure", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetDisclosureEndpoint_NotFound(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/sellers/ghost/disclosure", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPerformanceEndpoints(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/performance", models.RecordPerformanceRequest{
		PeriodStart:      "2026-02-01T00:00:00Z",
		PeriodEnd:        "2026-03-01T00:00:00Z",
		AvgResponseHours: 8,
		AvgRating:        4.6,
		OnTimeRate:       0.98,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	period := decodeBody[models.PerformanceMetricsPeriod](t, rec)
	assert.True(t, period.MeetsStandards)

	rec = doJSON(t, mux, http.MethodGet, "/api/v1/sellers/seller-1/performance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	periods := decodeBody[[]models.PerformanceMetricsPeriod](t, rec)
	assert.Len(t, periods, 1)
}

func TestPerformanceEndpoint_InvalidWindow(t *testing.T) {
	mux := setupTestRouter(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/v1/sellers/seller-1/performance", models.RecordPerformanceRequest{
		PeriodStart: "2026-03-01T00:00:00Z",
		PeriodEnd:   "2026-02-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
