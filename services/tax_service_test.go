package services

import (
	"context"
	"testing"
	"time"

	"github.com/craftmarket/compliance-service/config"
	"github.com/craftmarket/compliance-service/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestTaxService(t *testing.T, at time.Time) (*TaxService, *gorm.DB) {
	t.Helper()
	db := SetupSQLiteTestDB(t)
	svc := NewTaxService(db, config.DefaultThresholds)
	svc.now = func() time.Time { return at }
	return svc, db
}

func TestSubmitW9_CreatesRecord(t *testing.T) {
	svc, db := newTestTaxService(t, testClock)

	form, err := svc.SubmitW9(context.Background(), "seller-1", &models.SubmitW9Request{
		TaxpayerIDMasked: "***-**-1234",
		LegalName:        "Maple & Thread LLC",
	})
	require.NoError(t, err)
	assert.Equal(t, "***-**-1234", form.TaxpayerIDMasked)
	require.NotNil(t, form.SubmittedAt)
	assert.True(t, form.SubmittedAt.Equal(testClock))

	assert.Equal(t, int64(1), countAuditLogs(t, db, models.AuditActionW9Submitted))
}

func TestSubmitW9_AmendmentKeepsOriginalSubmittedAt(t *testing.T) {
	svc, _ := newTestTaxService(t, testClock)
	ctx := context.Background()

	_, err := svc.SubmitW9(ctx, "seller-1", &models.SubmitW9Request{
		TaxpayerIDMasked: "***-**-1234",
		LegalName:        "Maple & Thread LLC",
	})
	require.NoError(t, err)

	svc.now = func() time.Time { return testClock.Add(30 * 24 * time.Hour) }
	amended, err := svc.SubmitW9(ctx, "seller-1", &models.SubmitW9Request{
		TaxpayerIDMasked: "***-**-5678",
		LegalName:        "Maple and Thread LLC",
	})
	require.NoError(t, err)
	assert.Equal(t, "***-**-5678", amended.TaxpayerIDMasked)
	assert.False(t, amended.Verified)
	require.NotNil(t, amended.SubmittedAt)
	assert.True(t, amended.SubmittedAt.Equal(testClock), "amendment must not move the original submission time")
}

func TestSubmitW9_RejectsUnmaskedTIN(t *testing.T) {
	svc, _ := newTestTaxService(t, testClock)

	tests := []string{
		"123-45-6789",
		"123456789",
		"***-**-12",
		"",
		"***-**-abcd",
	}
	for _, tin := range tests {
		_, err := svc.SubmitW9(context.Background(), "seller-1", &models.SubmitW9Request{
			TaxpayerIDMasked: tin,
			LegalName:        "Maple & Thread LLC",
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "taxpayer id %q should be rejected", tin)
	}
}

func TestSubmitW9_RequiresLegalName(t *testing.T) {
	svc, _ := newTestTaxService(t, testClock)

	_, err := svc.SubmitW9(context.Background(), "seller-1", &models.SubmitW9Request{
		TaxpayerIDMasked: "***-**-1234",
		LegalName:        "  ",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeTaxFormEligibility_BothThresholdsMet(t *testing.T) {
	svc, db := newTestTaxService(t, testClock)
	seedVerification(t, db, &models.SellerVerification{
		SellerID:           "seller-1",
		RevenueAnnualCents: 20_000_00,
		TransactionCount:   200,
	})

	resp, err := svc.ComputeTaxFormEligibility(context.Background(), "seller-1", 2026)
	require.NoError(t, err)
	assert.True(t, resp.FormRequired)
	assert.Equal(t, int64(20_000_00), resp.GrossRevenueCents)
	assert.Equal(t, int64(1), countAuditLogs(t, db, models.AuditActionForm1099KFlagged))
}

func TestComputeTaxFormEligibility_OneThresholdShort(t *testing.T) {
	svc, db := newTestTaxService(t, testClock)
	seedVerification(t, db, &models.SellerVerification{
		SellerID:           "seller-1",
		RevenueAnnualCents: 19_999_99,
		TransactionCount:   250,
	})

	resp, err := svc.ComputeTaxFormEligibility(context.Background(), "seller-1", 2026)
	require.NoError(t, err)
	assert.False(t, resp.FormRequired)
	assert.Equal(t, int64(0), countAuditLogs(t, db, models.AuditActionForm1099KFlagged))
}

func TestComputeTaxFormEligibility_MonotonicWithinYear(t *testing.T) {
	svc, db := newTestTaxService(t, testClock)
	ctx := context.Background()
	v := seedVerification(t, db, &models.SellerVerification{
		SellerID:           "seller-1",
		RevenueAnnualCents: 20_000_00,
		TransactionCount:   200,
	})

	first, err := svc.ComputeTaxFormEligibility(ctx, "seller-1", 2026)
	require.NoError(t, err)
	require.True(t, first.FormRequired)

	// Counters drop below the threshold (upstream correction); the flag
	// stays set for the year.
	require.NoError(t, db.Model(v).Updates(map[string]interface{}{
		"revenue_annual_cents": 10_000_00,
		"transaction_count":    50,
	}).Error)

	second, err := svc.ComputeTaxFormEligibility(ctx, "seller-1", 2026)
	require.NoError(t, err)
	assert.True(t, second.FormRequired, "eligibility flag must never be cleared within a tax year")
	assert.Equal(t, int64(10_000_00), second.GrossRevenueCents)

	// The flag transition was audited once, not on every recomputation
	assert.Equal(t, int64(1), countAuditLogs(t, db, models.AuditActionForm1099KFlagged))
}

func TestComputeTaxFormEligibility_SeparateYears(t *testing.T) {
	svc, db := newTestTaxService(t, testClock)
	ctx := context.Background()
	seedVerification(t, db, &models.SellerVerification{
		SellerID:           "seller-1",
		RevenueAnnualCents: 25_000_00,
		TransactionCount:   300,
	})

	_, err := svc.ComputeTaxFormEligibility(ctx, "seller-1", 2025)
	require.NoError(t, err)
	_, err = svc.ComputeTaxFormEligibility(ctx, "seller-1", 2026)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Tax1099K{}).Where("seller_id = ?", "seller-1").Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestComputeTaxFormEligibility_Validation(t *testing.T) {
	svc, _ := newTestTaxService(t, testClock)
	ctx := context.Background()

	_, err := svc.ComputeTaxFormEligibility(ctx, "", 2026)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ComputeTaxFormEligibility(ctx, "seller-1", 1980)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ComputeTaxFormEligibility(ctx, "ghost", 2026)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetW9_NotFound(t *testing.T) {
	svc, _ := newTestTaxService(t, testClock)

	_, err := svc.GetW9(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
