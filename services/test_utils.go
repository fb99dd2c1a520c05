package services

import (
	"testing"
	"time"

	"github.com/craftmarket/compliance-service/config"
	"github.com/craftmarket/compliance-service/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupSQLiteTestDB creates an in-memory SQLite database with all models
// migrated, for service-level tests.
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to SQLite test database: %v", err)
	}

	// A second pooled connection to :memory: would see a different database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to access underlying database handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.SellerVerification{},
		&models.TaxFormW9{},
		&models.Tax1099K{},
		&models.PublicDisclosure{},
		&models.ComplianceAuditLog{},
		&models.Notification{},
		&models.PerformanceMetricsPeriod{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// newTestComplianceService returns a service with a fixed clock so deadline
// arithmetic is deterministic.
func newTestComplianceService(t *testing.T, at time.Time) (*ComplianceService, *gorm.DB) {
	t.Helper()
	db := SetupSQLiteTestDB(t)
	svc := NewComplianceService(db, config.DefaultThresholds)
	svc.now = func() time.Time { return at }
	return svc, db
}

// seedVerification inserts a verification row directly, bypassing the
// service, for tests that need a specific starting state.
func seedVerification(t *testing.T, db *gorm.DB, v *models.SellerVerification) *models.SellerVerification {
	t.Helper()
	if v.Status == "" {
		v.Status = models.VerificationStatusUnverified
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("Failed to seed verification record: %v", err)
	}
	return v
}

func countAuditLogs(t *testing.T, db *gorm.DB, action models.AuditAction) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.ComplianceAuditLog{}).Where("action = ?", action).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count audit logs: %v", err)
	}
	return count
}

func countNotifications(t *testing.T, db *gorm.DB, sellerID string, notifType models.NotificationType) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", sellerID, notifType).
		Count(&count).Error; err != nil {
		t.Fatalf("Failed to count notifications: %v", err)
	}
	return count
}
