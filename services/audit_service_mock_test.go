package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/craftmarket/compliance-service/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a sqlmock-backed gorm connection for failure-path
// tests that SQLite cannot simulate.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	var db *sql.DB
	var mock sqlmock.Sqlmock
	var err error

	db, mock, err = sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		Conn:       db,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func TestGetAuditLogs_DatabaseError(t *testing.T) {
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT count`).WillReturnError(errors.New("connection refused"))

	svc := NewAuditService(gormDB)
	_, _, err := svc.GetAuditLogs(context.Background(), &AuditLogFilters{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to count audit logs")
}

func TestWriteInTx_InsertFailureIsDependencyError(t *testing.T) {
	gormDB, mock, cleanup := setupMockDB(t)
	defer cleanup()

	// The driver may route the insert through Query (RETURNING) or Exec
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`INSERT INTO "compliance_audit_logs"`).WillReturnError(errors.New("connection refused"))
	mock.ExpectExec(`INSERT INTO "compliance_audit_logs"`).WillReturnError(errors.New("connection refused"))

	err := WriteInTx(gormDB, AuditEntry{
		ActorID:    "admin-1",
		ActorType:  models.ActorTypeAdmin,
		Action:     models.AuditActionVerificationApproved,
		EntityType: models.EntityTypeSellerVerification,
		EntityID:   "ver_123",
	})
	assert.ErrorIs(t, err, ErrDependencyUnavailable)
}
