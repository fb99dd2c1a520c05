package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/craftmarket/compliance-service/models"
	"gorm.io/gorm"
)

// AuditService handles append-only compliance audit log operations
type AuditService struct {
	db *gorm.DB
}

// NewAuditService creates a new audit service instance
func NewAuditService(db *gorm.DB) *AuditService {
	return &AuditService{db: db}
}

// AuditEntry describes one audited action before persistence
type AuditEntry struct {
	ActorID    string
	ActorType  models.ActorType
	Action     models.AuditAction
	EntityType models.EntityType
	EntityID   string
	Before     interface{}
	After      interface{}
	Details    string
}

// WriteInTx appends an audit entry inside the caller's transaction. The
// state machine calls this so the entry commits or rolls back atomically
// with the transition it records. A write failure is fatal to the
// transition.
func WriteInTx(tx *gorm.DB, entry AuditEntry) error {
	log := &models.ComplianceAuditLog{
		ActorID:    entry.ActorID,
		ActorType:  entry.ActorType,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    entry.Details,
	}

	if entry.Before != nil {
		data, err := json.Marshal(entry.Before)
		if err != nil {
			return fmt.Errorf("failed to marshal audit before state: %w", err)
		}
		log.BeforeJSON = string(data)
	}
	if entry.After != nil {
		data, err := json.Marshal(entry.After)
		if err != nil {
			return fmt.Errorf("failed to marshal audit after state: %w", err)
		}
		log.AfterJSON = string(data)
	}

	if err := log.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := tx.Create(log).Error; err != nil {
		return fmt.Errorf("%w: audit log write failed: %v", ErrDependencyUnavailable, err)
	}
	return nil
}

// AuditLogFilters represents query filters for retrieving audit logs
type AuditLogFilters struct {
	EntityID *string
	Action   *string
	ActorID  *string
	Limit    int
	Offset   int
}

// GetAuditLogs retrieves audit logs with optional filtering, newest first
func (s *AuditService) GetAuditLogs(ctx context.Context, filters *AuditLogFilters) ([]models.ComplianceAuditLog, int64, error) {
	var logs []models.ComplianceAuditLog
	var total int64

	query := s.db.WithContext(ctx).Model(&models.ComplianceAuditLog{})

	if filters.EntityID != nil && *filters.EntityID != "" {
		query = query.Where("entity_id = ?", *filters.EntityID)
	}
	if filters.Action != nil && *filters.Action != "" {
		query = query.Where("action = ?", *filters.Action)
	}
	if filters.ActorID != nil && *filters.ActorID != "" {
		query = query.Where("actor_id = ?", *filters.ActorID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}

	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve audit logs: %w", err)
	}

	return logs, total, nil
}
