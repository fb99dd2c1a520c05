package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ComplianceAuditLog records every state transition and admin action on a
// compliance entity. Entries are append-only and immutable: they are created
// in the same transaction as the change they describe and never updated or
// deleted.
type ComplianceAuditLog struct {
	ID uuid.UUID `gorm:"primaryKey" json:"id"`

	ActorID   string      `gorm:"type:varchar(255);not null" json:"actorId"`
	ActorType ActorType   `gorm:"type:varchar(50);not null" json:"actorType"`
	Action    AuditAction `gorm:"type:varchar(50);not null;index:idx_compliance_audit_action" json:"action"`

	EntityType EntityType `gorm:"type:varchar(50);not null" json:"entityType"`
	EntityID   string     `gorm:"type:varchar(255);not null;index:idx_compliance_audit_entity" json:"entityId"`

	// Before/After capture the entity state around the transition as JSON.
	// Empty for create-only actions.
	BeforeJSON string `gorm:"type:text" json:"beforeJson,omitempty"`
	AfterJSON  string `gorm:"type:text" json:"afterJson,omitempty"`

	// Details carries free-form context (admin notes, rejection reason).
	Details string `gorm:"type:text" json:"details,omitempty"`

	ImmutableModel
}

// TableName sets the table name for ComplianceAuditLog model
func (ComplianceAuditLog) TableName() string {
	return "compliance_audit_logs"
}

// BeforeCreate hook to set default values
func (l *ComplianceAuditLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return l.ImmutableModel.BeforeCreate(tx)
}

// BeforeUpdate blocks mutation of audit entries at the ORM layer.
func (l *ComplianceAuditLog) BeforeUpdate(tx *gorm.DB) error {
	return fmt.Errorf("compliance audit logs are immutable")
}

// BeforeDelete blocks deletion of audit entries at the ORM layer.
func (l *ComplianceAuditLog) BeforeDelete(tx *gorm.DB) error {
	return fmt.Errorf("compliance audit logs are immutable")
}

// Validate performs validation checks matching the database constraints
func (l *ComplianceAuditLog) Validate() error {
	if l.ActorID == "" {
		return fmt.Errorf("actorId is required")
	}
	switch l.ActorType {
	case ActorTypeAdmin, ActorTypeSeller, ActorTypeSystem:
	default:
		return fmt.Errorf("invalid actorType: %s", l.ActorType)
	}
	if l.Action == "" {
		return fmt.Errorf("action is required")
	}
	if l.EntityType == "" || l.EntityID == "" {
		return fmt.Errorf("entityType and entityId are required")
	}
	return nil
}
