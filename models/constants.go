package models

// VerificationStatus represents the lifecycle status of a seller verification
type VerificationStatus string

const (
	VerificationStatusUnverified VerificationStatus = "unverified"
	VerificationStatusPending    VerificationStatus = "pending"
	VerificationStatusVerified   VerificationStatus = "verified"
	VerificationStatusRejected   VerificationStatus = "rejected"
	VerificationStatusSuspended  VerificationStatus = "suspended"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s VerificationStatus) IsValid() bool {
	switch s {
	case VerificationStatusUnverified, VerificationStatusPending,
		VerificationStatusVerified, VerificationStatusRejected,
		VerificationStatusSuspended:
		return true
	}
	return false
}

// RequiredAction represents a compliance obligation a seller has not yet satisfied
type RequiredAction string

const (
	ActionSubmitW9         RequiredAction = "submit_w9"
	ActionVerifyIdentity   RequiredAction = "verify_identity"
	ActionPublicDisclosure RequiredAction = "public_disclosure"
)

// ActorType represents who performed an audited action
type ActorType string

const (
	ActorTypeAdmin  ActorType = "ADMIN"
	ActorTypeSeller ActorType = "SELLER"
	ActorTypeSystem ActorType = "SYSTEM"
)

// AuditAction represents different audited action types
type AuditAction string

const (
	AuditActionVerificationRequested AuditAction = "VERIFICATION_REQUESTED"
	AuditActionVerificationApproved  AuditAction = "VERIFICATION_APPROVED"
	AuditActionVerificationRejected  AuditAction = "VERIFICATION_REJECTED"
	AuditActionVerificationResubmit  AuditAction = "VERIFICATION_RESUBMITTED"
	AuditActionVerificationSuspended AuditAction = "VERIFICATION_SUSPENDED"
	AuditActionVerificationReinstate AuditAction = "VERIFICATION_REINSTATED"
	AuditActionW9Requested           AuditAction = "W9_REQUESTED"
	AuditActionW9Submitted           AuditAction = "W9_SUBMITTED"
	AuditActionForm1099KFlagged      AuditAction = "FORM_1099K_FLAGGED"
	AuditActionThresholdsEvaluated   AuditAction = "THRESHOLDS_EVALUATED"
)

// EntityType represents different resource types for auditing
type EntityType string

const (
	EntityTypeSellerVerification EntityType = "SELLER_VERIFICATION"
	EntityTypeTaxFormW9          EntityType = "TAX_FORM_W9"
	EntityTypeTax1099K           EntityType = "TAX_1099K"
	EntityTypePublicDisclosure   EntityType = "PUBLIC_DISCLOSURE"
)

// NotificationType classifies seller-facing compliance notifications
type NotificationType string

const (
	NotificationVerificationRequired  NotificationType = "verification_required"
	NotificationVerificationApproved  NotificationType = "verification_approved"
	NotificationVerificationRejected  NotificationType = "verification_rejected"
	NotificationVerificationSuspended NotificationType = "verification_suspended"
	NotificationW9Required            NotificationType = "w9_required"
	NotificationDisclosureRequired    NotificationType = "disclosure_required"
)

// NotificationStatus represents the outbox delivery state of a notification
type NotificationStatus string

const (
	NotificationStatusPending    NotificationStatus = "pending"
	NotificationStatusProcessing NotificationStatus = "processing"
	NotificationStatusSent       NotificationStatus = "sent"
	NotificationStatusFailed     NotificationStatus = "failed"
)

// Field length constraints remain as regular constants
const (
	MaxNotesLength  = 2000
	MaxReasonLength = 2000
	MaxNameLength   = 255
)
