// Package records defines the read-only transactional record types the
// analytics engine aggregates over. The records are owned by other
// subsystems (user management, applications, pets, chat, auditing); the
// engine never mutates them.
package records

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the lifecycle status of an adoption application.
type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusApproved  ApplicationStatus = "approved"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// ChatStatus is the lifecycle status of a chat.
type ChatStatus string

const (
	ChatStatusActive ChatStatus = "active"
	ChatStatusClosed ChatStatus = "closed"
)

// PetStatus is the adoption status of a pet.
type PetStatus string

const (
	PetStatusAvailable PetStatus = "available"
	PetStatusPending   PetStatus = "pending"
	PetStatusAdopted   PetStatus = "adopted"
)

// UserRecord is a platform user.
type UserRecord struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	LastLoginAt *time.Time
	Country     string
}

// ApplicationRecord is an adoption application. UpdatedAt stays nil
// until the application is resolved.
type ApplicationRecord struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	PetID        uuid.UUID
	RescueID     uuid.UUID
	Status       ApplicationStatus
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	HasDocuments bool
}

// PetRecord is a pet listed by a rescue.
type PetRecord struct {
	ID        uuid.UUID
	RescueID  uuid.UUID
	Type      string
	Status    PetStatus
	CreatedAt time.Time
	HasImages bool
}

// ChatRecord is a conversation between an adopter and a rescue.
type ChatRecord struct {
	ID        uuid.UUID
	RescueID  uuid.UUID
	Status    ChatStatus
	CreatedAt time.Time
}

// MessageRecord is a single message within a chat.
type MessageRecord struct {
	ID        uuid.UUID
	ChatID    uuid.UUID
	SenderID  uuid.UUID
	CreatedAt time.Time
}

// AuditLogEntry is a recorded platform action. UserID is nil for
// system-originated entries. Detail is an opaque payload that may carry
// a numeric "response_time" in milliseconds.
type AuditLogEntry struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Action    string
	Timestamp time.Time
	Detail    map[string]interface{}
}

// ResponseTime extracts the numeric "response_time" value from the
// detail payload, if present.
func (e AuditLogEntry) ResponseTime() (float64, bool) {
	if e.Detail == nil {
		return 0, false
	}
	switch v := e.Detail["response_time"].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// RescueRecord is a rescue organization.
type RescueRecord struct {
	ID   uuid.UUID
	Name string
}
