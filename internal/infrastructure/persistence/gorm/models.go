// Package gorm provides GORM-based read adapters for the analytics
// outbound contracts.
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UserModel represents the GORM model for users.
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id"`
	CreatedAt   time.Time `gorm:"index"`
	LastLoginAt *time.Time
	Country     string `gorm:"type:varchar(2)"`
}

// TableName overrides the table name.
func (UserModel) TableName() string { return "users" }

// ApplicationModel represents the GORM model for adoption applications.
type ApplicationModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;column:application_id"`
	UserID       uuid.UUID `gorm:"type:uuid;index"`
	PetID        uuid.UUID `gorm:"type:uuid;index"`
	RescueID     uuid.UUID `gorm:"type:uuid;index"`
	Status       string    `gorm:"type:varchar(20);index"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    *time.Time
	HasDocuments bool `gorm:"default:false"`
}

// TableName overrides the table name.
func (ApplicationModel) TableName() string { return "applications" }

// PetModel represents the GORM model for pets.
type PetModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:pet_id"`
	RescueID  uuid.UUID `gorm:"type:uuid;index"`
	Type      string    `gorm:"type:varchar(50);index"`
	Status    string    `gorm:"type:varchar(20);index"`
	CreatedAt time.Time `gorm:"index"`
	HasImages bool      `gorm:"default:false"`
}

// TableName overrides the table name.
func (PetModel) TableName() string { return "pets" }

// ChatModel represents the GORM model for chats.
type ChatModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:chat_id"`
	RescueID  uuid.UUID `gorm:"type:uuid;index"`
	Status    string    `gorm:"type:varchar(20);index"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides the table name.
func (ChatModel) TableName() string { return "chats" }

// MessageModel represents the GORM model for chat messages.
type MessageModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:message_id"`
	ChatID    uuid.UUID `gorm:"type:uuid;index"`
	SenderID  uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName overrides the table name.
func (MessageModel) TableName() string { return "messages" }

// AuditLogModel represents the GORM model for audit log entries.
type AuditLogModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;column:audit_log_id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"type:varchar(100);index"`
	Timestamp time.Time  `gorm:"index;column:created_at"`
	Detail    JSONMap    `gorm:"type:json"`
}

// TableName overrides the table name.
func (AuditLogModel) TableName() string { return "audit_logs" }

// RescueModel represents the GORM model for rescue organizations.
type RescueModel struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;column:rescue_id"`
	Name string    `gorm:"type:varchar(255);not null"`
}

// TableName overrides the table name.
func (RescueModel) TableName() string { return "rescues" }

// JSONMap stores an opaque key/value payload as a JSON column.
type JSONMap map[string]interface{}

// Value implements driver.Valuer.
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into JSONMap", value)
	}
}
