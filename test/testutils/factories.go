// Package testutils provides test data factories and mock repositories
// for the analytics engine tests.
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/pawhaven/platform/internal/domain/records"
)

// Factory generates deterministic record fixtures from a seeded faker.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory creates a factory with a seeded faker so fixtures are
// reproducible across runs.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// User creates a user record created at the given time.
func (f *Factory) User(createdAt time.Time) records.UserRecord {
	return records.UserRecord{
		ID:        uuid.New(),
		CreatedAt: createdAt,
		Country:   f.faker.CountryAbr(),
	}
}

// UserWithLogin creates a user with a last-login timestamp.
func (f *Factory) UserWithLogin(createdAt, lastLogin time.Time) records.UserRecord {
	u := f.User(createdAt)
	u.LastLoginAt = &lastLogin
	return u
}

// Application creates an application record.
func (f *Factory) Application(status records.ApplicationStatus, createdAt time.Time) records.ApplicationRecord {
	return records.ApplicationRecord{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		PetID:     uuid.New(),
		RescueID:  uuid.New(),
		Status:    status,
		CreatedAt: createdAt,
	}
}

// ResolvedApplication creates an application resolved at updatedAt.
func (f *Factory) ResolvedApplication(status records.ApplicationStatus, createdAt, updatedAt time.Time) records.ApplicationRecord {
	a := f.Application(status, createdAt)
	a.UpdatedAt = &updatedAt
	return a
}

// Pet creates a pet record of the given type.
func (f *Factory) Pet(petType string, status records.PetStatus, createdAt time.Time) records.PetRecord {
	return records.PetRecord{
		ID:        uuid.New(),
		RescueID:  uuid.New(),
		Type:      petType,
		Status:    status,
		CreatedAt: createdAt,
	}
}

// Chat creates a chat record.
func (f *Factory) Chat(status records.ChatStatus, createdAt time.Time) records.ChatRecord {
	return records.ChatRecord{
		ID:        uuid.New(),
		RescueID:  uuid.New(),
		Status:    status,
		CreatedAt: createdAt,
	}
}

// Message creates a message in the given chat from the given sender.
func (f *Factory) Message(chatID, senderID uuid.UUID, createdAt time.Time) records.MessageRecord {
	return records.MessageRecord{
		ID:        uuid.New(),
		ChatID:    chatID,
		SenderID:  senderID,
		CreatedAt: createdAt,
	}
}

// AuditEntry creates an audit log entry for the given user.
func (f *Factory) AuditEntry(userID *uuid.UUID, action string, at time.Time) records.AuditLogEntry {
	return records.AuditLogEntry{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Timestamp: at,
	}
}

// TimedAuditEntry creates an audit entry carrying a response_time
// detail in milliseconds.
func (f *Factory) TimedAuditEntry(action string, at time.Time, responseMillis float64) records.AuditLogEntry {
	e := f.AuditEntry(nil, action, at)
	e.Detail = map[string]interface{}{"response_time": responseMillis}
	return e
}

// Rescue creates a rescue organization with a random company name.
func (f *Factory) Rescue() records.RescueRecord {
	return records.RescueRecord{
		ID:   uuid.New(),
		Name: f.faker.Company(),
	}
}

// NamedRescue creates a rescue with a fixed name, useful when tests
// assert on ordering.
func (f *Factory) NamedRescue(name string) records.RescueRecord {
	return records.RescueRecord{
		ID:   uuid.New(),
		Name: name,
	}
}
