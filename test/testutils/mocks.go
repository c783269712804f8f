package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

// MockUserRepository is a testify mock for the user read contract.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Count(ctx context.Context, filter outbound.UserFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) RegistrationsByDay(ctx context.Context, rng outbound.TimeRange) ([]outbound.DateCount, error) {
	args := m.Called(ctx, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.DateCount), args.Error(1)
}

// MockApplicationRepository is a testify mock for the application read
// contract.
type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Count(ctx context.Context, filter outbound.ApplicationFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepository) CountByStatus(ctx context.Context, filter outbound.ApplicationFilter) ([]outbound.GroupCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.GroupCount), args.Error(1)
}

func (m *MockApplicationRepository) CountByDay(ctx context.Context, filter outbound.ApplicationFilter) ([]outbound.DateCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.DateCount), args.Error(1)
}

func (m *MockApplicationRepository) List(ctx context.Context, filter outbound.ApplicationFilter) ([]records.ApplicationRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]records.ApplicationRecord), args.Error(1)
}

// MockPetRepository is a testify mock for the pet read contract.
type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) Count(ctx context.Context, filter outbound.PetFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPetRepository) CountByType(ctx context.Context, filter outbound.PetFilter) ([]outbound.GroupCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.GroupCount), args.Error(1)
}

func (m *MockPetRepository) CountByDay(ctx context.Context, filter outbound.PetFilter) ([]outbound.DateCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.DateCount), args.Error(1)
}

func (m *MockPetRepository) List(ctx context.Context, filter outbound.PetFilter) ([]records.PetRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]records.PetRecord), args.Error(1)
}

// MockChatRepository is a testify mock for the chat read contract.
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Count(ctx context.Context, filter outbound.ChatFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockMessageRepository is a testify mock for the message read contract.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Count(ctx context.Context, filter outbound.MessageFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) CountByDay(ctx context.Context, filter outbound.MessageFilter) ([]outbound.DateCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.DateCount), args.Error(1)
}

func (m *MockMessageRepository) List(ctx context.Context, filter outbound.MessageFilter) ([]records.MessageRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]records.MessageRecord), args.Error(1)
}

// MockAuditLogRepository is a testify mock for the audit log read
// contract.
type MockAuditLogRepository struct {
	mock.Mock
}

func (m *MockAuditLogRepository) Count(ctx context.Context, filter outbound.AuditLogFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAuditLogRepository) CountByAction(ctx context.Context, filter outbound.AuditLogFilter) ([]outbound.GroupCount, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.GroupCount), args.Error(1)
}

func (m *MockAuditLogRepository) List(ctx context.Context, filter outbound.AuditLogFilter) ([]records.AuditLogEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]records.AuditLogEntry), args.Error(1)
}

// MockRescueRepository is a testify mock for the rescue read contract.
type MockRescueRepository struct {
	mock.Mock
}

func (m *MockRescueRepository) List(ctx context.Context) ([]records.RescueRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]records.RescueRecord), args.Error(1)
}

func (m *MockRescueRepository) FindByID(ctx context.Context, id uuid.UUID) (*records.RescueRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*records.RescueRecord), args.Error(1)
}

// MockStatsProvider is a testify mock for the pool stats provider.
type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) Stats(ctx context.Context) (outbound.DatabaseStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(outbound.DatabaseStats), args.Error(1)
}

// MockCacheRepository is a testify mock for the boundary cache.
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
