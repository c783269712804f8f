package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawhaven/platform/internal/application/analytics"
	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/infrastructure/persistence/memory"
	"github.com/pawhaven/platform/test/testutils"
)

func TestCommunicationMetrics(t *testing.T) {
	factory := testutils.NewFactory(40)
	store := memory.NewStore()

	inWindow := testNow.Add(-5 * 24 * time.Hour)
	active := factory.Chat(records.ChatStatusActive, inWindow)
	closed := factory.Chat(records.ChatStatusClosed, inWindow)
	store.Chats = []records.ChatRecord{active, closed}

	adopter := uuid.New()
	rescue := uuid.New()
	store.Messages = []records.MessageRecord{
		factory.Message(active.ID, adopter, inWindow),
		factory.Message(active.ID, rescue, inWindow.Add(20*time.Minute)),
		factory.Message(closed.ID, adopter, inWindow),
	}

	service := newMemoryService(store)
	metrics, err := service.Communication(context.Background(), analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(2), metrics.TotalChats)
	assert.Equal(t, int64(1), metrics.ActiveChats)
	assert.Equal(t, int64(3), metrics.TotalMessages)
	assert.Equal(t, 1.5, metrics.AvgMessagesPerChat)
	assert.Equal(t, 50.0, metrics.ChatEngagementRate)
	assert.Equal(t, 20.0, metrics.AvgResponseTime)
}

func TestCommunicationScopedToRescue(t *testing.T) {
	factory := testutils.NewFactory(41)
	store := memory.NewStore()

	inWindow := testNow.Add(-5 * 24 * time.Hour)
	mine := factory.Chat(records.ChatStatusActive, inWindow)
	other := factory.Chat(records.ChatStatusActive, inWindow)
	store.Chats = []records.ChatRecord{mine, other}

	sender := uuid.New()
	store.Messages = []records.MessageRecord{
		factory.Message(mine.ID, sender, inWindow),
		factory.Message(other.ID, sender, inWindow),
		factory.Message(other.ID, sender, inWindow),
	}

	service := newMemoryService(store)
	metrics, err := service.Communication(context.Background(), analytics.Options{RescueID: &mine.RescueID})
	require.NoError(t, err)

	assert.Equal(t, int64(1), metrics.TotalChats)
	assert.Equal(t, int64(1), metrics.TotalMessages)
}

func TestCommunicationEmptyWindow(t *testing.T) {
	service := newMemoryService(memory.NewStore())

	metrics, err := service.Communication(context.Background(), analytics.Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(0), metrics.TotalChats)
	assert.Equal(t, 0.0, metrics.AvgMessagesPerChat)
	assert.Equal(t, 0.0, metrics.ChatEngagementRate)
	assert.Empty(t, metrics.MessageTrends)
}
