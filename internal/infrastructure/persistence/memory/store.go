// Package memory provides in-memory implementations of the outbound
// read contracts. They back the engine's unit tests and local
// development without a database; records are loaded at construction
// and treated as read-only afterwards.
package memory

import (
	"sort"
	"time"

	"github.com/pawhaven/platform/internal/domain/records"
	"github.com/pawhaven/platform/internal/ports/outbound"
)

// Store holds the record sets the repositories read from.
type Store struct {
	Users        []records.UserRecord
	Applications []records.ApplicationRecord
	Pets         []records.PetRecord
	Chats        []records.ChatRecord
	Messages     []records.MessageRecord
	AuditLogs    []records.AuditLogEntry
	Rescues      []records.RescueRecord

	// DatabaseStats is returned verbatim by the stats provider.
	DatabaseStats outbound.DatabaseStats
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// UserRepository returns the user read adapter.
func (s *Store) UserRepository() outbound.UserRepository { return &userRepository{store: s} }

// ApplicationRepository returns the application read adapter.
func (s *Store) ApplicationRepository() outbound.ApplicationRepository {
	return &applicationRepository{store: s}
}

// PetRepository returns the pet read adapter.
func (s *Store) PetRepository() outbound.PetRepository { return &petRepository{store: s} }

// ChatRepository returns the chat read adapter.
func (s *Store) ChatRepository() outbound.ChatRepository { return &chatRepository{store: s} }

// MessageRepository returns the message read adapter.
func (s *Store) MessageRepository() outbound.MessageRepository { return &messageRepository{store: s} }

// AuditLogRepository returns the audit log read adapter.
func (s *Store) AuditLogRepository() outbound.AuditLogRepository {
	return &auditLogRepository{store: s}
}

// RescueRepository returns the rescue read adapter.
func (s *Store) RescueRepository() outbound.RescueRepository { return &rescueRepository{store: s} }

// StatsProvider returns the database stats provider.
func (s *Store) StatsProvider() outbound.DatabaseStatsProvider { return &statsProvider{store: s} }

// inRange reports whether t falls in rng, treating a nil range as
// unbounded.
func inRange(rng *outbound.TimeRange, t time.Time) bool {
	return rng == nil || rng.Contains(t)
}

// toGroupCounts flattens a bucket map into rows ordered by key for
// deterministic output.
func toGroupCounts(buckets map[string]int64) []outbound.GroupCount {
	rows := make([]outbound.GroupCount, 0, len(buckets))
	for key, count := range buckets {
		rows = append(rows, outbound.GroupCount{Key: key, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// countByDay buckets timestamps into sparse per-day rows, ordered by
// day ascending.
func countByDay(times []time.Time) []outbound.DateCount {
	buckets := make(map[time.Time]int64)
	for _, t := range times {
		buckets[t.UTC().Truncate(24*time.Hour)]++
	}
	rows := make([]outbound.DateCount, 0, len(buckets))
	for day, count := range buckets {
		rows = append(rows, outbound.DateCount{Date: day, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows
}
