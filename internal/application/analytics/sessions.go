package analytics

import (
	"time"

	"github.com/google/uuid"

	"github.com/pawhaven/platform/internal/domain/records"
)

// sessionKey groups audit entries into one inferred session per user
// per UTC calendar day.
type sessionKey struct {
	userID uuid.UUID
	day    time.Time
}

type sessionBounds struct {
	first time.Time
	last  time.Time
	count int
}

// inferSessionMinutes estimates the mean session duration, in minutes,
// from audit-log activity. Entries are grouped by (user, calendar day);
// groups with a single entry carry no duration signal and are dropped.
// Each surviving group contributes last-first as one session.
func inferSessionMinutes(entries []records.AuditLogEntry) float64 {
	groups := make(map[sessionKey]*sessionBounds)
	for _, e := range entries {
		if e.UserID == nil {
			continue
		}
		key := sessionKey{userID: *e.UserID, day: utcDay(e.Timestamp)}
		b, ok := groups[key]
		if !ok {
			groups[key] = &sessionBounds{first: e.Timestamp, last: e.Timestamp, count: 1}
			continue
		}
		if e.Timestamp.Before(b.first) {
			b.first = e.Timestamp
		}
		if e.Timestamp.After(b.last) {
			b.last = e.Timestamp
		}
		b.count++
	}

	var durations []float64
	for _, b := range groups {
		if b.count <= 1 {
			continue
		}
		durations = append(durations, b.last.Sub(b.first).Minutes())
	}
	return mean(durations)
}
