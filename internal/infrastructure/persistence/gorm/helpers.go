package gorm

import (
	"time"

	"gorm.io/gorm"

	"github.com/pawhaven/platform/internal/ports/outbound"
)

// dateCountRow receives the raw day-bucket aggregate. The date comes
// back as text so the same scan works for both postgres and sqlite.
type dateCountRow struct {
	Date  string
	Count int64
}

const dayLayout = "2006-01-02"

// toDateCounts parses day-bucket rows into DateCount values, dropping
// rows whose date fails to parse.
func toDateCounts(rows []dateCountRow) ([]outbound.DateCount, error) {
	out := make([]outbound.DateCount, 0, len(rows))
	for _, row := range rows {
		raw := row.Date
		if len(raw) > len(dayLayout) {
			raw = raw[:len(dayLayout)]
		}
		day, err := time.ParseInLocation(dayLayout, raw, time.UTC)
		if err != nil {
			return nil, err
		}
		out = append(out, outbound.DateCount{Date: day, Count: row.Count})
	}
	return out, nil
}

// groupCountRow receives a grouped aggregate.
type groupCountRow struct {
	Key   string
	Count int64
}

func toGroupCounts(rows []groupCountRow) []outbound.GroupCount {
	out := make([]outbound.GroupCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, outbound.GroupCount{Key: row.Key, Count: row.Count})
	}
	return out
}

// whereRange adds a half-open time-range condition on a column.
func whereRange(tx *gorm.DB, column string, rng *outbound.TimeRange) *gorm.DB {
	if rng == nil {
		return tx
	}
	return tx.Where(column+" >= ? AND "+column+" < ?", rng.Start, rng.End)
}
