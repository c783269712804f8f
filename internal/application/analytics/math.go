package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/pawhaven/platform/internal/ports/outbound"
)

// round2 rounds to two decimal places. All derived percentages and
// averages pass through here.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// percentage computes part/total*100, rounded. Returns 0 when total is
// zero so ratio math never produces NaN or Inf.
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

// growthRate computes the percent change from previous to current,
// rounded. Returns 0 when the previous value is zero.
func growthRate(current, previous int64) float64 {
	if previous == 0 {
		return 0
	}
	return round2(float64(current-previous) / float64(previous) * 100)
}

// ratio computes part/total, rounded. Returns 0 when total is zero.
func ratio(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total))
}

// mean computes the arithmetic mean, rounded. Returns 0 for an empty
// slice.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return round2(sum / float64(len(values)))
}

// seriesDateLayout is the wire format for daily series dates.
const seriesDateLayout = "2006-01-02"

// toSeries converts per-day aggregate rows into a sparse daily series
// ordered by date ascending.
func toSeries(rows []outbound.DateCount) []TimeSeriesPoint {
	points := make([]TimeSeriesPoint, 0, len(rows))
	for _, row := range rows {
		if row.Count == 0 {
			continue
		}
		points = append(points, TimeSeriesPoint{
			Date:  row.Date.UTC().Format(seriesDateLayout),
			Count: row.Count,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// utcDay truncates a timestamp to its UTC calendar day.
func utcDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}
