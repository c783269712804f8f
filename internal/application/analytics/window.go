package analytics

import (
	"time"

	apperrors "github.com/pawhaven/platform/pkg/errors"
)

// defaultWindowSpan is the window applied when the caller supplies no
// explicit bounds.
const defaultWindowSpan = 30 * 24 * time.Hour

// resolveWindow normalizes the requested range and derives the
// comparison window. Missing bounds default to the last 30 days ending
// now. The previous window always has the same duration as the current
// one and abuts it: [start-(end-start), start).
func resolveWindow(opts Options, now time.Time) (current, previous Window, err error) {
	end := now
	if opts.End != nil {
		end = *opts.End
	}

	start := now.Add(-defaultWindowSpan)
	if opts.Start != nil {
		start = *opts.Start
	}

	if end.Before(start) {
		return Window{}, Window{}, apperrors.NewInvalidWindowError(start, end)
	}

	current = Window{Start: start, End: end}
	previous = Window{Start: start.Add(-current.Duration()), End: start}
	return current, previous, nil
}
