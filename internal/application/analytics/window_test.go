package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/pawhaven/platform/pkg/errors"
)

func TestResolveWindowDefaults(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	current, previous, err := resolveWindow(Options{}, now)
	require.NoError(t, err)

	assert.Equal(t, now.Add(-30*24*time.Hour), current.Start)
	assert.Equal(t, now, current.End)
	assert.Equal(t, current.Duration(), previous.Duration())
	assert.Equal(t, current.Start, previous.End)
}

func TestResolveWindowExplicitBounds(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)

	current, previous, err := resolveWindow(Options{Start: &start, End: &end}, now)
	require.NoError(t, err)

	assert.Equal(t, start, current.Start)
	assert.Equal(t, end, current.End)
	assert.Equal(t, 7*24*time.Hour, current.Duration())
	assert.Equal(t, start.Add(-7*24*time.Hour), previous.Start)
	assert.Equal(t, start, previous.End)
}

func TestResolveWindowPartialBounds(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	current, _, err := resolveWindow(Options{Start: &start}, now)
	require.NoError(t, err)

	assert.Equal(t, start, current.Start)
	assert.Equal(t, now, current.End)
}

func TestResolveWindowEndBeforeStart(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	_, _, err := resolveWindow(Options{Start: &start, End: &end}, now)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidWindow))
}

func TestResolveWindowZeroLength(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	at := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	current, _, err := resolveWindow(Options{Start: &at, End: &at}, now)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), current.Duration())
}
