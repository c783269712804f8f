package errors

import (
	stderrors "errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidWindowError(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)

	err := NewInvalidWindowError(start, end)
	assert.Equal(t, CodeInvalidWindow, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
	assert.True(t, Is(err, CodeInvalidWindow))
}

func TestDataSourceErrorPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewDataSourceError("count users", cause)

	assert.Equal(t, CodeDataSource, err.Code)
	assert.Equal(t, http.StatusInternalServerError, err.StatusCode())
	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "count users")
}

func TestWrap(t *testing.T) {
	appErr := NewBadRequestError("bad input")
	assert.Same(t, appErr, Wrap(appErr, "ignored"))

	wrapped := Wrap(stderrors.New("boom"), "something failed")
	require.NotNil(t, wrapped)
	assert.Equal(t, CodeInternal, wrapped.Code)

	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeNotFound, GetCode(NewNotFoundError("rescue")))
	assert.Equal(t, CodeInternal, GetCode(stderrors.New("plain")))
}
