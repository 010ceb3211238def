package apperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind Kind
		want int
	}{
		{NotFound, http.StatusNotFound},
		{Unauthenticated, http.StatusForbidden},
		{Unauthorized, http.StatusUnauthorized},
		{Validation, http.StatusBadRequest},
		{Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.kind, "x").HTTPStatus())
	}
}

func TestIsKind_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", New(NotFound, "missing"))
	assert.True(t, IsKind(err, NotFound))
	assert.False(t, IsKind(err, Validation))
	assert.False(t, IsKind(errors.New("plain"), NotFound))
}

func TestWrite_Envelope(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Write(rec, New(Validation, "Passport has wrong format."))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Equal(t, "Passport has wrong format.", body.Message)
}

func TestWrite_MasksUnknownErrors(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Write(rec, errors.New("database exploded at 10.0.0.3"))

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Unhandled rejection", body.Message)
}
