package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
	}{
		{"invalid argument", InvalidArgument("bad input"), http.StatusBadRequest},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"forbidden", Forbidden("nope"), http.StatusForbidden},
		{"conflict", Conflict("duplicate"), http.StatusConflict},
		{"internal", Internal("boom", errors.New("cause")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.HTTPStatus())
		})
	}
}

func TestFromWrapsUnknownErrors(t *testing.T) {
	plain := errors.New("database exploded")

	appErr := From(plain)

	assert.Equal(t, CodeInternal, appErr.Code)
	assert.Equal(t, "internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, plain)
}

func TestFromPreservesAppErrors(t *testing.T) {
	original := NotFound("video not found")

	appErr := From(original)

	assert.Same(t, original, appErr)
}

func TestFromUnwrapsWrappedAppErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), Conflict("already exists"))

	appErr := From(wrapped)

	assert.Equal(t, CodeConflict, appErr.Code)
	assert.Equal(t, "already exists", appErr.Message)
}

func TestIsCode(t *testing.T) {
	assert.True(t, IsCode(NotFound("x"), CodeNotFound))
	assert.False(t, IsCode(NotFound("x"), CodeConflict))
	assert.False(t, IsCode(errors.New("plain"), CodeInternal))
}

func TestInternalMessageHidesNothingFromError(t *testing.T) {
	err := Internal("failed to save", errors.New("connection reset"))

	assert.Equal(t, "failed to save: connection reset", err.Error())
	assert.Equal(t, "failed to save", err.Message)
}
