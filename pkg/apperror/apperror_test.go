package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, "error", StatusFor(http.StatusBadRequest))
	assert.Equal(t, "error", StatusFor(http.StatusUnprocessableEntity))
	assert.Equal(t, "fail", StatusFor(http.StatusInternalServerError))
	assert.Equal(t, "fail", StatusFor(http.StatusOK))
}

func TestConstructorsCarryCodes(t *testing.T) {
	tests := []struct {
		err  *Error
		kind Kind
		code int
	}{
		{Validation("bad", 0), KindValidation, http.StatusUnprocessableEntity},
		{Validation("bad", http.StatusUnauthorized), KindValidation, http.StatusUnauthorized},
		{Conflict("dup"), KindConflict, http.StatusBadRequest},
		{Authentication("nope"), KindAuthentication, http.StatusUnauthorized},
		{Unauthenticated("login"), KindUnauthenticated, http.StatusUnauthorized},
		{Authorization("forbidden"), KindAuthorization, http.StatusBadRequest},
		{NotFound("gone", 0), KindNotFound, http.StatusNotFound},
		{NotFound("gone", http.StatusUnauthorized), KindNotFound, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, tt.err.Kind)
		assert.Equal(t, tt.code, tt.err.Code)
		assert.True(t, tt.err.Operational())
	}
}

func TestUnexpectedHidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	err := Unexpected(cause)

	assert.False(t, err.Operational())
	assert.Equal(t, GenericMessage, err.Message)
	assert.Equal(t, http.StatusInternalServerError, err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestAsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("register: %w", Conflict("User with this email address already exists"))

	ae, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindConflict, ae.Kind)
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(errors.New("plain"), KindConflict))
}
