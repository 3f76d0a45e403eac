package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		kind   Kind
		status int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindInvalidState, http.StatusBadRequest},
		{KindValidationFailed, http.StatusBadRequest},
		{KindUnauthenticated, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindConflict, http.StatusConflict},
		{KindUnexpected, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.status, tt.kind.HTTPStatus())
		})
	}
	assert.Equal(t, http.StatusUnauthorized, ErrUnauthenticated.Kind.HTTPStatus())
}

func TestError_WithCause(t *testing.T) {
	cause := errors.New("stored version moved on")
	err := ErrVersionConflict.WithCause(cause)

	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, CodeVersionConflict, CodeOf(err))
	assert.Nil(t, ErrVersionConflict.Cause, "sentinel stays untouched")
}

func TestKindOf_Unclassified(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindUnexpected, KindOf(errors.New("boom")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
}
