package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindMapping(t *testing.T) {
	cases := []struct {
		err    error
		kind   Kind
		status int
	}{
		{Validation("bad input"), KindValidation, http.StatusBadRequest},
		{NotFound("missing"), KindNotFound, http.StatusNotFound},
		{Unauthorized("nope"), KindUnauthorized, http.StatusUnauthorized},
		{Forbidden("not yours"), KindForbidden, http.StatusForbidden},
		{Retrieval("db down", errors.New("conn refused")), KindRetrieval, http.StatusInternalServerError},
		{errors.New("foreign"), KindUnknown, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.kind, KindOf(tc.err))
		assert.True(t, IsKind(tc.err, tc.kind))
		assert.Equal(t, tc.status, HTTPStatus(tc.err))
	}
}

func TestWrappingAndMessage(t *testing.T) {
	cause := errors.New("conn refused")
	err := Retrieval("db down", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "db down: conn refused", err.Error())
	assert.Equal(t, "db down", Message(err))

	// Kind survives an extra layer of wrapping.
	wrapped := fmt.Errorf("handler: %w", err)
	assert.True(t, IsKind(wrapped, KindRetrieval))

	// Foreign errors never leak their text to clients.
	assert.Equal(t, "internal server error", Message(cause))
}
