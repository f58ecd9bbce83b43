package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusConvention(t *testing.T) {
	// 4xx is the client's fault ("fail"), 5xx is ours ("error").
	assert.Equal(t, "fail", NewValidation("bad input").Status)
	assert.Equal(t, "fail", NewNotFound("missing").Status)
	assert.Equal(t, "fail", NewForbidden("no").Status)
	assert.Equal(t, "error", NewInternal("boom", errors.New("cause")).Status)
}

func TestSentinelsUnwrap(t *testing.T) {
	assert.ErrorIs(t, NewNotFound("missing"), ErrNotFound)
	assert.ErrorIs(t, NewValidation("bad"), ErrValidation)
	assert.ErrorIs(t, NewDuplicate("dup"), ErrDuplicate)
	assert.ErrorIs(t, NewForbidden("no"), ErrForbidden)
	assert.ErrorIs(t, NewUnauthorized("who"), ErrUnauthorized)
}

func TestFrom_PassesThroughAppError(t *testing.T) {
	original := NewNotFound("No book found with that ID")

	assert.Same(t, original, From(original))
	// Wrapped AppErrors are still recovered.
	assert.Same(t, original, From(fmt.Errorf("loading book: %w", original)))
}

func TestFrom_WrapsUnknownAsInternal(t *testing.T) {
	appErr := From(errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	assert.Equal(t, "error", appErr.Status)
}
