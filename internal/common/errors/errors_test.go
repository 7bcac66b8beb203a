package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewNotFoundError("order", int64(5))
	assert.Equal(t, "[NOT_FOUND] order not found", err.Error())
	assert.Equal(t, int64(5), err.Details["id"])

	cause := stderrors.New("connection reset")
	wrapped := NewDatabaseError("update order", cause)
	assert.Equal(t, "[DATABASE_ERROR] Database operation failed: update order: connection reset", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestPredicates(t *testing.T) {
	notFound := fmt.Errorf("mark ready: %w", NewNotFoundError("order", 1))
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsValidation(notFound))

	assert.True(t, IsValidation(NewValidationError("price", "negative")))
	assert.True(t, IsConflict(NewConflictError("order", "already cancelled")))
	assert.True(t, IsForbidden(NewForbiddenError("not an admin")))
	assert.False(t, IsNotFound(stderrors.New("plain")))
	assert.False(t, IsNotFound(nil))
}
