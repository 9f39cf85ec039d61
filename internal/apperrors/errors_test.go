package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAIServiceError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAIServiceError("failed to generate response", cause)

	assert.Equal(t, "failed to generate response: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestAIServiceError_NoCause(t *testing.T) {
	err := NewAIServiceError("backend unavailable", nil)
	assert.Equal(t, "backend unavailable", err.Error())
}

func TestVectorStoreError_WrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewVectorStoreError("failed to save index", cause)

	assert.Equal(t, "failed to save index: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestValidationError_FormatsField(t *testing.T) {
	assert.Equal(t, "prompt: cannot be blank", NewValidationError("prompt", "cannot be blank").Error())
	assert.Equal(t, "cannot be blank", NewValidationError("", "cannot be blank").Error())
}

func TestSecurityError(t *testing.T) {
	err := NewSecurityError("input rejected")
	assert.Equal(t, "input rejected", err.Error())
}

func TestErrorsAs_DistinguishesCategories(t *testing.T) {
	var err error = NewVectorStoreError("boom", nil)

	var storeErr *VectorStoreError
	var aiErr *AIServiceError
	assert.ErrorAs(t, err, &storeErr)
	assert.False(t, errors.As(err, &aiErr))
}
