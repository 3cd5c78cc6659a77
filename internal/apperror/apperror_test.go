package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/BerylCAtieno/content-generator/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code apperror.Code
		want int
	}{
		{apperror.CodeInvalidParam, http.StatusBadRequest},
		{apperror.CodeValidationFailed, http.StatusUnprocessableEntity},
		{apperror.CodeGenerationFailed, http.StatusBadGateway},
		{apperror.CodeLLMProviderError, http.StatusBadGateway},
		{apperror.CodeConfiguration, http.StatusServiceUnavailable},
		{apperror.CodeServiceUnavailable, http.StatusServiceUnavailable},
		{apperror.CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, apperror.StatusFor(tt.code), string(tt.code))
	}
}

func TestWrapUnwrap(t *testing.T) {
	t.Parallel()
	cause := errors.New("quota exceeded")
	err := apperror.Wrap(cause, apperror.CodeLLMProviderError, "gemini call failed")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "[llm_provider_error] gemini call failed: quota exceeded", err.Error())
	assert.Equal(t, http.StatusBadGateway, err.HTTPStatus)
}

func TestAs(t *testing.T) {
	t.Parallel()

	assert.Nil(t, apperror.As(nil))

	wrapped := fmt.Errorf("init: %w", apperror.ErrMissingCredential)
	got := apperror.As(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, apperror.CodeConfiguration, got.Code)
	assert.ErrorIs(t, wrapped, apperror.ErrMissingCredential)

	plain := apperror.As(errors.New("boom"))
	assert.Equal(t, apperror.CodeInternal, plain.Code)
}

func TestWithDetailDoesNotMutatePredefined(t *testing.T) {
	t.Parallel()
	detailed := apperror.ErrValidationFailed.WithDetail("topic too short")
	assert.Equal(t, "topic too short", detailed.Detail)
	assert.Empty(t, apperror.ErrValidationFailed.Detail)
	assert.ErrorIs(t, detailed, apperror.ErrValidationFailed)
}
