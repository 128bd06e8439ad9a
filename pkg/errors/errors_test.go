package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantType   ErrorType
		wantStatus int
	}{
		{"validation", ValidationError("BAD_INPUT", "bad input"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NotFoundError("word"), ErrorTypeNotFound, http.StatusNotFound},
		{"conflict", ConflictError("already reviewed"), ErrorTypeConflict, http.StatusConflict},
		{"duplicate", DuplicateError("open flag exists"), ErrorTypeDuplicate, http.StatusConflict},
		{"unauthorized", UnauthorizedError("sign in first"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"forbidden", PermissionError(), ErrorTypeForbidden, http.StatusForbidden},
		{"upstream", UpstreamError("phoneme service", fmt.Errorf("refused")), ErrorTypeUpstream, http.StatusBadGateway},
		{"internal", InternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
		{"database", DatabaseError("fetch word", fmt.Errorf("timeout")), ErrorTypeDatabase, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantStatus, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// Permission denials never name the resource or the required role
func TestPermissionErrorIsOpaque(t *testing.T) {
	err := PermissionError()
	assert.Equal(t, "insufficient permissions", err.Message)
	assert.Empty(t, err.Details)
}

func TestErrorChain(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := UpstreamError("phoneme service", cause)

	assert.True(t, errors.Is(err, cause))

	wrapped := fmt.Errorf("handling request: %w", err)
	extracted := GetAPIError(wrapped)
	require.NotNil(t, extracted)
	assert.Equal(t, ErrorTypeUpstream, extracted.Type)
	assert.True(t, IsType(wrapped, ErrorTypeUpstream))
	assert.False(t, IsType(wrapped, ErrorTypeValidation))

	assert.Nil(t, GetAPIError(fmt.Errorf("plain error")))
	assert.False(t, IsType(nil, ErrorTypeInternal))
}
