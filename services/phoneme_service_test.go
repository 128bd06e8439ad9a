package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

func phonemeResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestGeneratePhonemes(t *testing.T) {
	service := NewPhonemeService("http://phoneme.local", "test-key")
	service.HTTPClient = &http.Client{Transport: &mockRoundTripper{
		Response: phonemeResponse(http.StatusOK,
			`{"success":true,"phonemes":"akʷaaba","wordBreakdown":[{"word":"akwaaba","phonemes":"akʷaaba"}]}`),
	}}

	response, err := service.GeneratePhonemes(context.Background(), "akwaaba")
	require.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "akʷaaba", response.Phonemes)
	require.Len(t, response.WordBreakdown, 1)
	assert.Equal(t, "akwaaba", response.WordBreakdown[0].Word)
}

func TestGeneratePhonemesFailures(t *testing.T) {
	tests := []struct {
		name      string
		transport *mockRoundTripper
	}{
		{
			name:      "transport failure",
			transport: &mockRoundTripper{Err: fmt.Errorf("connection refused")},
		},
		{
			name:      "remote error status",
			transport: &mockRoundTripper{Response: phonemeResponse(http.StatusInternalServerError, `{"error":"boom"}`)},
		},
		{
			name:      "malformed response body",
			transport: &mockRoundTripper{Response: phonemeResponse(http.StatusOK, `not json`)},
		},
		{
			name:      "unsuccessful generation",
			transport: &mockRoundTripper{Response: phonemeResponse(http.StatusOK, `{"success":false}`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewPhonemeService("http://phoneme.local", "")
			service.HTTPClient = &http.Client{Transport: tt.transport}

			_, err := service.GeneratePhonemes(context.Background(), "akwaaba")
			assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeUpstream), "expected upstream error, got %v", err)
		})
	}
}

func TestGeneratePhonemesEmptyText(t *testing.T) {
	service := NewPhonemeService("http://phoneme.local", "")
	_, err := service.GeneratePhonemes(context.Background(), "")
	assert.True(t, apierrors.IsType(err, apierrors.ErrorTypeValidation))
}
