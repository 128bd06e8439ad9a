package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ga-dictionary/api-server-go/models"
	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

// PhonemeClient generates phonemic transcriptions for Ga text
type PhonemeClient interface {
	GeneratePhonemes(ctx context.Context, text string) (*models.PhonemeSuggestionResponse, error)
}

// PhonemeService talks to the external grapheme-to-phoneme service. The
// service is opaque: any transport or remote failure surfaces as
// UpstreamError and the caller degrades to "no suggestion available". No
// retries here; retrying is the caller's call.
type PhonemeService struct {
	baseURL string
	apiKey  string
	// HTTPClient is exported so tests can install a mock transport
	HTTPClient *http.Client
}

// NewPhonemeService creates a new phoneme service client
func NewPhonemeService(baseURL, apiKey string) *PhonemeService {
	return &PhonemeService{
		baseURL:    baseURL,
		apiKey:     apiKey,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GeneratePhonemes requests a phonemic transcription for the given text
func (s *PhonemeService) GeneratePhonemes(ctx context.Context, text string) (*models.PhonemeSuggestionResponse, error) {
	if text == "" {
		return nil, apierrors.ValidationError("TEXT_REQUIRED", "text is required")
	}

	reqBody, err := json.Marshal(models.PhonemeSuggestionRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/phonemes", s.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		httpReq.Header.Set("apikey", s.apiKey)
	}

	resp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, apierrors.UpstreamError("phoneme service", err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			slog.Error("failed to close response body", "error", err)
		}
	}(resp.Body)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.UpstreamError("phoneme service", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Warn("Phoneme service returned error", "status", resp.StatusCode, "body", string(respBody))
		return nil, apierrors.UpstreamError("phoneme service",
			fmt.Errorf("phoneme service returned status %d", resp.StatusCode))
	}

	var response models.PhonemeSuggestionResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, apierrors.UpstreamError("phoneme service", err)
	}

	if !response.Success {
		return nil, apierrors.UpstreamError("phoneme service",
			fmt.Errorf("phoneme generation unsuccessful"))
	}

	return &response, nil
}
