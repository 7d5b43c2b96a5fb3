package google

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"go.uber.org/zap"
)

// TranslateClient implements navigation.Translator against the Google
// Translation v2 REST API.
type TranslateClient struct {
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	baseURL    string
}

// NewTranslateClient creates a TranslateClient. An empty apiKey yields an
// adapter that reports navigation.ErrUnavailable on every call.
func NewTranslateClient(apiKey string, timeout time.Duration, log *zap.Logger) *TranslateClient {
	return &TranslateClient{
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: newHTTPClient(timeout),
		logger:     log,
		baseURL:    translateBaseURL,
	}
}

type translateRequest struct {
	Q      []string `json:"q"`
	Target string   `json:"target"`
	Format string   `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate translates text into the target language. Returns
// navigation.ErrUnavailable on configuration, transport or provider errors;
// the orchestrator falls back to the untranslated text.
func (c *TranslateClient) Translate(ctx context.Context, text, targetLanguage string) (*navigation.TranslationResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("translate: not configured: %w", navigation.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(translateRequest{
		Q:      []string{text},
		Target: targetLanguage,
		Format: "text",
	})
	if err != nil {
		return nil, fmt.Errorf("translate: marshal request: %w", navigation.ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("translate: create request: %w", navigation.ErrUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("translate request failed", zap.Error(err))
		return nil, fmt.Errorf("translate: %v: %w", err, navigation.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Provider: "translate", StatusCode: resp.StatusCode, Message: resp.Status}
		c.logger.Warn("translate api error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%v: %w", apiErr, navigation.ErrUnavailable)
	}

	var parsed translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("translate: decode response: %w", navigation.ErrUnavailable)
	}

	if len(parsed.Data.Translations) == 0 {
		return nil, fmt.Errorf("translate: empty response: %w", navigation.ErrUnavailable)
	}

	return &navigation.TranslationResult{
		Text:           parsed.Data.Translations[0].TranslatedText,
		TargetLanguage: targetLanguage,
	}, nil
}
