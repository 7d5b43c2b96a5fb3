package google

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"go.uber.org/zap"
)

// SpeechClient implements navigation.Transcriber against the Google
// Speech-to-Text v1 REST API.
type SpeechClient struct {
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	baseURL    string
}

// NewSpeechClient creates a SpeechClient. An empty apiKey yields an adapter
// that reports navigation.ErrUnavailable on every call.
func NewSpeechClient(apiKey string, timeout time.Duration, log *zap.Logger) *SpeechClient {
	return &SpeechClient{
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: newHTTPClient(timeout),
		logger:     log,
		baseURL:    speechBaseURL,
	}
}

type speechRequest struct {
	Config speechConfig `json:"config"`
	Audio  speechAudio  `json:"audio"`
}

type speechConfig struct {
	LanguageCode               string   `json:"languageCode"`
	AlternativeLanguageCodes   []string `json:"alternativeLanguageCodes,omitempty"`
	EnableAutomaticPunctuation bool     `json:"enableAutomaticPunctuation"`
}

type speechAudio struct {
	Content string `json:"content"`
}

type speechResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string `json:"transcript"`
		} `json:"alternatives"`
		LanguageCode string `json:"languageCode"`
	} `json:"results"`
}

// Transcribe converts an audio clip to text with a detected language.
// Returns navigation.ErrUnavailable on configuration, transport or provider
// errors and navigation.ErrNotFound when no speech was recognized.
func (c *SpeechClient) Transcribe(ctx context.Context, audio []byte) (*navigation.TranscriptionResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("speech: not configured: %w", navigation.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := speechRequest{
		Config: speechConfig{
			LanguageCode:               "en-US",
			AlternativeLanguageCodes:   []string{"bn-BD", "hi-IN", "es-ES"},
			EnableAutomaticPunctuation: true,
		},
		Audio: speechAudio{Content: base64.StdEncoding.EncodeToString(audio)},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("speech: marshal request: %w", navigation.ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("speech: create request: %w", navigation.ErrUnavailable)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("speech request failed", zap.Error(err))
		return nil, fmt.Errorf("speech: %v: %w", err, navigation.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Provider: "speech", StatusCode: resp.StatusCode, Message: resp.Status}
		c.logger.Warn("speech api error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%v: %w", apiErr, navigation.ErrUnavailable)
	}

	var parsed speechResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("speech: decode response: %w", navigation.ErrUnavailable)
	}

	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("speech: no speech recognized: %w", navigation.ErrNotFound)
	}

	var parts []string
	for _, result := range parsed.Results {
		if len(result.Alternatives) > 0 {
			parts = append(parts, result.Alternatives[0].Transcript)
		}
	}
	transcript := strings.TrimSpace(strings.Join(parts, " "))
	if transcript == "" {
		return nil, fmt.Errorf("speech: empty transcript: %w", navigation.ErrNotFound)
	}

	return &navigation.TranscriptionResult{
		Text:     transcript,
		Language: parsed.Results[0].LanguageCode,
	}, nil
}
