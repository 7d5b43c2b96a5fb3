package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSpeechClient(t *testing.T, handler http.HandlerFunc) *SpeechClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewSpeechClient("test-key", 5*time.Second, zap.NewNop())
	client.baseURL = server.URL
	return client
}

func TestSpeechClient_Transcribe(t *testing.T) {
	var captured speechRequest
	client := newTestSpeechClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{
					"alternatives": []map[string]any{{"transcript": "take me to the station"}},
					"languageCode": "en-us",
				},
			},
		})
	})

	result, err := client.Transcribe(context.Background(), []byte("audio-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "take me to the station", result.Text)
	assert.Equal(t, "en-us", result.Language)

	assert.Equal(t, "en-US", captured.Config.LanguageCode)
	assert.Contains(t, captured.Config.AlternativeLanguageCodes, "bn-BD")
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("audio-bytes")), captured.Audio.Content)
}

func TestSpeechClient_JoinsMultipleResults(t *testing.T) {
	client := newTestSpeechClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"alternatives": []map[string]any{{"transcript": "take me"}}, "languageCode": "en-us"},
				{"alternatives": []map[string]any{{"transcript": "to the station"}}},
			},
		})
	})

	result, err := client.Transcribe(context.Background(), []byte("audio"))
	require.NoError(t, err)
	assert.Equal(t, "take me to the station", result.Text)
}

func TestSpeechClient_NoResults(t *testing.T) {
	client := newTestSpeechClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	})

	_, err := client.Transcribe(context.Background(), []byte("audio"))
	require.Error(t, err)
	assert.ErrorIs(t, err, navigation.ErrNotFound)
}

func TestSpeechClient_ServerError(t *testing.T) {
	client := newTestSpeechClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Transcribe(context.Background(), []byte("audio"))
	require.Error(t, err)
	assert.ErrorIs(t, err, navigation.ErrUnavailable)
}

func TestSpeechClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	t.Cleanup(server.Close)
	client := NewSpeechClient("test-key", 50*time.Millisecond, zap.NewNop())
	client.baseURL = server.URL

	_, err := client.Transcribe(context.Background(), []byte("audio"))
	require.Error(t, err)
	assert.ErrorIs(t, err, navigation.ErrUnavailable)
}

func TestSpeechClient_NotConfigured(t *testing.T) {
	client := NewSpeechClient("", 5*time.Second, zap.NewNop())

	_, err := client.Transcribe(context.Background(), []byte("audio"))
	require.Error(t, err)
	assert.ErrorIs(t, err, navigation.ErrUnavailable)
}
