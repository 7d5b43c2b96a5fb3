// Package google implements the pipeline's provider contracts against the
// Google Speech-to-Text, Translation, Geocoding and Directions REST APIs.
//
// Every adapter applies a bounded per-call timeout and reports
// navigation.ErrUnavailable when it is unconfigured (empty API key), the
// provider errors, or the call times out, so the orchestrator can degrade
// instead of failing.
package google

import (
	"fmt"
	"net"
	"net/http"
	"time"
)

const (
	speechBaseURL     = "https://speech.googleapis.com/v1/speech:recognize"
	translateBaseURL  = "https://translation.googleapis.com/language/translate/v2"
	geocodeBaseURL    = "https://maps.googleapis.com/maps/api/geocode/json"
	directionsBaseURL = "https://maps.googleapis.com/maps/api/directions/json"
)

// APIError is a non-200 response from a Google API.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error %d: %s", e.Provider, e.StatusCode, e.Message)
}

// newHTTPClient builds an HTTP client with connection-level timeouts in
// addition to the overall request timeout.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
		},
	}
}
