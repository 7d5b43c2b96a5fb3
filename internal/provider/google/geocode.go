package google

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"encoding/json"

	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"go.uber.org/zap"
)

// biasSpanDegrees is the half-width of the viewport hint sent with geocoding
// requests so ambiguous place names resolve near the caller.
const biasSpanDegrees = 0.5

// GeocodeClient implements navigation.Geocoder against the Google Geocoding
// REST API.
type GeocodeClient struct {
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	baseURL    string
}

// NewGeocodeClient creates a GeocodeClient. An empty apiKey yields an adapter
// that reports navigation.ErrUnavailable on every call.
func NewGeocodeClient(apiKey string, timeout time.Duration, log *zap.Logger) *GeocodeClient {
	return &GeocodeClient{
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: newHTTPClient(timeout),
		logger:     log,
		baseURL:    geocodeBaseURL,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves a destination phrase to coordinates, using the first
// provider-ranked result. Returns navigation.ErrNotFound when the provider
// has no match or returns out-of-range coordinates, navigation.ErrUnavailable
// on configuration, transport or provider errors.
func (c *GeocodeClient) Geocode(ctx context.Context, query string, bias navigation.Coordinate) (*navigation.GeocodeResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("geocode: not configured: %w", navigation.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("address", query)
	params.Set("bounds", fmt.Sprintf("%f,%f|%f,%f",
		bias.Lat-biasSpanDegrees, bias.Lng-biasSpanDegrees,
		bias.Lat+biasSpanDegrees, bias.Lng+biasSpanDegrees,
	))
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode: create request: %w", navigation.ErrUnavailable)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("geocode request failed", zap.Error(err))
		return nil, fmt.Errorf("geocode: %v: %w", err, navigation.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Provider: "geocode", StatusCode: resp.StatusCode, Message: resp.Status}
		c.logger.Warn("geocode api error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%v: %w", apiErr, navigation.ErrUnavailable)
	}

	var parsed geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("geocode: decode response: %w", navigation.ErrUnavailable)
	}

	switch parsed.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, fmt.Errorf("geocode: no match for %q: %w", query, navigation.ErrNotFound)
	default:
		return nil, fmt.Errorf("geocode: status %s: %w", parsed.Status, navigation.ErrUnavailable)
	}

	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("geocode: no match for %q: %w", query, navigation.ErrNotFound)
	}

	first := parsed.Results[0]
	location := navigation.Coordinate{
		Lat: first.Geometry.Location.Lat,
		Lng: first.Geometry.Location.Lng,
	}
	if !location.Valid() {
		c.logger.Warn("geocode returned out-of-range coordinates",
			zap.Float64("lat", location.Lat),
			zap.Float64("lng", location.Lng),
		)
		return nil, fmt.Errorf("geocode: invalid coordinates: %w", navigation.ErrNotFound)
	}

	place := first.FormattedAddress
	if place == "" {
		place = query
	}

	return &navigation.GeocodeResult{Place: place, Location: location}, nil
}
