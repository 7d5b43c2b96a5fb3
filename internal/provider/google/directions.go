package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

// DirectionsClient implements navigation.Router against the Google Directions
// REST API. Routes are requested in walking mode.
type DirectionsClient struct {
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
	baseURL    string
}

// NewDirectionsClient creates a DirectionsClient. An empty apiKey yields an
// adapter that reports navigation.ErrUnavailable on every call.
func NewDirectionsClient(apiKey string, timeout time.Duration, log *zap.Logger) *DirectionsClient {
	return &DirectionsClient{
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: newHTTPClient(timeout),
		logger:     log,
		baseURL:    directionsBaseURL,
	}
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance directionsText `json:"distance"`
			Duration directionsText `json:"duration"`
			Steps    []struct {
				HTMLInstructions string         `json:"html_instructions"`
				Distance         directionsText `json:"distance"`
				Duration         directionsText `json:"duration"`
				Maneuver         string         `json:"maneuver"`
				StartLocation    directionsLoc  `json:"start_location"`
				EndLocation      directionsLoc  `json:"end_location"`
			} `json:"steps"`
		} `json:"legs"`
	} `json:"routes"`
}

type directionsText struct {
	Text string `json:"text"`
}

type directionsLoc struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Route computes a walking route between two coordinates, preserving the
// provider's step ordering. Returns navigation.ErrNoRoute when the provider
// finds no route, returns zero steps or a malformed overview polyline;
// navigation.ErrUnavailable on configuration, transport or provider errors.
func (c *DirectionsClient) Route(ctx context.Context, origin, destination navigation.Coordinate) (*navigation.RouteResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("directions: not configured: %w", navigation.ErrUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("origin", fmt.Sprintf("%f,%f", origin.Lat, origin.Lng))
	params.Set("destination", fmt.Sprintf("%f,%f", destination.Lat, destination.Lng))
	params.Set("mode", "walking")
	params.Set("alternatives", "false")
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("directions: create request: %w", navigation.ErrUnavailable)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("directions request failed", zap.Error(err))
		return nil, fmt.Errorf("directions: %v: %w", err, navigation.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Provider: "directions", StatusCode: resp.StatusCode, Message: resp.Status}
		c.logger.Warn("directions api error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%v: %w", apiErr, navigation.ErrUnavailable)
	}

	var parsed directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("directions: decode response: %w", navigation.ErrUnavailable)
	}

	switch parsed.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, fmt.Errorf("directions: no route: %w", navigation.ErrNoRoute)
	default:
		return nil, fmt.Errorf("directions: status %s: %w", parsed.Status, navigation.ErrUnavailable)
	}

	if len(parsed.Routes) == 0 || len(parsed.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("directions: empty route: %w", navigation.ErrNoRoute)
	}

	route := parsed.Routes[0]
	leg := route.Legs[0]
	if len(leg.Steps) == 0 {
		return nil, fmt.Errorf("directions: route has no steps: %w", navigation.ErrNoRoute)
	}

	points := route.OverviewPolyline.Points
	if coords, _, err := polyline.DecodeCoords([]byte(points)); err != nil || len(coords) == 0 {
		c.logger.Warn("directions returned malformed polyline", zap.Error(err))
		return nil, fmt.Errorf("directions: malformed polyline: %w", navigation.ErrNoRoute)
	}

	steps := make([]navigation.RouteStep, len(leg.Steps))
	for i, s := range leg.Steps {
		steps[i] = navigation.RouteStep{
			Instruction: s.HTMLInstructions,
			Distance:    s.Distance.Text,
			Duration:    s.Duration.Text,
			Maneuver:    s.Maneuver,
			Start:       navigation.Coordinate{Lat: s.StartLocation.Lat, Lng: s.StartLocation.Lng},
			End:         navigation.Coordinate{Lat: s.EndLocation.Lat, Lng: s.EndLocation.Lng},
		}
	}

	return &navigation.RouteResult{
		OverviewPolyline: points,
		Distance:         leg.Distance.Text,
		Duration:         leg.Duration.Text,
		Steps:            steps,
	}, nil
}
