// Package navigation holds the domain types and capability contracts for the
// voice-to-navigation pipeline: transcription, translation, destination
// extraction, geocoding and routing.
package navigation

import (
	"github.com/Sajal-97/Blind-Stick-Server/internal/domain"
)

// PlaceholderTranscript is substituted when the transcription stage is
// unavailable or recognized nothing. The orchestrator never attempts
// destination extraction on it.
const PlaceholderTranscript = "[speech not recognized]"

// Coordinate is a WGS 84 geographic position.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is within range
// (latitude -90..90, longitude -180..180, both inclusive).
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// Validate returns a ValidationError when the coordinate is out of range.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return domain.NewValidationError("latitude must be between -90 and 90")
	}
	if c.Lng < -180 || c.Lng > 180 {
		return domain.NewValidationError("longitude must be between -180 and 180")
	}
	return nil
}

// TranscriptionResult is the output of the transcription stage.
type TranscriptionResult struct {
	Text     string
	Language string // BCP-47 code detected by the provider, empty if unknown
}

// TranslationResult is the output of the translation stage.
type TranslationResult struct {
	Text           string
	TargetLanguage string
}

// GeocodeResult resolves a destination phrase to a place and position.
type GeocodeResult struct {
	Place    string
	Location Coordinate
}

// RouteStep is one maneuver unit of a route, in traversal order.
type RouteStep struct {
	Instruction string     `json:"instruction"`
	Distance    string     `json:"distance"`
	Duration    string     `json:"duration"`
	Maneuver    string     `json:"maneuver"`
	Start       Coordinate `json:"start_point"`
	End         Coordinate `json:"end_point"`
}

// RouteResult is a computed route from origin to destination. Steps is
// non-empty for any successful route.
type RouteResult struct {
	OverviewPolyline string
	Distance         string
	Duration         string
	Steps            []RouteStep
}
