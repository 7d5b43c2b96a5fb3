package navigation

import (
	"context"
	"errors"
)

// Stage outcomes. ErrUnavailable means the provider is unconfigured, errored
// or timed out; ErrNotFound and ErrNoRoute mean the provider ran but found
// nothing useful. The orchestrator branches on these with errors.Is and never
// surfaces them to the caller.
var (
	ErrUnavailable = errors.New("navigation: provider unavailable")
	ErrNotFound    = errors.New("navigation: no match found")
	ErrNoRoute     = errors.New("navigation: no route found")
)

// Transcriber converts an audio clip to text. Whole-clip only, no streaming.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte) (*TranscriptionResult, error)
}

// Translator translates text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (*TranslationResult, error)
}

// Geocoder resolves a free-text destination phrase to a place and coordinates.
// The bias coordinate hints the provider to prefer matches near the caller.
type Geocoder interface {
	Geocode(ctx context.Context, query string, bias Coordinate) (*GeocodeResult, error)
}

// Router computes a route between two coordinates.
type Router interface {
	Route(ctx context.Context, origin, destination Coordinate) (*RouteResult, error)
}
