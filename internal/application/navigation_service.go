package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sajal-97/Blind-Stick-Server/internal/domain"
	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"github.com/Sajal-97/Blind-Stick-Server/internal/events"
	"go.uber.org/zap"
)

// Recorder accepts audit records for background persistence.
type Recorder interface {
	Record(record *navigation.Record)
}

// EventPublisher publishes pipeline events fire-and-forget.
type EventPublisher interface {
	NavigationCompleted(ctx context.Context, evt events.NavigationCompletedEvent)
}

// NavigateRequest holds the validated-at-transport inputs of one pipeline run.
type NavigateRequest struct {
	DeviceID string
	Origin   navigation.Coordinate
	Heading  *float64
	Audio    []byte
}

// NavigationResponse is the external contract of the pipeline. Every field is
// present in the JSON body; stages that did not complete leave their fields
// null rather than omitting them.
type NavigationResponse struct {
	DeviceID          string                 `json:"device_id"`
	Transcript        string                 `json:"transcript"`
	DetectedLanguage  *string                `json:"detected_language"`
	TargetLanguage    string                 `json:"target_language"`
	DestinationPhrase *string                `json:"destination_phrase"`
	DestinationPlace  *string                `json:"destination_place"`
	Destination       *navigation.Coordinate `json:"destination"`
	OverviewPolyline  *string                `json:"overview_polyline"`
	RouteDistance     *string                `json:"route_distance"`
	RouteDuration     *string                `json:"route_duration"`
	Steps             []navigation.RouteStep `json:"steps"`
}

// NavigationService orchestrates the voice-to-navigation pipeline:
// transcription, translation, destination extraction, geocoding, routing.
// Every stage failure except input validation degrades the response instead of
// failing the call.
type NavigationService struct {
	transcriber    navigation.Transcriber
	translator     navigation.Translator
	geocoder       navigation.Geocoder
	router         navigation.Router
	audit          Recorder
	publisher      EventPublisher
	targetLanguage string
	logger         *zap.Logger
}

// NewNavigationService creates a NavigationService. targetLanguage defaults
// to "en" when empty.
func NewNavigationService(
	transcriber navigation.Transcriber,
	translator navigation.Translator,
	geocoder navigation.Geocoder,
	router navigation.Router,
	audit Recorder,
	publisher EventPublisher,
	targetLanguage string,
	logger *zap.Logger,
) *NavigationService {
	if targetLanguage == "" {
		targetLanguage = "en"
	}
	return &NavigationService{
		transcriber:    transcriber,
		translator:     translator,
		geocoder:       geocoder,
		router:         router,
		audit:          audit,
		publisher:      publisher,
		targetLanguage: strings.ToLower(targetLanguage),
		logger:         logger,
	}
}

// Navigate runs the pipeline for one request. It returns an error only for
// invalid input (out-of-range coordinates, empty audio); every provider
// failure yields a structurally complete, partially populated response.
func (s *NavigationService) Navigate(ctx context.Context, req NavigateRequest) (*NavigationResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resp := &NavigationResponse{
		DeviceID:       req.DeviceID,
		TargetLanguage: s.targetLanguage,
	}

	// Transcription. Unavailability substitutes the placeholder and lets the
	// pipeline continue; extraction knows to yield nothing for it.
	detected := ""
	if result, err := s.transcriber.Transcribe(ctx, req.Audio); err != nil {
		if errors.Is(err, navigation.ErrNotFound) {
			s.logger.Info("no speech recognized, substituting placeholder",
				zap.String("device_id", req.DeviceID),
			)
		} else {
			s.logger.Warn("transcription unavailable, substituting placeholder",
				zap.String("device_id", req.DeviceID),
				zap.Error(err),
			)
		}
		resp.Transcript = navigation.PlaceholderTranscript
	} else {
		resp.Transcript = result.Text
		if result.Language != "" {
			detected = result.Language
			lang := result.Language
			resp.DetectedLanguage = &lang
		}
	}

	// Translation. Extraction always runs on this stage's output, which is a
	// pass-through when the source language is unknown, already matches the
	// target, or the translator is unavailable.
	text := resp.Transcript
	translated := ""
	if detected != "" && !strings.HasPrefix(strings.ToLower(detected), s.targetLanguage) {
		if result, err := s.translator.Translate(ctx, text, s.targetLanguage); err != nil {
			s.logger.Warn("translation unavailable, passing transcript through",
				zap.String("detected_language", detected),
				zap.Error(err),
			)
		} else {
			text = result.Text
			translated = result.Text
		}
	}

	// Destination extraction.
	phrase := ""
	if resp.Transcript != navigation.PlaceholderTranscript {
		phrase = navigation.ExtractDestination(text)
	}
	if phrase == "" {
		s.logger.Info("no destination understood",
			zap.String("device_id", req.DeviceID),
			zap.String("transcript", resp.Transcript),
		)
		s.finish(ctx, req, resp, detected, translated)
		return resp, nil
	}
	resp.DestinationPhrase = &phrase

	// Geocoding, biased to the caller's current position.
	geo, err := s.geocoder.Geocode(ctx, phrase, req.Origin)
	if err != nil {
		if errors.Is(err, navigation.ErrNotFound) {
			s.logger.Info("no geocode match for destination phrase",
				zap.String("phrase", phrase),
			)
		} else {
			s.logger.Warn("geocoding unavailable",
				zap.String("phrase", phrase),
				zap.Error(err),
			)
		}
		s.finish(ctx, req, resp, detected, translated)
		return resp, nil
	}
	place := geo.Place
	location := geo.Location
	resp.DestinationPlace = &place
	resp.Destination = &location

	// Routing from the caller's position to the resolved destination.
	// Heading is stored and forwarded but does not influence the route yet.
	route, err := s.router.Route(ctx, req.Origin, geo.Location)
	if err != nil {
		if errors.Is(err, navigation.ErrNoRoute) {
			s.logger.Info("no route to destination",
				zap.String("place", place),
			)
		} else {
			s.logger.Warn("routing unavailable",
				zap.String("place", place),
				zap.Error(err),
			)
		}
		s.finish(ctx, req, resp, detected, translated)
		return resp, nil
	}
	polyline := route.OverviewPolyline
	distance := route.Distance
	duration := route.Duration
	resp.OverviewPolyline = &polyline
	resp.RouteDistance = &distance
	resp.RouteDuration = &duration
	resp.Steps = route.Steps

	s.finish(ctx, req, resp, detected, translated)
	return resp, nil
}

// finish queues the audit record and publishes the completion event. Neither
// can affect the response already assembled.
func (s *NavigationService) finish(ctx context.Context, req NavigateRequest, resp *NavigationResponse, detected, translated string) {
	place := ""
	if resp.DestinationPlace != nil {
		place = *resp.DestinationPlace
	}
	var destination *navigation.Coordinate
	if resp.Destination != nil {
		c := *resp.Destination
		destination = &c
	}

	record := navigation.NewRecord(
		req.DeviceID,
		req.Origin,
		req.Heading,
		resp.Transcript,
		detected,
		translated,
		place,
		destination,
	)
	s.audit.Record(record)

	evt := events.NavigationCompletedEvent{
		RecordID:         record.ID(),
		DeviceID:         req.DeviceID,
		OriginLat:        req.Origin.Lat,
		OriginLng:        req.Origin.Lng,
		Transcript:       resp.Transcript,
		DestinationPlace: place,
		RouteFound:       resp.OverviewPolyline != nil,
		OccurredAt:       time.Now().UTC(),
	}
	if destination != nil {
		lat, lng := destination.Lat, destination.Lng
		evt.DestinationLat = &lat
		evt.DestinationLng = &lng
	}
	s.publisher.NavigationCompleted(ctx, evt)
}

func validateRequest(req NavigateRequest) error {
	if err := req.Origin.Validate(); err != nil {
		return err
	}
	if len(req.Audio) == 0 {
		return domain.NewValidationError("audio is required")
	}
	return nil
}
