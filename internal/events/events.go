// Package events defines the domain events this service publishes and the
// Kafka-backed publisher for them.
package events

import (
	"context"
	"time"

	"github.com/Sajal-97/Blind-Stick-Server/internal/kafka"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Topic and event type identifiers.
const (
	TopicNavigationEvents = "navigation.events"

	NavigationCompleted = "navigation.completed"
)

// NavigationCompletedEvent is emitted after every pipeline run, including
// degraded ones. RouteFound distinguishes full successes.
type NavigationCompletedEvent struct {
	RecordID         uuid.UUID `json:"record_id"`
	DeviceID         string    `json:"device_id"`
	OriginLat        float64   `json:"origin_lat"`
	OriginLng        float64   `json:"origin_lng"`
	Transcript       string    `json:"transcript"`
	DestinationPlace string    `json:"destination_place,omitempty"`
	DestinationLat   *float64  `json:"destination_lat,omitempty"`
	DestinationLng   *float64  `json:"destination_lng,omitempty"`
	RouteFound       bool      `json:"route_found"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// Publisher publishes navigation events fire-and-forget: publish failures are
// logged, never propagated, so they cannot affect a response already prepared
// for the caller.
type Publisher struct {
	producer *kafka.Producer
	source   string
	logger   *zap.Logger
}

// NewPublisher creates a Publisher for the given producer.
func NewPublisher(producer *kafka.Producer, log *zap.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		source:   "blind-stick-server",
		logger:   log,
	}
}

// NavigationCompleted publishes a NavigationCompletedEvent.
func (p *Publisher) NavigationCompleted(ctx context.Context, evt NavigationCompletedEvent) {
	cloudEvent, err := kafka.NewCloudEvent(p.source, NavigationCompleted, evt)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", NavigationCompleted),
			zap.Error(err),
		)
		return
	}

	if err := p.producer.PublishEvent(ctx, TopicNavigationEvents, cloudEvent); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicNavigationEvents),
			zap.String("event_type", NavigationCompleted),
			zap.Error(err),
		)
	}
}
