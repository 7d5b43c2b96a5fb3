package navigation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is the immutable audit entry persisted once per pipeline run.
// Fields for stages that did not complete stay empty/nil.
type Record struct {
	id               uuid.UUID
	deviceID         string
	origin           Coordinate
	heading          *float64
	transcript       string
	detectedLanguage string
	translatedText   string
	destinationPlace string
	destination      *Coordinate
	createdAt        time.Time
}

// NewRecord creates an audit record for a completed (or best-effort) run.
func NewRecord(
	deviceID string,
	origin Coordinate,
	heading *float64,
	transcript string,
	detectedLanguage string,
	translatedText string,
	destinationPlace string,
	destination *Coordinate,
) *Record {
	return &Record{
		id:               uuid.New(),
		deviceID:         deviceID,
		origin:           origin,
		heading:          heading,
		transcript:       transcript,
		detectedLanguage: detectedLanguage,
		translatedText:   translatedText,
		destinationPlace: destinationPlace,
		destination:      destination,
		createdAt:        time.Now().UTC(),
	}
}

// Getters.
func (r *Record) ID() uuid.UUID            { return r.id }
func (r *Record) DeviceID() string         { return r.deviceID }
func (r *Record) Origin() Coordinate       { return r.origin }
func (r *Record) Heading() *float64        { return r.heading }
func (r *Record) Transcript() string       { return r.transcript }
func (r *Record) DetectedLanguage() string { return r.detectedLanguage }
func (r *Record) TranslatedText() string   { return r.translatedText }
func (r *Record) DestinationPlace() string { return r.destinationPlace }
func (r *Record) Destination() *Coordinate { return r.destination }
func (r *Record) CreatedAt() time.Time     { return r.createdAt }

// RecordRepository is the write-and-forget persistence contract for audit
// records. No read contract is required by the pipeline.
type RecordRepository interface {
	Save(ctx context.Context, record *Record) error
}
