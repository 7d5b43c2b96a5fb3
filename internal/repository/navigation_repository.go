package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Sajal-97/Blind-Stick-Server/internal/domain/navigation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NavigationRecordModel is the GORM model for the navigation_records table.
type NavigationRecordModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeviceID         string    `gorm:"size:64;index"`
	OriginLat        float64   `gorm:"not null"`
	OriginLng        float64   `gorm:"not null"`
	Heading          *float64  `gorm:""`
	Transcript       string    `gorm:"type:text"`
	DetectedLanguage string    `gorm:"size:16"`
	TranslatedText   string    `gorm:"type:text"`
	DestinationPlace string    `gorm:"size:512"`
	DestinationLat   *float64  `gorm:""`
	DestinationLng   *float64  `gorm:""`
	CreatedAt        time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (NavigationRecordModel) TableName() string {
	return "navigation_records"
}

// GormNavigationRepository is the GORM-based implementation of
// navigation.RecordRepository.
type GormNavigationRepository struct {
	db *gorm.DB
}

// NewGormNavigationRepository creates a new GormNavigationRepository.
func NewGormNavigationRepository(db *gorm.DB) *GormNavigationRepository {
	return &GormNavigationRepository{db: db}
}

// Save persists an audit record. Records are append-only and never updated.
func (r *GormNavigationRepository) Save(ctx context.Context, record *navigation.Record) error {
	model := toRecordModel(record)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save navigation record: %w", err)
	}
	return nil
}

func toRecordModel(record *navigation.Record) *NavigationRecordModel {
	model := &NavigationRecordModel{
		ID:               record.ID(),
		DeviceID:         record.DeviceID(),
		OriginLat:        record.Origin().Lat,
		OriginLng:        record.Origin().Lng,
		Heading:          record.Heading(),
		Transcript:       record.Transcript(),
		DetectedLanguage: record.DetectedLanguage(),
		TranslatedText:   record.TranslatedText(),
		DestinationPlace: record.DestinationPlace(),
		CreatedAt:        record.CreatedAt(),
	}
	if dest := record.Destination(); dest != nil {
		lat, lng := dest.Lat, dest.Lng
		model.DestinationLat = &lat
		model.DestinationLng = &lng
	}
	return model
}
