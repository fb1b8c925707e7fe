package model

import (
	"time"

	"github.com/google/uuid"
)

// ZoneTransitionEventModel is the GORM-specific struct for the
// 'zone_transition_events' table.
type ZoneTransitionEventModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	TouristID  string    `gorm:"type:text;not null;index"`
	ZoneID     string    `gorm:"type:text;not null;index"`
	ZoneName   string    `gorm:"type:text;not null"`
	ZoneType   string    `gorm:"type:text;not null"`
	Transition string    `gorm:"type:text;not null"`
	Severity   string    `gorm:"type:text;not null"`
	Latitude   float64   `gorm:"type:decimal(10,8);not null"`
	Longitude  float64   `gorm:"type:decimal(11,8);not null"`
	OccurredAt time.Time `gorm:"not null;index:idx_zone_transition_events_occurred_at,sort:desc"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (ZoneTransitionEventModel) TableName() string {
	return "zone_transition_events"
}
