package model

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyAlertModel is the GORM-specific struct for the 'emergency_alerts'
// table. One row per panic trigger; location and capture columns are written
// once and never updated.
type EmergencyAlertModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key"`
	TouristID         string    `gorm:"type:text;not null;index"`
	LocationAvailable bool      `gorm:"not null;default:false"`
	Latitude          float64   `gorm:"type:decimal(10,8)"`
	Longitude         float64   `gorm:"type:decimal(11,8)"`
	CapturedAt        time.Time `gorm:"not null"`
	ReceivedAt        time.Time `gorm:"not null;index:idx_emergency_alerts_received_at,sort:desc"`
	Status            string    `gorm:"type:text;not null;default:'active'"`
	StorageLocator    string    `gorm:"type:text;not null"`
}

// TableName explicitly sets the table name for GORM.
func (EmergencyAlertModel) TableName() string {
	return "emergency_alerts"
}
