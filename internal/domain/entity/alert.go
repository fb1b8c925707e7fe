package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertStatus is the lifecycle state of an emergency alert.
type AlertStatus string

const (
	AlertStatusActive       AlertStatus = "active"
	AlertStatusAcknowledged AlertStatus = "acknowledged"
	AlertStatusResolved     AlertStatus = "resolved"
)

// IsValid reports whether the status is one of the known values.
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusActive, AlertStatusAcknowledged, AlertStatusResolved:
		return true
	}

	return false
}

// EmergencyAlert is a durable record of a panic trigger. Location and
// capture fields are immutable once written; only Status may change.
type EmergencyAlert struct {
	ID        uuid.UUID `json:"id"`         // System-generated alert identifier.
	TouristID string    `json:"tourist_id"` // Account id, or a reported contact identifier such as an email.

	// LocationAvailable distinguishes a real coordinate from an explicit
	// "unavailable" marker. A missing device fix is never replaced with a
	// fabricated coordinate.
	LocationAvailable bool    `json:"location_available"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`

	CapturedAt time.Time   `json:"captured_at"` // Client-reported trigger time.
	ReceivedAt time.Time   `json:"received_at"` // Server-observed arrival time.
	Status     AlertStatus `json:"status"`

	// StorageLocator is an opaque reference to the durable record,
	// returned to the caller for audit.
	StorageLocator string `json:"storage_locator"`
}
