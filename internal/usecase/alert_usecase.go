package usecase

import (
	"context"

	"sentinel/internal/domain/entity"

	"github.com/google/uuid"
)

// PanicInput is a panic trigger as received from a tourist's device.
type PanicInput struct {
	TouristID  string         `json:"tourist_id"`
	Location   *LocationInput `json:"location,omitempty"`    // Absent when the device had no fix.
	CapturedAt string         `json:"captured_at,omitempty"` // RFC 3339; defaults to server time.
}

// LocationInput is a reported coordinate pair.
type LocationInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DispatchReceipt is returned to the caller of a successful panic dispatch.
type DispatchReceipt struct {
	AlertID           uuid.UUID `json:"alert_id"`
	StorageLocator    string    `json:"storage_locator"`
	LocationAvailable bool      `json:"location_available"`
	Latitude          float64   `json:"latitude,omitempty"`
	Longitude         float64   `json:"longitude,omitempty"`
}

// AlertUsecase captures, persists and retrieves emergency alerts.
type AlertUsecase interface {
	// DispatchPanic creates a durable emergency alert. A missing location
	// never blocks the alert; it is recorded as explicitly unavailable.
	// Persistence failure propagates to the caller: an alert that cannot be
	// retrieved afterwards must not report success.
	DispatchPanic(ctx context.Context, input *PanicInput) (*DispatchReceipt, error)

	// ListRecent retrieves up to limit alerts, most recent first, optionally
	// filtered to one tourist.
	ListRecent(ctx context.Context, limit int, touristID string) ([]*entity.EmergencyAlert, error)

	// UpdateStatus acknowledges or resolves an existing alert.
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.EmergencyAlert, error)
}
