package entity

import (
	"time"

	"github.com/google/uuid"
)

// Delivery statuses recorded by the monitoring worker.
const (
	DeliveryStatusProcessed = "processed"
	DeliveryStatusFailed    = "failed"
)

// EventDeliveryLog records the monitoring worker's handling of one pushed
// monitor event.
type EventDeliveryLog struct {
	ID           uuid.UUID `json:"id"`
	EventID      string    `json:"event_id"`   // Source event identifier (alert id or zone event id).
	EventKind    string    `json:"event_kind"` // "panic_alert" or "zone_transition".
	TouristID    string    `json:"tourist_id"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	ProcessedAt  time.Time `json:"processed_at"`
}
