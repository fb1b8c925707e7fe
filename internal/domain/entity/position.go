package entity

import "time"

// PositionSample is a single reported tourist position. Samples are
// ephemeral: they feed evaluation and tracking and are not persisted.
type PositionSample struct {
	TouristID      string    `json:"tourist_id"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	AccuracyMeters *float64  `json:"accuracy_meters,omitempty"` // Reported GPS accuracy, when available.
	CapturedAt     time.Time `json:"captured_at"`
}
