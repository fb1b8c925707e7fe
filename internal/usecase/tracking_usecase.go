package usecase

import (
	"context"

	"sentinel/internal/domain/entity"
)

// PositionInput is a raw position sample submitted for ingestion.
type PositionInput struct {
	TouristID      string   `json:"tourist_id"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	AccuracyMeters *float64 `json:"accuracy_meters,omitempty"`
	CapturedAt     string   `json:"captured_at,omitempty"` // RFC 3339; defaults to server time.
}

// TrackingUsecase ingests position samples and maintains per-(tourist, zone)
// membership state, emitting debounced zone-transition events.
type TrackingUsecase interface {
	// IngestSample evaluates one sample against the current registry
	// snapshot and returns the zone transitions it confirmed, if any.
	// A malformed sample is rejected without mutating state.
	IngestSample(ctx context.Context, input *PositionInput) ([]*entity.ZoneTransitionEvent, error)

	// Membership returns the tracked membership state for a tourist, empty
	// when the tourist has no recorded state.
	Membership(touristID string) []*entity.ZoneMembership
}
