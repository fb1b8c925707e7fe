package repository

import (
	"context"

	"sentinel/internal/domain/entity"
)

// ZoneEventFilter narrows zone event listing. A zero value means no filtering.
type ZoneEventFilter struct {
	// TouristID limits results to a single tourist when non-empty.
	TouristID string
}

// ZoneEventRepository defines the interface for the zone-transition event log.
type ZoneEventRepository interface {
	// CreateEvent appends a confirmed zone transition to the event log.
	CreateEvent(ctx context.Context, event *entity.ZoneTransitionEvent) error

	// ListRecentEvents retrieves up to limit events ordered by occurred_at
	// descending. limit must be positive.
	ListRecentEvents(ctx context.Context, limit int, filter ZoneEventFilter) ([]*entity.ZoneTransitionEvent, error)
}
