package usecase

import "context"

// AlertFeedItem is an alert formatted for the monitoring dashboard.
type AlertFeedItem struct {
	AlertID           string  `json:"alert_id"`
	TouristID         string  `json:"tourist_id"`
	LocationAvailable bool    `json:"location_available"`
	Latitude          float64 `json:"latitude,omitempty"`
	Longitude         float64 `json:"longitude,omitempty"`
	Status            string  `json:"status"`

	// ReceivedAtFormatted is derived from the stored timestamp on every
	// read; it is presentation only and never persisted.
	ReceivedAtFormatted string `json:"received_at_formatted"`
}

// ZoneEventFeedItem is a zone transition formatted for the dashboard.
type ZoneEventFeedItem struct {
	EventID             string  `json:"event_id"`
	TouristID           string  `json:"tourist_id"`
	ZoneID              string  `json:"zone_id"`
	ZoneName            string  `json:"zone_name"`
	Transition          string  `json:"transition"`
	Severity            string  `json:"severity"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	OccurredAtFormatted string  `json:"occurred_at_formatted"`
}

// FeedUsecase is the read-only formatting layer consumed by the monitoring
// dashboard. It never mutates underlying state.
type FeedUsecase interface {
	// RecentAlerts returns up to limit formatted alerts, most recent first.
	RecentAlerts(ctx context.Context, limit int, touristID string) ([]*AlertFeedItem, error)

	// RecentZoneEvents returns up to limit formatted zone transitions, most
	// recent first, optionally filtered to one tourist.
	RecentZoneEvents(ctx context.Context, limit int, touristID string) ([]*ZoneEventFeedItem, error)
}
