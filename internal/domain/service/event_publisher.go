// Package service defines interfaces for infrastructure services consumed
// by the usecase layer.
package service

import (
	"context"
)

// Monitor event kinds.
const (
	EventKindZoneTransition = "zone_transition"
	EventKindPanicAlert     = "panic_alert"
)

// MonitorEvent is the payload published to the monitoring pipeline for both
// confirmed zone transitions and panic alerts.
type MonitorEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	EventID   string `json:"event_id"`             // Alert id or zone event id.
	Kind      string `json:"kind"`                 // EventKindZoneTransition or EventKindPanicAlert.
	TouristID string `json:"tourist_id"`
	Severity  string `json:"severity"`

	ZoneID     string `json:"zone_id,omitempty"`
	Transition string `json:"transition,omitempty"`

	// Position of the originating sample or alert. Unset when the alert
	// carried no location.
	LocationAvailable bool    `json:"location_available"`
	Latitude          float64 `json:"latitude,omitempty"`
	Longitude         float64 `json:"longitude,omitempty"`

	OccurredAt string `json:"occurred_at"` // RFC 3339.
}

// EventPublisher defines the interface for publishing monitor events to a
// message queue.
type EventPublisher interface {
	// PublishMonitorEvent publishes an event for async processing.
	PublishMonitorEvent(ctx context.Context, event *MonitorEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
