package entity

import (
	"time"

	"github.com/google/uuid"
)

// TransitionType is the direction of a confirmed zone transition.
type TransitionType string

const (
	TransitionEntered TransitionType = "entered"
	TransitionExited  TransitionType = "exited"
)

// EventSeverity grades a zone transition for the monitoring dashboard.
type EventSeverity string

const (
	SeverityNormal EventSeverity = "normal"
	SeverityHigh   EventSeverity = "high"
)

// ZoneTransitionEvent is a confirmed enter/exit transition for one tourist
// and one zone. Events are append-only; they back the monitoring feed.
type ZoneTransitionEvent struct {
	ID         uuid.UUID      `json:"id"`
	TouristID  string         `json:"tourist_id"`
	ZoneID     string         `json:"zone_id"`
	ZoneName   string         `json:"zone_name"`
	ZoneType   ZoneType       `json:"zone_type"`
	Transition TransitionType `json:"transition"`
	Severity   EventSeverity  `json:"severity"`
	Latitude   float64        `json:"latitude"`  // Position of the confirming sample.
	Longitude  float64        `json:"longitude"` // Position of the confirming sample.
	OccurredAt time.Time      `json:"occurred_at"`
	RecordedAt time.Time      `json:"recorded_at"`
}

// ZoneMembership is the per-(tourist, zone) state held by the tracker.
type ZoneMembership struct {
	TouristID        string    `json:"tourist_id"`
	ZoneID           string    `json:"zone_id"`
	CurrentlyInside  bool      `json:"currently_inside"`
	LastTransitionAt time.Time `json:"last_transition_at"`

	// ConsecutiveDisagreeing counts successive samples that contradict the
	// current state; a transition is confirmed once it reaches the
	// configured debounce threshold.
	ConsecutiveDisagreeing int `json:"consecutive_disagreeing"`
}
