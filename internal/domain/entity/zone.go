// Package entity contains the core business objects of the project.
package entity

import "time"

// ZoneType classifies a safety zone for monitoring purposes.
type ZoneType string

const (
	ZoneTypeSafe       ZoneType = "safe"
	ZoneTypeMonitoring ZoneType = "monitoring"
	ZoneTypeRestricted ZoneType = "restricted"
	ZoneTypeEmergency  ZoneType = "emergency"
	ZoneTypeTourist    ZoneType = "tourist"
)

// IsValid reports whether the zone type is one of the known values.
func (t ZoneType) IsValid() bool {
	switch t {
	case ZoneTypeSafe, ZoneTypeMonitoring, ZoneTypeRestricted, ZoneTypeEmergency, ZoneTypeTourist:
		return true
	}

	return false
}

// GeofenceZone is a named circular safety zone.
type GeofenceZone struct {
	ID           string   `json:"id"`            // Stable identifier, unique within the registry.
	Name         string   `json:"name"`          // Display label.
	Latitude     float64  `json:"latitude"`      // Center latitude in signed degrees.
	Longitude    float64  `json:"longitude"`     // Center longitude in signed degrees.
	RadiusMeters float64  `json:"radius_meters"` // Containment radius, always positive.
	Type         ZoneType `json:"type"`          // Zone classification.
	IsActive     bool     `json:"is_active"`     // Inactive zones are skipped by evaluation but kept for audit.
}

// RegistrySnapshot is an immutable view of the zone registry. Snapshots are
// replaced wholesale; a published snapshot is never mutated.
type RegistrySnapshot struct {
	Version  int64          `json:"version"`   // Monotonically increasing load counter.
	LoadedAt time.Time      `json:"loaded_at"` // When this snapshot was published.
	Zones    []GeofenceZone `json:"zones"`     // Zones in insertion order.
}

// ZoneContainment is the result of evaluating one position against one zone.
type ZoneContainment struct {
	ZoneID   string   `json:"zone_id"`
	ZoneName string   `json:"zone_name"`
	ZoneType ZoneType `json:"zone_type"`
	Inside   bool     `json:"inside"`

	// DistanceToBoundaryMeters is radius minus great-circle distance to the
	// zone center: positive inside, negative outside, zero on the boundary.
	DistanceToBoundaryMeters float64 `json:"distance_to_boundary_meters"`
}
