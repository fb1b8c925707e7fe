// Package usecase defines the application use case interfaces.
package usecase

import (
	"context"

	"sentinel/internal/domain/entity"
)

// ZoneInput is a zone definition submitted to a registry load.
type ZoneInput struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	Type         string  `json:"type"`
	IsActive     bool    `json:"is_active"`
}

// GeofenceUsecase manages the safety-zone registry and evaluates positions
// against it.
type GeofenceUsecase interface {
	// LoadZones validates the full zone set and atomically replaces the
	// registry snapshot. If any zone is invalid the whole load fails with a
	// validation error listing every offending zone; the previous snapshot
	// stays published.
	LoadZones(ctx context.Context, zones []ZoneInput) (*entity.RegistrySnapshot, error)

	// Snapshot returns the currently published registry snapshot.
	Snapshot() *entity.RegistrySnapshot

	// Evaluate computes containment of a position against every active zone
	// of the given snapshot, in the snapshot's zone order.
	Evaluate(sample *entity.PositionSample, snapshot *entity.RegistrySnapshot) []entity.ZoneContainment
}
