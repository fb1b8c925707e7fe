// Package impl contains the concrete implementations of the use case layer.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"sentinel/config"
	"sentinel/internal/domain/entity"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/usecase"
)

// earthRadiusMeters is the mean Earth radius used for great-circle distance.
const earthRadiusMeters = 6371000.0

type geofenceService struct {
	logger   *slog.Logger
	snapshot atomic.Pointer[entity.RegistrySnapshot]
	version  atomic.Int64
}

// NewGeofenceService creates the zone registry, seeded from configuration.
// A malformed seed set fails startup rather than publishing a partial registry.
func NewGeofenceService(cfg *config.Config, logger *slog.Logger) (usecase.GeofenceUsecase, error) {
	svc := &geofenceService{logger: logger}
	svc.snapshot.Store(&entity.RegistrySnapshot{Version: 0, LoadedAt: time.Now(), Zones: nil})

	if cfg.Geofence != nil && len(cfg.Geofence.Zones) > 0 {
		seed := make([]usecase.ZoneInput, 0, len(cfg.Geofence.Zones))
		for _, z := range cfg.Geofence.Zones {
			seed = append(seed, usecase.ZoneInput{
				ID:           z.ID,
				Name:         z.Name,
				Latitude:     z.Latitude,
				Longitude:    z.Longitude,
				RadiusMeters: z.RadiusMeters,
				Type:         z.Type,
				IsActive:     z.IsActive,
			})
		}

		if _, err := svc.LoadZones(context.Background(), seed); err != nil {
			return nil, err
		}

		logger.Info("Geofence registry seeded from config", slog.Int("zones", len(seed)))
	}

	return svc, nil
}

// LoadZones validates the full zone set and atomically replaces the snapshot.
// No partial registry is ever published: one invalid zone fails the whole load
// and the error lists every offending zone.
func (s *geofenceService) LoadZones(_ context.Context, zones []usecase.ZoneInput) (*entity.RegistrySnapshot, error) {
	validated := make([]entity.GeofenceZone, 0, len(zones))
	seen := make(map[string]struct{}, len(zones))

	var problems []string
	for i, z := range zones {
		if faults := validateZone(z); len(faults) > 0 {
			problems = append(problems, fmt.Sprintf("zone[%d] %q: %s", i, z.ID, strings.Join(faults, ", ")))

			continue
		}
		if _, dup := seen[z.ID]; dup {
			problems = append(problems, fmt.Sprintf("zone[%d] %q: duplicate id", i, z.ID))

			continue
		}
		seen[z.ID] = struct{}{}

		validated = append(validated, entity.GeofenceZone{
			ID:           z.ID,
			Name:         z.Name,
			Latitude:     z.Latitude,
			Longitude:    z.Longitude,
			RadiusMeters: z.RadiusMeters,
			Type:         entity.ZoneType(z.Type),
			IsActive:     z.IsActive,
		})
	}

	if len(problems) > 0 {
		return nil, domainerrors.ErrZoneValidation.WithDetails(strings.Join(problems, "; "))
	}

	next := &entity.RegistrySnapshot{
		Version:  s.version.Add(1),
		LoadedAt: time.Now(),
		Zones:    validated,
	}
	s.snapshot.Store(next)

	s.logger.Info("Geofence registry reloaded",
		slog.Int64("version", next.Version),
		slog.Int("zones", len(next.Zones)),
	)

	return next, nil
}

// Snapshot returns the currently published snapshot. The returned value is
// immutable; a concurrent reload swaps the pointer, never its contents.
func (s *geofenceService) Snapshot() *entity.RegistrySnapshot {
	return s.snapshot.Load()
}

// Evaluate computes containment of one position against every active zone of
// the snapshot, in the snapshot's zone order. A distance exactly equal to the
// radius counts as inside (closed disk).
func (s *geofenceService) Evaluate(sample *entity.PositionSample, snapshot *entity.RegistrySnapshot) []entity.ZoneContainment {
	if snapshot == nil || len(snapshot.Zones) == 0 {
		return nil
	}

	results := make([]entity.ZoneContainment, 0, len(snapshot.Zones))
	for _, zone := range snapshot.Zones {
		if !zone.IsActive {
			// Inactive zones are absent from the result, not reported as outside.
			continue
		}

		dist := haversineMeters(sample.Latitude, sample.Longitude, zone.Latitude, zone.Longitude)
		results = append(results, entity.ZoneContainment{
			ZoneID:                   zone.ID,
			ZoneName:                 zone.Name,
			ZoneType:                 zone.Type,
			Inside:                   dist <= zone.RadiusMeters,
			DistanceToBoundaryMeters: zone.RadiusMeters - dist,
		})
	}

	return results
}

func validateZone(z usecase.ZoneInput) []string {
	var faults []string
	if strings.TrimSpace(z.ID) == "" {
		faults = append(faults, "missing id")
	}
	if !validLatitude(z.Latitude) {
		faults = append(faults, "latitude out of range")
	}
	if !validLongitude(z.Longitude) {
		faults = append(faults, "longitude out of range")
	}
	if math.IsNaN(z.RadiusMeters) || z.RadiusMeters <= 0 {
		faults = append(faults, "radius must be positive")
	}
	if !entity.ZoneType(z.Type).IsValid() {
		faults = append(faults, fmt.Sprintf("unknown type %q", z.Type))
	}

	return faults
}

func validLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

func validLongitude(lon float64) bool {
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}

// haversineMeters returns the great-circle distance between two coordinates.
func haversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
