package impl

import (
	"context"
	"testing"
	"time"

	"sentinel/config"
	"sentinel/internal/domain/entity"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/domain/service"
	"sentinel/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	trackedZoneLat = 28.6562
	trackedZoneLon = 77.2410

	// Well outside the 300 m test zones.
	farAwayLat = 28.7000
	farAwayLon = 77.3000
)

type trackingFixture struct {
	svc       *trackingService
	eventRepo *stubZoneEventRepository
	publisher *stubPublisher
}

func newTrackingFixture(t *testing.T, zones ...usecase.ZoneInput) *trackingFixture {
	t.Helper()

	geofence := newTestGeofenceService(t)
	if len(zones) == 0 {
		zones = []usecase.ZoneInput{
			{ID: "zone-a", Name: "Zone A", Latitude: trackedZoneLat, Longitude: trackedZoneLon, RadiusMeters: 300, Type: "monitoring", IsActive: true},
		}
	}
	_, err := geofence.LoadZones(context.Background(), zones)
	require.NoError(t, err)

	eventRepo := &stubZoneEventRepository{}
	publisher := &stubPublisher{}
	svc := newTrackingService(testTrackingConfig(), testLogger(), geofence, eventRepo, publisher)

	return &trackingFixture{svc: svc, eventRepo: eventRepo, publisher: publisher}
}

func insideSample(touristID string) *usecase.PositionInput {
	return &usecase.PositionInput{TouristID: touristID, Latitude: trackedZoneLat, Longitude: trackedZoneLon}
}

func outsideSample(touristID string) *usecase.PositionInput {
	return &usecase.PositionInput{TouristID: touristID, Latitude: farAwayLat, Longitude: farAwayLon}
}

func TestTrackingService_FirstSampleEstablishesStateWithoutEvent(t *testing.T) {
	fixture := newTrackingFixture(t)
	ctx := context.Background()

	events, err := fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)
	assert.Empty(t, events)

	states := fixture.svc.Membership("tourist-1")
	require.Len(t, states, 1)
	assert.True(t, states[0].CurrentlyInside)
	assert.Zero(t, states[0].ConsecutiveDisagreeing)
}

func TestTrackingService_DebouncedEnterConfirmsOnThreshold(t *testing.T) {
	fixture := newTrackingFixture(t)
	ctx := context.Background()

	// Establish OUTSIDE, then send inside samples. With threshold 2 the
	// first disagreeing sample is pending, the second confirms.
	_, err := fixture.svc.IngestSample(ctx, outsideSample("tourist-1"))
	require.NoError(t, err)

	events, err := fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, entity.TransitionEntered, event.Transition)
	assert.Equal(t, "zone-a", event.ZoneID)
	assert.Equal(t, "tourist-1", event.TouristID)
	assert.Equal(t, entity.SeverityNormal, event.Severity)

	states := fixture.svc.Membership("tourist-1")
	require.Len(t, states, 1)
	assert.True(t, states[0].CurrentlyInside)
	assert.Zero(t, states[0].ConsecutiveDisagreeing)
}

func TestTrackingService_AlternatingSamplesNeverTransition(t *testing.T) {
	fixture := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fixture.svc.IngestSample(ctx, outsideSample("tourist-1"))
	require.NoError(t, err)

	// GPS flapping on the boundary: in, out, in, out. Agreement resets the
	// streak each time, so the threshold is never reached.
	for range 3 {
		events, err := fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
		require.NoError(t, err)
		assert.Empty(t, events)

		events, err = fixture.svc.IngestSample(ctx, outsideSample("tourist-1"))
		require.NoError(t, err)
		assert.Empty(t, events)
	}

	assert.Empty(t, fixture.eventRepo.events)
	states := fixture.svc.Membership("tourist-1")
	require.Len(t, states, 1)
	assert.False(t, states[0].CurrentlyInside)
}

func TestTrackingService_EnteringRestrictedZoneIsHighSeverity(t *testing.T) {
	fixture := newTrackingFixture(t, usecase.ZoneInput{
		ID: "zone-danger", Name: "Danger", Latitude: trackedZoneLat, Longitude: trackedZoneLon,
		RadiusMeters: 300, Type: "restricted", IsActive: true,
	})
	ctx := context.Background()

	_, err := fixture.svc.IngestSample(ctx, outsideSample("tourist-1"))
	require.NoError(t, err)
	_, err = fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)

	events, err := fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entity.SeverityHigh, events[0].Severity)
}

func TestTrackingService_ExitingRestrictedZoneIsNormalSeverity(t *testing.T) {
	fixture := newTrackingFixture(t, usecase.ZoneInput{
		ID: "zone-danger", Name: "Danger", Latitude: trackedZoneLat, Longitude: trackedZoneLon,
		RadiusMeters: 300, Type: "restricted", IsActive: true,
	})
	ctx := context.Background()

	_, err := fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)
	_, err = fixture.svc.IngestSample(ctx, outsideSample("tourist-1"))
	require.NoError(t, err)

	events, err := fixture.svc.IngestSample(ctx, outsideSample("tourist-1"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, entity.TransitionExited, events[0].Transition)
	assert.Equal(t, entity.SeverityNormal, events[0].Severity)
}

func TestTrackingService_ConfirmedEventIsPersistedAndPublished(t *testing.T) {
	fixture := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fixture.svc.IngestSample(ctx, outsideSample("tourist-1"))
	require.NoError(t, err)
	_, err = fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)
	events, err := fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)
	require.Len(t, events, 1)

	require.Len(t, fixture.eventRepo.events, 1)
	assert.Equal(t, events[0].ID, fixture.eventRepo.events[0].ID)

	published := fixture.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, service.EventKindZoneTransition, published[0].Kind)
	assert.Equal(t, events[0].ID.String(), published[0].EventID)
	assert.True(t, published[0].LocationAvailable)
}

func TestTrackingService_PersistenceFailureDoesNotRevertState(t *testing.T) {
	fixture := newTrackingFixture(t)
	fixture.eventRepo.createErr = errors.New("db down")
	ctx := context.Background()

	_, err := fixture.svc.IngestSample(ctx, outsideSample("tourist-1"))
	require.NoError(t, err)
	_, err = fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)

	// The transition is confirmed in memory even though the log write
	// failed; the failure is logged, not raised.
	events, err := fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)
	require.Len(t, events, 1)

	states := fixture.svc.Membership("tourist-1")
	require.Len(t, states, 1)
	assert.True(t, states[0].CurrentlyInside)
}

func TestTrackingService_MalformedSampleRejectedWithoutMutation(t *testing.T) {
	fixture := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fixture.svc.IngestSample(ctx, &usecase.PositionInput{
		TouristID: "", Latitude: 999, Longitude: trackedZoneLon, CapturedAt: "not-a-timestamp",
	})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "SAMPLE_VALIDATION_FAILED", appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "missing tourist_id")
	assert.Contains(t, appErr.Details(), "latitude out of range")
	assert.Contains(t, appErr.Details(), "captured_at is not RFC 3339")

	assert.Empty(t, fixture.svc.Membership(""))
	assert.Empty(t, fixture.eventRepo.events)
}

func TestTrackingService_MembershipSortedByZoneID(t *testing.T) {
	fixture := newTrackingFixture(t,
		usecase.ZoneInput{ID: "zone-b", Name: "B", Latitude: trackedZoneLat, Longitude: trackedZoneLon, RadiusMeters: 300, Type: "safe", IsActive: true},
		usecase.ZoneInput{ID: "zone-a", Name: "A", Latitude: trackedZoneLat, Longitude: trackedZoneLon, RadiusMeters: 500, Type: "safe", IsActive: true},
	)
	ctx := context.Background()

	_, err := fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)

	states := fixture.svc.Membership("tourist-1")
	require.Len(t, states, 2)
	assert.Equal(t, "zone-a", states[0].ZoneID)
	assert.Equal(t, "zone-b", states[1].ZoneID)
}

func TestTrackingService_EvictStaleRemovesIdleEntries(t *testing.T) {
	fixture := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)
	require.Len(t, fixture.svc.Membership("tourist-1"), 1)

	// A cutoff after the last sample evicts the entry.
	evicted := fixture.svc.evictStale(time.Now().Add(time.Second))
	assert.Equal(t, 1, evicted)
	assert.Empty(t, fixture.svc.Membership("tourist-1"))
}

func TestTrackingService_EvictionResetsDebounceHistory(t *testing.T) {
	fixture := newTrackingFixture(t)
	ctx := context.Background()

	_, err := fixture.svc.IngestSample(ctx, outsideSample("tourist-1"))
	require.NoError(t, err)
	_, err = fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)

	fixture.svc.evictStale(time.Now().Add(time.Second))

	// After eviction the next sample re-establishes initial state; the
	// pending streak from before is gone.
	events, err := fixture.svc.IngestSample(ctx, insideSample("tourist-1"))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestNewTrackingServiceDefaultsConfig(t *testing.T) {
	geofence := newTestGeofenceService(t)
	svc := newTrackingService(nil, testLogger(), geofence, &stubZoneEventRepository{}, &stubPublisher{})

	assert.Equal(t, config.DefaultDebounceThreshold, svc.cfg.DebounceThreshold)
	assert.Equal(t, config.DefaultEvictionWindow, svc.cfg.EvictionWindow)
}
