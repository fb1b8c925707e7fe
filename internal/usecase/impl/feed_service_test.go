package impl

import (
	"context"
	"testing"
	"time"

	"sentinel/config"
	"sentinel/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedService_RecentAlerts_FormatsTimestampOnRead(t *testing.T) {
	alertRepo := newStubAlertRepository()
	svc := NewFeedService(&config.Config{}, alertRepo, &stubZoneEventRepository{})
	ctx := context.Background()

	receivedAt := time.Date(2026, 8, 30, 14, 5, 9, 0, time.UTC)
	alert := &entity.EmergencyAlert{
		ID:                uuid.New(),
		TouristID:         "tourist-1",
		LocationAvailable: true,
		Latitude:          28.6562,
		Longitude:         77.2410,
		CapturedAt:        receivedAt,
		ReceivedAt:        receivedAt,
		Status:            entity.AlertStatusActive,
	}
	require.NoError(t, alertRepo.CreateAlert(ctx, alert))

	items, err := svc.RecentAlerts(ctx, 10, "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, alert.ID.String(), item.AlertID)
	assert.Equal(t, "tourist-1", item.TouristID)
	assert.True(t, item.LocationAvailable)
	assert.Equal(t, "active", item.Status)

	// The human-readable form is derived on read, never stored.
	assert.Equal(t, "2026-08-30 14:05:09 UTC", item.ReceivedAtFormatted)
}

func TestFeedService_RecentAlerts_FiltersByTourist(t *testing.T) {
	alertRepo := newStubAlertRepository()
	svc := NewFeedService(&config.Config{}, alertRepo, &stubZoneEventRepository{})
	ctx := context.Background()

	for _, touristID := range []string{"tourist-1", "tourist-2", "tourist-1"} {
		require.NoError(t, alertRepo.CreateAlert(ctx, &entity.EmergencyAlert{
			ID:        uuid.New(),
			TouristID: touristID,
			Status:    entity.AlertStatusActive,
		}))
	}

	items, err := svc.RecentAlerts(ctx, 10, "tourist-1")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFeedService_RecentZoneEvents(t *testing.T) {
	eventRepo := &stubZoneEventRepository{}
	svc := NewFeedService(&config.Config{}, newStubAlertRepository(), eventRepo)
	ctx := context.Background()

	occurredAt := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)
	event := &entity.ZoneTransitionEvent{
		ID:         uuid.New(),
		TouristID:  "tourist-1",
		ZoneID:     "zone-a",
		ZoneName:   "Zone A",
		ZoneType:   entity.ZoneTypeRestricted,
		Transition: entity.TransitionEntered,
		Severity:   entity.SeverityHigh,
		Latitude:   28.6562,
		Longitude:  77.2410,
		OccurredAt: occurredAt,
		RecordedAt: occurredAt,
	}
	require.NoError(t, eventRepo.CreateEvent(ctx, event))

	items, err := svc.RecentZoneEvents(ctx, 10, "")
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, event.ID.String(), item.EventID)
	assert.Equal(t, "zone-a", item.ZoneID)
	assert.Equal(t, "entered", item.Transition)
	assert.Equal(t, "high", item.Severity)
	assert.Equal(t, "2026-08-30 09:30:00 UTC", item.OccurredAtFormatted)
}

func TestFeedService_BoundsLimits(t *testing.T) {
	alertRepo := newStubAlertRepository()
	svc := NewFeedService(&config.Config{
		Alert: &config.AlertConfig{DefaultListLimit: 2, MaxListLimit: 3},
	}, alertRepo, &stubZoneEventRepository{})
	ctx := context.Background()

	for range 5 {
		require.NoError(t, alertRepo.CreateAlert(ctx, &entity.EmergencyAlert{
			ID:        uuid.New(),
			TouristID: "tourist-1",
			Status:    entity.AlertStatusActive,
		}))
	}

	items, err := svc.RecentAlerts(ctx, 0, "")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.RecentAlerts(ctx, 100, "")
	require.NoError(t, err)
	assert.Len(t, items, 3)
}
