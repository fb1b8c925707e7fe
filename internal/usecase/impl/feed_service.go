package impl

import (
	"context"

	"sentinel/config"
	"sentinel/internal/domain/repository"
	"sentinel/internal/usecase"
)

// feedTimestampLayout is the human-readable form shown on the dashboard,
// derived on every read and never stored.
const feedTimestampLayout = "2006-01-02 15:04:05 MST"

type feedService struct {
	cfg       *config.AlertConfig
	alertRepo repository.AlertRepository
	eventRepo repository.ZoneEventRepository
}

// NewFeedService creates the read-only monitoring feed.
func NewFeedService(
	cfg *config.Config,
	alertRepo repository.AlertRepository,
	eventRepo repository.ZoneEventRepository,
) usecase.FeedUsecase {
	alertCfg := cfg.Alert
	if alertCfg == nil {
		alertCfg = &config.AlertConfig{DefaultListLimit: 20, MaxListLimit: 100}
	}

	return &feedService{
		cfg:       alertCfg,
		alertRepo: alertRepo,
		eventRepo: eventRepo,
	}
}

// RecentAlerts formats stored alerts for the dashboard, most recent first.
func (s *feedService) RecentAlerts(ctx context.Context, limit int, touristID string) ([]*usecase.AlertFeedItem, error) {
	limit = s.boundLimit(limit)

	alerts, err := s.alertRepo.ListRecentAlerts(ctx, limit, repository.AlertFilter{TouristID: touristID})
	if err != nil {
		return nil, err
	}

	items := make([]*usecase.AlertFeedItem, 0, len(alerts))
	for _, alert := range alerts {
		items = append(items, &usecase.AlertFeedItem{
			AlertID:             alert.ID.String(),
			TouristID:           alert.TouristID,
			LocationAvailable:   alert.LocationAvailable,
			Latitude:            alert.Latitude,
			Longitude:           alert.Longitude,
			Status:              string(alert.Status),
			ReceivedAtFormatted: alert.ReceivedAt.UTC().Format(feedTimestampLayout),
		})
	}

	return items, nil
}

// RecentZoneEvents formats confirmed zone transitions for the dashboard,
// most recent first.
func (s *feedService) RecentZoneEvents(ctx context.Context, limit int, touristID string) ([]*usecase.ZoneEventFeedItem, error) {
	limit = s.boundLimit(limit)

	events, err := s.eventRepo.ListRecentEvents(ctx, limit, repository.ZoneEventFilter{TouristID: touristID})
	if err != nil {
		return nil, err
	}

	items := make([]*usecase.ZoneEventFeedItem, 0, len(events))
	for _, event := range events {
		items = append(items, &usecase.ZoneEventFeedItem{
			EventID:             event.ID.String(),
			TouristID:           event.TouristID,
			ZoneID:              event.ZoneID,
			ZoneName:            event.ZoneName,
			Transition:          string(event.Transition),
			Severity:            string(event.Severity),
			Latitude:            event.Latitude,
			Longitude:           event.Longitude,
			OccurredAtFormatted: event.OccurredAt.UTC().Format(feedTimestampLayout),
		})
	}

	return items, nil
}

func (s *feedService) boundLimit(limit int) int {
	if limit <= 0 {
		return s.cfg.DefaultListLimit
	}
	if limit > s.cfg.MaxListLimit {
		return s.cfg.MaxListLimit
	}

	return limit
}
