package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"sentinel/config"
	"sentinel/internal/domain/entity"
	"sentinel/internal/domain/repository"
	"sentinel/internal/domain/service"

	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTrackingConfig() *config.TrackingConfig {
	return &config.TrackingConfig{
		DebounceThreshold: config.DefaultDebounceThreshold,
		EvictionWindow:    config.DefaultEvictionWindow,
		JanitorInterval:   config.DefaultEvictionWindow,
	}
}

// stubAlertRepository is an in-memory AlertRepository for service tests.
type stubAlertRepository struct {
	mu        sync.Mutex
	alerts    map[uuid.UUID]*entity.EmergencyAlert
	order     []uuid.UUID
	createErr error
	listErr   error
}

func newStubAlertRepository() *stubAlertRepository {
	return &stubAlertRepository{alerts: make(map[uuid.UUID]*entity.EmergencyAlert)}
}

func (r *stubAlertRepository) CreateAlert(_ context.Context, alert *entity.EmergencyAlert) error {
	if r.createErr != nil {
		return r.createErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *alert
	r.alerts[alert.ID] = &saved
	r.order = append(r.order, alert.ID)

	return nil
}

func (r *stubAlertRepository) FindAlertByID(_ context.Context, id uuid.UUID) (*entity.EmergencyAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, ok := r.alerts[id]
	if !ok {
		return nil, repository.ErrAlertNotFound
	}
	found := *alert

	return &found, nil
}

func (r *stubAlertRepository) ListRecentAlerts(_ context.Context, limit int, filter repository.AlertFilter) ([]*entity.EmergencyAlert, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.EmergencyAlert
	for i := len(r.order) - 1; i >= 0 && len(out) < limit; i-- {
		alert := r.alerts[r.order[i]]
		if filter.TouristID != "" && alert.TouristID != filter.TouristID {
			continue
		}
		found := *alert
		out = append(out, &found)
	}

	return out, nil
}

func (r *stubAlertRepository) UpdateAlertStatus(_ context.Context, id uuid.UUID, status entity.AlertStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	alert, ok := r.alerts[id]
	if !ok {
		return repository.ErrAlertNotFound
	}
	alert.Status = status

	return nil
}

// stubZoneEventRepository records appended transition events.
type stubZoneEventRepository struct {
	mu        sync.Mutex
	events    []*entity.ZoneTransitionEvent
	createErr error
}

func (r *stubZoneEventRepository) CreateEvent(_ context.Context, event *entity.ZoneTransitionEvent) error {
	if r.createErr != nil {
		return r.createErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *event
	r.events = append(r.events, &saved)

	return nil
}

func (r *stubZoneEventRepository) ListRecentEvents(_ context.Context, limit int, filter repository.ZoneEventFilter) ([]*entity.ZoneTransitionEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entity.ZoneTransitionEvent
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		event := r.events[i]
		if filter.TouristID != "" && event.TouristID != filter.TouristID {
			continue
		}
		found := *event
		out = append(out, &found)
	}

	return out, nil
}

// stubPublisher records published monitor events.
type stubPublisher struct {
	mu         sync.Mutex
	events     []*service.MonitorEvent
	publishErr error
}

func (p *stubPublisher) PublishMonitorEvent(_ context.Context, event *service.MonitorEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	saved := *event
	p.events = append(p.events, &saved)

	return nil
}

func (p *stubPublisher) Close() error {
	return nil
}

func (p *stubPublisher) published() []*service.MonitorEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*service.MonitorEvent, len(p.events))
	copy(out, p.events)

	return out
}
