package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"sentinel/config"
	"sentinel/internal/domain/entity"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/domain/repository"
	"sentinel/internal/domain/service"
	"sentinel/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type membershipKey struct {
	touristID string
	zoneID    string
}

// membershipEntry serializes concurrent samples for one (tourist, zone) pair.
// Samples for different pairs never contend on the same entry lock.
type membershipEntry struct {
	mu               sync.Mutex
	inside           bool
	disagreeing      int
	lastTransitionAt time.Time
	lastSeen         time.Time
}

type trackingService struct {
	cfg       *config.TrackingConfig
	logger    *slog.Logger
	geofence  usecase.GeofenceUsecase
	eventRepo repository.ZoneEventRepository
	publisher service.EventPublisher

	mu      sync.RWMutex
	members map[membershipKey]*membershipEntry
}

// TrackingParams holds dependencies for the tracking service, injected by Fx.
type TrackingParams struct {
	fx.In
	fx.Lifecycle

	Config    *config.Config
	Logger    *slog.Logger
	Geofence  usecase.GeofenceUsecase
	EventRepo repository.ZoneEventRepository
	Publisher service.EventPublisher
}

// NewTrackingService creates the zone-transition tracker and starts its
// eviction janitor under the Fx lifecycle.
func NewTrackingService(params TrackingParams) usecase.TrackingUsecase {
	svc := newTrackingService(params.Config.Tracking, params.Logger, params.Geofence, params.EventRepo, params.Publisher)

	janitorCtx, cancelJanitor := context.WithCancel(context.Background())
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go svc.runJanitor(janitorCtx)

			return nil
		},
		OnStop: func(context.Context) error {
			cancelJanitor()

			return nil
		},
	})

	return svc
}

func newTrackingService(
	cfg *config.TrackingConfig,
	logger *slog.Logger,
	geofence usecase.GeofenceUsecase,
	eventRepo repository.ZoneEventRepository,
	publisher service.EventPublisher,
) *trackingService {
	if cfg == nil {
		cfg = &config.TrackingConfig{
			DebounceThreshold: config.DefaultDebounceThreshold,
			EvictionWindow:    config.DefaultEvictionWindow,
			JanitorInterval:   time.Minute,
		}
	}

	return &trackingService{
		cfg:       cfg,
		logger:    logger,
		geofence:  geofence,
		eventRepo: eventRepo,
		publisher: publisher,
		members:   make(map[membershipKey]*membershipEntry),
	}
}

// IngestSample evaluates one position sample against the current registry
// snapshot and applies the debounced state machine for every active zone.
func (s *trackingService) IngestSample(ctx context.Context, input *usecase.PositionInput) ([]*entity.ZoneTransitionEvent, error) {
	sample, err := s.validateSample(input)
	if err != nil {
		return nil, err
	}

	snapshot := s.geofence.Snapshot()
	containments := s.geofence.Evaluate(sample, snapshot)

	var events []*entity.ZoneTransitionEvent
	for _, containment := range containments {
		if event := s.applySample(sample, containment); event != nil {
			events = append(events, event)
		}
	}

	for _, event := range events {
		s.recordEvent(ctx, event)
	}

	return events, nil
}

// Membership returns the tracked state for one tourist, ordered by zone id.
func (s *trackingService) Membership(touristID string) []*entity.ZoneMembership {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var states []*entity.ZoneMembership
	for key, entry := range s.members {
		if key.touristID != touristID {
			continue
		}

		entry.mu.Lock()
		states = append(states, &entity.ZoneMembership{
			TouristID:              key.touristID,
			ZoneID:                 key.zoneID,
			CurrentlyInside:        entry.inside,
			LastTransitionAt:       entry.lastTransitionAt,
			ConsecutiveDisagreeing: entry.disagreeing,
		})
		entry.mu.Unlock()
	}

	sort.Slice(states, func(i, j int) bool { return states[i].ZoneID < states[j].ZoneID })

	return states
}

// applySample runs the per-(tourist, zone) state machine for one containment
// result and returns the confirmed transition event, if any.
func (s *trackingService) applySample(sample *entity.PositionSample, containment entity.ZoneContainment) *entity.ZoneTransitionEvent {
	key := membershipKey{touristID: sample.TouristID, zoneID: containment.ZoneID}

	entry, created := s.getOrCreateEntry(key, containment.Inside)
	if created {
		// The first sample establishes the initial state directly; only
		// transitions are events.
		return nil
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.lastSeen = time.Now()

	if containment.Inside == entry.inside {
		// Agreement resets any pending opposing streak.
		entry.disagreeing = 0

		return nil
	}

	entry.disagreeing++
	if entry.disagreeing < s.cfg.DebounceThreshold {
		return nil
	}

	entry.inside = containment.Inside
	entry.disagreeing = 0
	entry.lastTransitionAt = sample.CapturedAt

	transition := entity.TransitionExited
	if containment.Inside {
		transition = entity.TransitionEntered
	}

	return &entity.ZoneTransitionEvent{
		ID:         uuid.New(),
		TouristID:  sample.TouristID,
		ZoneID:     containment.ZoneID,
		ZoneName:   containment.ZoneName,
		ZoneType:   containment.ZoneType,
		Transition: transition,
		Severity:   transitionSeverity(transition, containment.ZoneType),
		Latitude:   sample.Latitude,
		Longitude:  sample.Longitude,
		OccurredAt: sample.CapturedAt,
		RecordedAt: time.Now(),
	}
}

func (s *trackingService) getOrCreateEntry(key membershipKey, initialInside bool) (*membershipEntry, bool) {
	s.mu.RLock()
	entry, ok := s.members[key]
	s.mu.RUnlock()
	if ok {
		return entry, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok = s.members[key]; ok {
		return entry, false
	}

	entry = &membershipEntry{
		inside:   initialInside,
		lastSeen: time.Now(),
	}
	s.members[key] = entry

	return entry, true
}

// recordEvent appends the event to the durable log and publishes it to the
// monitoring pipeline. Neither failure invalidates the in-memory transition;
// the state machine has already advanced and re-raising would desynchronize it.
func (s *trackingService) recordEvent(ctx context.Context, event *entity.ZoneTransitionEvent) {
	if err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		s.logger.Error("Failed to persist zone transition event",
			slog.String("event_id", event.ID.String()),
			slog.String("tourist_id", event.TouristID),
			slog.String("zone_id", event.ZoneID),
			slog.Any("error", err),
		)
	}

	monitorEvent := &service.MonitorEvent{
		EventID:           event.ID.String(),
		Kind:              service.EventKindZoneTransition,
		TouristID:         event.TouristID,
		Severity:          string(event.Severity),
		ZoneID:            event.ZoneID,
		Transition:        string(event.Transition),
		LocationAvailable: true,
		Latitude:          event.Latitude,
		Longitude:         event.Longitude,
		OccurredAt:        event.OccurredAt.UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishMonitorEvent(ctx, monitorEvent); err != nil {
		s.logger.Error("Failed to publish zone transition event",
			slog.String("event_id", event.ID.String()),
			slog.Any("error", err),
		)
	}
}

func (s *trackingService) validateSample(input *usecase.PositionInput) (*entity.PositionSample, error) {
	if input == nil {
		return nil, domainerrors.ErrSampleValidation.WithDetails("missing sample")
	}

	var faults []string
	if strings.TrimSpace(input.TouristID) == "" {
		faults = append(faults, "missing tourist_id")
	}
	if !validLatitude(input.Latitude) {
		faults = append(faults, "latitude out of range")
	}
	if !validLongitude(input.Longitude) {
		faults = append(faults, "longitude out of range")
	}

	capturedAt := time.Now()
	if input.CapturedAt != "" {
		parsed, err := time.Parse(time.RFC3339, input.CapturedAt)
		if err != nil {
			faults = append(faults, "captured_at is not RFC 3339")
		} else {
			capturedAt = parsed
		}
	}

	if len(faults) > 0 {
		return nil, domainerrors.ErrSampleValidation.WithDetails(strings.Join(faults, ", "))
	}

	return &entity.PositionSample{
		TouristID:      input.TouristID,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		AccuracyMeters: input.AccuracyMeters,
		CapturedAt:     capturedAt,
	}, nil
}

// runJanitor periodically evicts membership state for tourists that have
// stopped reporting, bounding memory growth.
func (s *trackingService) runJanitor(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.JanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evicted := s.evictStale(time.Now().Add(-s.cfg.EvictionWindow))
			if evicted > 0 {
				s.logger.Debug("Evicted stale zone membership state", slog.Int("entries", evicted))
			}
		}
	}
}

func (s *trackingService) evictStale(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for key, entry := range s.members {
		entry.mu.Lock()
		stale := entry.lastSeen.Before(cutoff)
		entry.mu.Unlock()

		if stale {
			delete(s.members, key)
			evicted++
		}
	}

	return evicted
}

func transitionSeverity(transition entity.TransitionType, zoneType entity.ZoneType) entity.EventSeverity {
	if transition == entity.TransitionEntered &&
		(zoneType == entity.ZoneTypeRestricted || zoneType == entity.ZoneTypeEmergency) {
		return entity.SeverityHigh
	}

	return entity.SeverityNormal
}
