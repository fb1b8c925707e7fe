package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"sentinel/config"
	"sentinel/internal/domain/entity"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/domain/repository"
	"sentinel/internal/domain/service"
	"sentinel/internal/errors"
	"sentinel/internal/usecase"

	"github.com/google/uuid"
)

type alertService struct {
	cfg       *config.AlertConfig
	logger    *slog.Logger
	alertRepo repository.AlertRepository
	publisher service.EventPublisher
}

// NewAlertService creates the emergency alert dispatcher.
func NewAlertService(
	cfg *config.Config,
	logger *slog.Logger,
	alertRepo repository.AlertRepository,
	publisher service.EventPublisher,
) usecase.AlertUsecase {
	alertCfg := cfg.Alert
	if alertCfg == nil {
		alertCfg = &config.AlertConfig{DefaultListLimit: 20, MaxListLimit: 100}
	}

	return &alertService{
		cfg:       alertCfg,
		logger:    logger,
		alertRepo: alertRepo,
		publisher: publisher,
	}
}

// DispatchPanic captures and durably stores a panic-triggered alert. A panic
// trigger never fails solely because the device had no location fix; the
// record then carries an explicit "unavailable" marker instead of a
// fabricated coordinate.
func (s *alertService) DispatchPanic(ctx context.Context, input *usecase.PanicInput) (*usecase.DispatchReceipt, error) {
	if input == nil || strings.TrimSpace(input.TouristID) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("missing tourist identifier")
	}

	alert := &entity.EmergencyAlert{
		ID:         uuid.New(),
		TouristID:  input.TouristID,
		CapturedAt: time.Now(),
		ReceivedAt: time.Now(),
		Status:     entity.AlertStatusActive,
	}
	alert.StorageLocator = "alerts/" + alert.ID.String()

	if input.CapturedAt != "" {
		capturedAt, err := time.Parse(time.RFC3339, input.CapturedAt)
		if err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("captured_at is not RFC 3339")
		}
		alert.CapturedAt = capturedAt
	}

	if input.Location != nil {
		if !validLatitude(input.Location.Latitude) || !validLongitude(input.Location.Longitude) {
			return nil, domainerrors.ErrValidationFailed.WithDetails("reported location is out of range")
		}
		alert.LocationAvailable = true
		alert.Latitude = input.Location.Latitude
		alert.Longitude = input.Location.Longitude
	}

	// The durable write must survive a client disconnect: once dispatch has
	// begun, cancelling it could silently lose a safety-critical alert.
	writeCtx := context.WithoutCancel(ctx)
	if err := s.alertRepo.CreateAlert(writeCtx, alert); err != nil {
		s.logger.Error("Failed to persist emergency alert",
			slog.String("tourist_id", alert.TouristID),
			slog.Any("error", err),
		)

		return nil, err
	}

	s.publishAlert(writeCtx, alert)

	return &usecase.DispatchReceipt{
		AlertID:           alert.ID,
		StorageLocator:    alert.StorageLocator,
		LocationAvailable: alert.LocationAvailable,
		Latitude:          alert.Latitude,
		Longitude:         alert.Longitude,
	}, nil
}

// ListRecent retrieves stored alerts most recent first.
func (s *alertService) ListRecent(ctx context.Context, limit int, touristID string) ([]*entity.EmergencyAlert, error) {
	if limit <= 0 {
		limit = s.cfg.DefaultListLimit
	}
	if limit > s.cfg.MaxListLimit {
		limit = s.cfg.MaxListLimit
	}

	alerts, err := s.alertRepo.ListRecentAlerts(ctx, limit, repository.AlertFilter{TouristID: touristID})
	if err != nil {
		return nil, err
	}

	return alerts, nil
}

// UpdateStatus acknowledges or resolves an alert. Location and capture
// fields stay immutable.
func (s *alertService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.EmergencyAlert, error) {
	next := entity.AlertStatus(status)
	if next != entity.AlertStatusAcknowledged && next != entity.AlertStatusResolved {
		return nil, domainerrors.ErrInvalidAlertStatus.WithDetails("status must be acknowledged or resolved")
	}

	if err := s.alertRepo.UpdateAlertStatus(ctx, id, next); err != nil {
		if errors.Is(err, repository.ErrAlertNotFound) {
			return nil, domainerrors.ErrAlertNotFound
		}

		return nil, err
	}

	alert, err := s.alertRepo.FindAlertByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return alert, nil
}

// publishAlert forwards the stored alert to the monitoring pipeline. The
// alert is already durable; publish failure is logged, not surfaced.
func (s *alertService) publishAlert(ctx context.Context, alert *entity.EmergencyAlert) {
	event := &service.MonitorEvent{
		EventID:           alert.ID.String(),
		Kind:              service.EventKindPanicAlert,
		TouristID:         alert.TouristID,
		Severity:          string(entity.SeverityHigh),
		LocationAvailable: alert.LocationAvailable,
		Latitude:          alert.Latitude,
		Longitude:         alert.Longitude,
		OccurredAt:        alert.ReceivedAt.UTC().Format(time.RFC3339),
	}

	if err := s.publisher.PublishMonitorEvent(ctx, event); err != nil {
		s.logger.Error("Failed to publish panic alert event",
			slog.String("alert_id", alert.ID.String()),
			slog.Any("error", err),
		)
	}
}
