package postgres

import (
	"context"

	"sentinel/internal/domain/entity"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/domain/repository"
	"sentinel/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// zoneEventRepository implements the repository.ZoneEventRepository interface.
type zoneEventRepository struct {
	db *gorm.DB
}

// NewZoneEventRepository is the constructor for zoneEventRepository.
func NewZoneEventRepository(db *gorm.DB) repository.ZoneEventRepository {
	return &zoneEventRepository{
		db: db,
	}
}

// CreateEvent appends a confirmed zone transition to the event log.
func (repo *zoneEventRepository) CreateEvent(ctx context.Context, event *entity.ZoneTransitionEvent) error {
	eventM := fromZoneEventDomain(event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("missing required zone event information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create zone transition event")
	}

	return nil
}

// ListRecentEvents retrieves the most recent zone transitions, newest first.
func (repo *zoneEventRepository) ListRecentEvents(ctx context.Context, limit int, filter repository.ZoneEventFilter) ([]*entity.ZoneTransitionEvent, error) {
	var eventModels []*model.ZoneTransitionEventModel

	query := repo.db.WithContext(ctx).
		Order("occurred_at DESC")

	if filter.TouristID != "" {
		query = query.Where("tourist_id = ?", filter.TouristID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&eventModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent zone events")
	}

	events := make([]*entity.ZoneTransitionEvent, 0, len(eventModels))
	for _, eventM := range eventModels {
		events = append(events, toZoneEventDomain(eventM))
	}

	return events, nil
}

// --- Mapper Functions ---

// toZoneEventDomain converts a GORM ZoneTransitionEventModel to a domain ZoneTransitionEvent entity.
func toZoneEventDomain(data *model.ZoneTransitionEventModel) *entity.ZoneTransitionEvent {
	if data == nil {
		return nil
	}

	return &entity.ZoneTransitionEvent{
		ID:         data.ID,
		TouristID:  data.TouristID,
		ZoneID:     data.ZoneID,
		ZoneName:   data.ZoneName,
		ZoneType:   entity.ZoneType(data.ZoneType),
		Transition: entity.TransitionType(data.Transition),
		Severity:   entity.EventSeverity(data.Severity),
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		OccurredAt: data.OccurredAt,
		RecordedAt: data.RecordedAt,
	}
}

// fromZoneEventDomain converts a domain ZoneTransitionEvent entity to a GORM ZoneTransitionEventModel.
func fromZoneEventDomain(data *entity.ZoneTransitionEvent) *model.ZoneTransitionEventModel {
	if data == nil {
		return nil
	}

	return &model.ZoneTransitionEventModel{
		ID:         data.ID,
		TouristID:  data.TouristID,
		ZoneID:     data.ZoneID,
		ZoneName:   data.ZoneName,
		ZoneType:   string(data.ZoneType),
		Transition: string(data.Transition),
		Severity:   string(data.Severity),
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		OccurredAt: data.OccurredAt,
		RecordedAt: data.RecordedAt,
	}
}
