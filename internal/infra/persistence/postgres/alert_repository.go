// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"sentinel/internal/domain/entity"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/domain/repository"
	"sentinel/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// alertRepository implements the repository.AlertRepository interface.
type alertRepository struct {
	db *gorm.DB
}

// NewAlertRepository is the constructor for alertRepository.
func NewAlertRepository(db *gorm.DB) repository.AlertRepository {
	return &alertRepository{
		db: db,
	}
}

// CreateAlert durably persists a new emergency alert.
func (repo *alertRepository) CreateAlert(ctx context.Context, alert *entity.EmergencyAlert) error {
	alertM := fromAlertDomain(alert)
	alertM.ReceivedAt = time.Now().UTC()

	if err := repo.db.WithContext(ctx).Create(alertM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrAlertPersistFailed.WrapMessage("missing required alert information")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrAlertPersistFailed.WrapMessage("alert violates a storage constraint")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create emergency alert")
	}

	// The row's arrival time is authoritative once the write commits.
	alert.ReceivedAt = alertM.ReceivedAt

	return nil
}

// FindAlertByID retrieves an alert by its unique ID.
func (repo *alertRepository) FindAlertByID(ctx context.Context, id uuid.UUID) (*entity.EmergencyAlert, error) {
	var alertM model.EmergencyAlertModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&alertM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAlertNotFound
		}

		return nil, errors.Wrap(err, "failed to find alert by ID")
	}

	return toAlertDomain(&alertM), nil
}

// ListRecentAlerts retrieves the most recently received alerts, newest first.
func (repo *alertRepository) ListRecentAlerts(ctx context.Context, limit int, filter repository.AlertFilter) ([]*entity.EmergencyAlert, error) {
	var alertModels []*model.EmergencyAlertModel

	query := repo.db.WithContext(ctx).
		Order("received_at DESC")

	if filter.TouristID != "" {
		query = query.Where("tourist_id = ?", filter.TouristID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&alertModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list recent alerts")
	}

	alerts := make([]*entity.EmergencyAlert, 0, len(alertModels))
	for _, alertM := range alertModels {
		alerts = append(alerts, toAlertDomain(alertM))
	}

	return alerts, nil
}

// UpdateAlertStatus changes the lifecycle status of an existing alert.
// Location and capture columns are never touched.
func (repo *alertRepository) UpdateAlertStatus(ctx context.Context, id uuid.UUID, status entity.AlertStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.EmergencyAlertModel{}).
		Where("id = ?", id).
		Update("status", string(status))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update alert status")
	}

	if result.RowsAffected == 0 {
		return repository.ErrAlertNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toAlertDomain converts a GORM EmergencyAlertModel to a domain EmergencyAlert entity.
func toAlertDomain(data *model.EmergencyAlertModel) *entity.EmergencyAlert {
	if data == nil {
		return nil
	}

	return &entity.EmergencyAlert{
		ID:                data.ID,
		TouristID:         data.TouristID,
		LocationAvailable: data.LocationAvailable,
		Latitude:          data.Latitude,
		Longitude:         data.Longitude,
		CapturedAt:        data.CapturedAt,
		ReceivedAt:        data.ReceivedAt,
		Status:            entity.AlertStatus(data.Status),
		StorageLocator:    data.StorageLocator,
	}
}

// fromAlertDomain converts a domain EmergencyAlert entity to a GORM EmergencyAlertModel.
func fromAlertDomain(data *entity.EmergencyAlert) *model.EmergencyAlertModel {
	if data == nil {
		return nil
	}

	return &model.EmergencyAlertModel{
		ID:                data.ID,
		TouristID:         data.TouristID,
		LocationAvailable: data.LocationAvailable,
		Latitude:          data.Latitude,
		Longitude:         data.Longitude,
		CapturedAt:        data.CapturedAt,
		ReceivedAt:        data.ReceivedAt,
		Status:            string(data.Status),
		StorageLocator:    data.StorageLocator,
	}
}
