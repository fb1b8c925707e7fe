package postgres

import (
	"context"

	"sentinel/internal/domain/entity"
	domainerrors "sentinel/internal/domain/errors"
	"sentinel/internal/domain/repository"
	"sentinel/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// deliveryLogRepository implements the repository.DeliveryLogRepository interface.
type deliveryLogRepository struct {
	db *gorm.DB
}

// NewDeliveryLogRepository is the constructor for deliveryLogRepository.
func NewDeliveryLogRepository(db *gorm.DB) repository.DeliveryLogRepository {
	return &deliveryLogRepository{
		db: db,
	}
}

// CreateDeliveryLog persists a single delivery log entry.
func (repo *deliveryLogRepository) CreateDeliveryLog(ctx context.Context, log *entity.EventDeliveryLog) error {
	logM := fromDeliveryLogDomain(log)

	if err := repo.db.WithContext(ctx).Create(logM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrInternalError.WrapMessage("missing required delivery log information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create event delivery log")
	}

	return nil
}

// fromDeliveryLogDomain converts a domain EventDeliveryLog entity to a GORM EventDeliveryLogModel.
func fromDeliveryLogDomain(data *entity.EventDeliveryLog) *model.EventDeliveryLogModel {
	if data == nil {
		return nil
	}

	return &model.EventDeliveryLogModel{
		ID:           data.ID,
		EventID:      data.EventID,
		EventKind:    data.EventKind,
		TouristID:    data.TouristID,
		Status:       data.Status,
		ErrorMessage: data.ErrorMessage,
		ProcessedAt:  data.ProcessedAt,
	}
}
