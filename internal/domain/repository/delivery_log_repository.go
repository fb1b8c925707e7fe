package repository

import (
	"context"

	"sentinel/internal/domain/entity"
)

// DeliveryLogRepository records the monitoring worker's handling of pushed
// events, giving the at-least-once pipeline an auditable trail.
type DeliveryLogRepository interface {
	// CreateDeliveryLog persists a single delivery log entry.
	CreateDeliveryLog(ctx context.Context, log *entity.EventDeliveryLog) error
}
