// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"sentinel/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAlertNotFound is returned when an alert is not found.
var ErrAlertNotFound = errors.New("alert not found")

// AlertFilter narrows alert listing. A zero value means no filtering.
type AlertFilter struct {
	// TouristID limits results to a single tourist when non-empty.
	TouristID string
}

// AlertRepository defines the interface for emergency alert persistence.
type AlertRepository interface {
	// CreateAlert durably persists a new emergency alert. The alert's ID and
	// StorageLocator must be set by the caller; ReceivedAt is authoritative
	// once the write commits.
	CreateAlert(ctx context.Context, alert *entity.EmergencyAlert) error

	// FindAlertByID retrieves a single alert by its identifier.
	FindAlertByID(ctx context.Context, id uuid.UUID) (*entity.EmergencyAlert, error)

	// ListRecentAlerts retrieves up to limit alerts ordered by received_at
	// descending. limit must be positive.
	ListRecentAlerts(ctx context.Context, limit int, filter AlertFilter) ([]*entity.EmergencyAlert, error)

	// UpdateAlertStatus changes the lifecycle status of an existing alert.
	// Location and capture fields are never updated.
	UpdateAlertStatus(ctx context.Context, id uuid.UUID, status entity.AlertStatus) error
}
