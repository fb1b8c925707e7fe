package model

import (
	"time"

	"github.com/google/uuid"
)

// EventDeliveryLogModel is the GORM-specific struct for the
// 'event_delivery_logs' table. The monitoring worker appends one row per
// processed push message.
type EventDeliveryLogModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	EventID      string    `gorm:"type:text;not null;index"`
	EventKind    string    `gorm:"type:text;not null"`
	TouristID    string    `gorm:"type:text;not null;index"`
	Status       string    `gorm:"type:text;not null"`
	ErrorMessage string    `gorm:"type:text"`
	ProcessedAt  time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (EventDeliveryLogModel) TableName() string {
	return "event_delivery_logs"
}
