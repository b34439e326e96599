package models

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;index;not null" json:"user_id"`
	RequestID *uuid.UUID `gorm:"type:uuid;index" json:"request_id"`

	Kind  string `gorm:"size:40;not null" json:"kind"`
	Title string `gorm:"size:120" json:"title"`
	Body  string `gorm:"size:500" json:"body"`

	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `json:"created_at"`
}
