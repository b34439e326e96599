package models

import (
	"time"

	"github.com/google/uuid"
)

// CalendarBlock é um dia marcado manualmente como indisponível pelo fornecedor.
// BlockedDate guarda só a data civil (YYYY-MM-DD).
type CalendarBlock struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_provider_blocked_date" json:"provider_id"`

	BlockedDate string `gorm:"size:10;not null;uniqueIndex:idx_provider_blocked_date" json:"blocked_date"`
	Reason      string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}

func (CalendarBlock) TableName() string {
	return "calendar_blocks"
}
