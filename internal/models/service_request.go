package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceRequest é a contratação de um serviço de evento entre cliente e
// fornecedor. Status usa os tokens exatos esperados pelo front-end.
type ServiceRequest struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	ClientID   uuid.UUID `gorm:"type:uuid;index;not null" json:"client_id"`
	ProviderID uuid.UUID `gorm:"type:uuid;index:idx_provider_datetime;not null" json:"provider_id"`

	ServiceDatetime time.Time `gorm:"index:idx_provider_datetime;not null" json:"service_datetime"`

	Status      string  `gorm:"size:30;index;not null;default:'pendiente_aprobacion'" json:"status"`
	AmountTotal float64 `gorm:"type:numeric(12,2)" json:"amount_total"`
	Notes       string  `gorm:"size:500" json:"notes"`

	// janela de resposta calculada na criação
	RespondBy time.Time `json:"respond_by"`
	Urgent    bool      `gorm:"default:false" json:"urgent"`

	CompletionPin  *string    `gorm:"size:4" json:"-"`
	PinValidatedAt *time.Time `json:"pin_validated_at"`

	AcceptedAt    *time.Time `json:"accepted_at"`
	RejectedAt    *time.Time `json:"rejected_at"`
	DepositPaidAt *time.Time `json:"deposit_paid_at"`
	StartedAt     *time.Time `json:"started_at"`
	SettledAt     *time.Time `json:"settled_at"`
	CancelledAt   *time.Time `json:"cancelled_at"`
	CancelledBy   *string    `gorm:"size:20" json:"cancelled_by"`
	AbandonedAt   *time.Time `json:"abandoned_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}
