package dto

import (
	"time"

	"github.com/google/uuid"
)

// ServiceRequestView é a solicitação como o front-end a consome, já com as
// flags derivadas das regras de data.
type ServiceRequestView struct {
	ID              uuid.UUID `json:"id"`
	ClientID        uuid.UUID `json:"client_id"`
	ProviderID      uuid.UUID `json:"provider_id"`
	ServiceDatetime time.Time `json:"service_datetime"`
	ServiceDate     string    `json:"service_date"`
	Status          string    `json:"status"`
	StatusLabel     string    `json:"status_label"`
	AmountTotal     float64   `json:"amount_total"`
	Notes           string    `json:"notes"`

	// só para o cliente, que apresenta o código ao fornecedor
	CompletionPin  *string    `json:"completion_pin,omitempty"`
	PinValidatedAt *time.Time `json:"pin_validated_at"`

	RespondBy           time.Time `json:"respond_by"`
	ResponseWindowHours int       `json:"response_window_hours"`
	Urgent              bool      `json:"urgent"`

	IsServiceDay   bool `json:"is_service_day"`
	CanValidatePin bool `json:"can_validate_pin"`
	ReminderDue    bool `json:"reminder_due"`
	CanSettle      bool `json:"can_settle"`

	CreatedAt time.Time `json:"created_at"`
}

type PinValidationResult struct {
	RequestID      uuid.UUID `json:"request_id"`
	Status         string    `json:"status"`
	PinValidatedAt time.Time `json:"pin_validated_at"`
	SettlementOpen bool      `json:"settlement_open"`
}

type ToggleResult struct {
	Date    string `json:"date"`
	Blocked bool   `json:"blocked"`
	Action  string `json:"action"`
}
