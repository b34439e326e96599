package servicerequest

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/dto"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
)

type ValidateCompletionPin struct {
	base
}

func NewValidateCompletionPin(d Deps) *ValidateCompletionPin {
	return &ValidateCompletionPin{base: newBase(d)}
}

// Execute confirma a entrega do serviço com o PIN que o cliente apresenta.
// Em qualquer recusa o estado persistido não muda; entre duas chamadas
// simultâneas com o PIN certo, só uma vence a atualização condicional.
func (uc *ValidateCompletionPin) Execute(
	ctx context.Context,
	a actor.Actor,
	requestID uuid.UUID,
	rawPin string,
) (*dto.PinValidationResult, error) {

	req, err := uc.load(ctx, a, requestID)
	if err != nil {
		return nil, err
	}
	if !a.IsProviderOf(req) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	now := uc.now()

	// --------------------------------------------------
	// Estado + dia do evento
	// --------------------------------------------------
	if err := domain.PinGate(uc.Rules, req, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Comparação
	// --------------------------------------------------
	pin := domain.NormalizePin(rawPin)
	if !domain.ValidPinFormat(pin) {
		return nil, httperr.ErrBusiness("invalid_pin_format")
	}

	if err := domain.CheckPin(req.CompletionPin, pin); err != nil {
		if httperr.IsBusiness(err, "incorrect_pin") {
			uc.Logger.Info("incorrect completion pin",
				zap.String("request_id", req.ID.String()),
				zap.String("provider_id", a.ID.String()),
			)
			uc.audit(a, "pin_rejected", req, nil)
		}
		return nil, err
	}

	update, err := domain.Deliver(req, now)
	if err != nil {
		return nil, err
	}

	updated, err := uc.commit(ctx, update)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notification.KindPinValidated, updated.ClientID, updated)
	uc.audit(a, "pin_validated", updated, nil)

	validatedAt := now
	if updated.PinValidatedAt != nil {
		validatedAt = *updated.PinValidatedAt
	}

	return &dto.PinValidationResult{
		RequestID:      updated.ID,
		Status:         updated.Status,
		PinValidatedAt: validatedAt,
		SettlementOpen: domain.CanSettle(domain.Status(updated.Status)) == nil,
	}, nil
}
