package servicerequest

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

// Os dois casos abaixo são ganchos de confirmação de pagamento: o processador
// de pagamentos fica fora deste serviço e só um administrador os chama.

// ======================================================
// CONFIRM DEPOSIT
// ======================================================

type ConfirmDeposit struct {
	base
}

func NewConfirmDeposit(d Deps) *ConfirmDeposit {
	return &ConfirmDeposit{base: newBase(d)}
}

func (uc *ConfirmDeposit) Execute(
	ctx context.Context,
	a actor.Actor,
	requestID uuid.UUID,
) (*models.ServiceRequest, error) {

	if !a.IsAdmin() {
		return nil, httperr.ErrBusiness("forbidden")
	}

	req, err := uc.load(ctx, a, requestID)
	if err != nil {
		return nil, err
	}

	pin, err := domain.GeneratePin()
	if err != nil {
		return nil, err
	}

	update, err := domain.ConfirmDeposit(req, uc.now(), pin)
	if err != nil {
		return nil, err
	}

	updated, err := uc.commit(ctx, update)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notification.KindDepositConfirmed, updated.ClientID, updated)
	uc.notify(ctx, notification.KindDepositConfirmed, updated.ProviderID, updated)
	uc.audit(a, "deposit_confirmed", updated, nil)

	return updated, nil
}

// ======================================================
// SETTLE
// ======================================================

type SettleServiceRequest struct {
	base
}

func NewSettleServiceRequest(d Deps) *SettleServiceRequest {
	return &SettleServiceRequest{base: newBase(d)}
}

func (uc *SettleServiceRequest) Execute(
	ctx context.Context,
	a actor.Actor,
	requestID uuid.UUID,
) (*models.ServiceRequest, error) {

	if !a.IsAdmin() {
		return nil, httperr.ErrBusiness("forbidden")
	}

	req, err := uc.load(ctx, a, requestID)
	if err != nil {
		return nil, err
	}

	update, err := domain.Settle(req, uc.now())
	if err != nil {
		return nil, err
	}

	updated, err := uc.commit(ctx, update)
	if err != nil {
		return nil, err
	}

	uc.audit(a, "request_settled", updated, map[string]any{
		"amount_total": updated.AmountTotal,
	})

	return updated, nil
}
