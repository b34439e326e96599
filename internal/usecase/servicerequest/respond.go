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

// ======================================================
// ACCEPT
// ======================================================

type AcceptServiceRequest struct {
	base
}

func NewAcceptServiceRequest(d Deps) *AcceptServiceRequest {
	return &AcceptServiceRequest{base: newBase(d)}
}

func (uc *AcceptServiceRequest) Execute(
	ctx context.Context,
	a actor.Actor,
	requestID uuid.UUID,
) (*models.ServiceRequest, error) {

	req, err := uc.load(ctx, a, requestID)
	if err != nil {
		return nil, err
	}
	if !a.IsProviderOf(req) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	now := uc.now()

	// Passado o prazo, a solicitação fica para a varredura de expiração.
	if domain.Status(req.Status) == domain.StatusPendingApproval &&
		domain.ResponseOverdue(req.RespondBy, now) {
		return nil, httperr.ErrBusiness("response_expired")
	}

	update, err := domain.Accept(req, now)
	if err != nil {
		return nil, err
	}

	updated, err := uc.commit(ctx, update)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notification.KindRequestAccepted, updated.ClientID, updated)
	uc.audit(a, "request_accepted", updated, nil)

	return updated, nil
}

// ======================================================
// REJECT
// ======================================================

type RejectServiceRequest struct {
	base
}

func NewRejectServiceRequest(d Deps) *RejectServiceRequest {
	return &RejectServiceRequest{base: newBase(d)}
}

func (uc *RejectServiceRequest) Execute(
	ctx context.Context,
	a actor.Actor,
	requestID uuid.UUID,
	reason string,
) (*models.ServiceRequest, error) {

	req, err := uc.load(ctx, a, requestID)
	if err != nil {
		return nil, err
	}
	if !a.IsProviderOf(req) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	update, err := domain.Reject(req, uc.now())
	if err != nil {
		return nil, err
	}

	updated, err := uc.commit(ctx, update)
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, notification.KindRequestRejected, updated.ClientID, updated)

	var meta any
	if reason != "" {
		meta = map[string]any{"reason": reason}
	}
	uc.audit(a, "request_rejected", updated, meta)

	return updated, nil
}
