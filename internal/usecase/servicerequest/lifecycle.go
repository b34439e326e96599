package servicerequest

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

// ======================================================
// START
// ======================================================

type StartService struct {
	base
}

func NewStartService(d Deps) *StartService {
	return &StartService{base: newBase(d)}
}

func (uc *StartService) Execute(
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

	update, err := domain.Start(req, now)
	if err != nil {
		return nil, err
	}
	if !uc.Rules.IsServiceDay(req.ServiceDatetime, now) {
		return nil, httperr.ErrBusiness("not_service_day")
	}

	updated, err := uc.commit(ctx, update)
	if err != nil {
		return nil, err
	}

	uc.audit(a, "service_started", updated, nil)
	return updated, nil
}

// ======================================================
// CANCEL
// ======================================================

type CancelServiceRequest struct {
	base
}

func NewCancelServiceRequest(d Deps) *CancelServiceRequest {
	return &CancelServiceRequest{base: newBase(d)}
}

func (uc *CancelServiceRequest) Execute(
	ctx context.Context,
	a actor.Actor,
	requestID uuid.UUID,
	reason string,
) (*models.ServiceRequest, error) {

	req, err := uc.load(ctx, a, requestID)
	if err != nil {
		return nil, err
	}

	update, err := domain.Cancel(req, uc.now(), string(a.Role))
	if err != nil {
		return nil, err
	}

	updated, err := uc.commit(ctx, update)
	if err != nil {
		return nil, err
	}

	// Avisa a outra parte; cancelamento administrativo avisa as duas.
	if !a.IsClientOf(updated) {
		uc.notify(ctx, notification.KindRequestCancelled, updated.ClientID, updated)
	}
	if !a.IsProviderOf(updated) {
		uc.notify(ctx, notification.KindRequestCancelled, updated.ProviderID, updated)
	}

	var meta any
	if reason != "" {
		meta = map[string]any{"reason": reason}
	}
	uc.audit(a, "request_cancelled", updated, meta)

	return updated, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteServiceRequest struct {
	base
}

func NewDeleteServiceRequest(d Deps) *DeleteServiceRequest {
	return &DeleteServiceRequest{base: newBase(d)}
}

func (uc *DeleteServiceRequest) Execute(
	ctx context.Context,
	a actor.Actor,
	requestID uuid.UUID,
) error {

	req, err := uc.load(ctx, a, requestID)
	if err != nil {
		return err
	}
	if !a.IsPartyOf(req) {
		return httperr.ErrBusiness("forbidden")
	}
	if err := domain.CanDelete(domain.Status(req.Status)); err != nil {
		return err
	}

	deleted, err := uc.Repo.DeleteRequest(ctx, req.ID, domain.TerminalStatuses)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("request_not_found")
		}
		return err
	}
	if !deleted {
		return httperr.ErrBusiness("not_deletable")
	}

	uc.audit(a, "request_deleted", req, map[string]any{"status": req.Status})
	return nil
}
