package servicerequest

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/dto"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

// BuildView monta o view model consumido pelo front-end. O PIN só vai para
// o cliente dono da solicitação.
func BuildView(
	rules *domain.Rules,
	a actor.Actor,
	req *models.ServiceRequest,
	now time.Time,
) dto.ServiceRequestView {

	status := domain.Status(req.Status)

	v := dto.ServiceRequestView{
		ID:              req.ID,
		ClientID:        req.ClientID,
		ProviderID:      req.ProviderID,
		ServiceDatetime: req.ServiceDatetime,
		ServiceDate:     rules.DayKey(req.ServiceDatetime),
		Status:          req.Status,
		StatusLabel:     status.Label(),
		AmountTotal:     req.AmountTotal,
		Notes:           req.Notes,
		PinValidatedAt:  req.PinValidatedAt,
		RespondBy:       req.RespondBy,
		Urgent:          req.Urgent,
		CreatedAt:       req.CreatedAt,
	}

	if !req.RespondBy.IsZero() && !req.CreatedAt.IsZero() {
		v.ResponseWindowHours = int(req.RespondBy.Sub(req.CreatedAt).Round(time.Hour) / time.Hour)
	}

	v.IsServiceDay = rules.IsServiceDay(req.ServiceDatetime, now)
	v.CanValidatePin = a.IsProviderOf(req) && domain.PinGate(rules, req, now) == nil
	v.ReminderDue = status.In(domain.PinStatuses...) && domain.ReminderDue(now, req.ServiceDatetime)
	v.CanSettle = domain.CanSettle(status) == nil

	if a.IsClientOf(req) && req.CompletionPin != nil {
		pin := *req.CompletionPin
		v.CompletionPin = &pin
	}

	return v
}

// ======================================================
// GET
// ======================================================

type GetServiceRequest struct {
	base
}

func NewGetServiceRequest(d Deps) *GetServiceRequest {
	return &GetServiceRequest{base: newBase(d)}
}

func (uc *GetServiceRequest) Execute(
	ctx context.Context,
	a actor.Actor,
	requestID uuid.UUID,
) (*dto.ServiceRequestView, error) {

	req, err := uc.load(ctx, a, requestID)
	if err != nil {
		return nil, err
	}

	v := BuildView(uc.Rules, a, req, uc.now())
	return &v, nil
}

// ======================================================
// LIST (by role)
// ======================================================

type ListMyServiceRequests struct {
	base
}

func NewListMyServiceRequests(d Deps) *ListMyServiceRequests {
	return &ListMyServiceRequests{base: newBase(d)}
}

// Execute lista as solicitações do ator: cliente vê as que abriu,
// fornecedor as que recebeu e administrador todas.
func (uc *ListMyServiceRequests) Execute(
	ctx context.Context,
	a actor.Actor,
	statuses []domain.Status,
) ([]dto.ServiceRequestView, error) {

	filter := domain.ListFilter{Statuses: statuses}

	id := a.ID
	switch a.Role {
	case actor.RoleClient:
		filter.ClientID = &id
	case actor.RoleProvider:
		filter.ProviderID = &id
	case actor.RoleAdmin:
	default:
		return []dto.ServiceRequestView{}, nil
	}

	requests, err := uc.Repo.ListRequests(ctx, filter)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	out := make([]dto.ServiceRequestView, 0, len(requests))
	for i := range requests {
		out = append(out, BuildView(uc.Rules, a, &requests[i], now))
	}
	return out, nil
}

// ======================================================
// PRESENTER
// ======================================================

// Presenter monta views com o relógio e o fuso dos casos de uso.
type Presenter struct {
	base
}

func NewPresenter(d Deps) *Presenter {
	return &Presenter{base: newBase(d)}
}

func (p *Presenter) View(a actor.Actor, req *models.ServiceRequest) dto.ServiceRequestView {
	return BuildView(p.Rules, a, req, p.now())
}
