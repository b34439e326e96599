package servicerequest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/calendar"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
	"github.com/BruksfildServices01/eventos-marketplace/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ProviderID      uuid.UUID
	ServiceDatetime string
	AmountTotal     float64
	Notes           string
}

// ======================================================
// USE CASE
// ======================================================

type CreateServiceRequest struct {
	base
}

func NewCreateServiceRequest(d Deps) *CreateServiceRequest {
	return &CreateServiceRequest{base: newBase(d)}
}

func (uc *CreateServiceRequest) Execute(
	ctx context.Context,
	a actor.Actor,
	in CreateInput,
) (*models.ServiceRequest, error) {

	if a.Role != actor.RoleClient {
		return nil, httperr.ErrBusiness("forbidden")
	}

	loc := uc.Rules.Location()
	now := uc.now()

	// --------------------------------------------------
	// Data do serviço
	// --------------------------------------------------
	serviceAt, err := timezone.ParseISO(in.ServiceDatetime, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if !serviceAt.After(now) {
		return nil, httperr.ErrBusiness("service_in_past")
	}
	if in.AmountTotal < 0 {
		return nil, httperr.ErrBusiness("invalid_amount")
	}

	// --------------------------------------------------
	// Calendário do fornecedor
	// --------------------------------------------------
	available, err := uc.dayAvailable(ctx, in.ProviderID, serviceAt)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, httperr.ErrBusiness("date_unavailable")
	}

	// --------------------------------------------------
	// Janela de resposta (SLA)
	// --------------------------------------------------
	window := domain.ClassifyResponseWindow(now, serviceAt)

	req := &models.ServiceRequest{
		ID:              uuid.New(),
		ClientID:        a.ID,
		ProviderID:      in.ProviderID,
		ServiceDatetime: serviceAt,
		Status:          string(domain.InitialStatus()),
		AmountTotal:     in.AmountTotal,
		Notes:           in.Notes,
		RespondBy:       window.Deadline(now),
		Urgent:          window.Urgent,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.Repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	uc.notify(ctx, notification.KindRequestCreated, req.ProviderID, req)
	uc.audit(a, "request_created", req, map[string]any{
		"urgent":                window.Urgent,
		"response_window_hours": window.Hours(),
	})

	return req, nil
}

func (uc *CreateServiceRequest) dayAvailable(
	ctx context.Context,
	providerID uuid.UUID,
	serviceAt time.Time,
) (bool, error) {

	loc := uc.Rules.Location()
	start, end := timezone.DayBounds(serviceAt, loc)
	key := timezone.DayKey(start, loc)

	blocks, err := uc.Calendar.ListBlocksForProvider(ctx, providerID, key, timezone.DayKey(end, loc))
	if err != nil {
		return false, fmt.Errorf("load calendar blocks: %w", err)
	}
	requests, err := uc.Calendar.ListActiveRequestsForProviderInRange(ctx, providerID, start, end)
	if err != nil {
		return false, fmt.Errorf("load active requests: %w", err)
	}

	return calendar.EvaluateDay(key, blocks, requests, loc).Available, nil
}
