package servicerequest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/eventos-marketplace/internal/audit"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/calendar"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

// Deps reúne os colaboradores comuns aos casos de uso de solicitação.
type Deps struct {
	Repo          domain.Repository
	Calendar      calendar.Repository
	Notifications notification.Repository
	Audit         *audit.Dispatcher
	Rules         *domain.Rules
	Logger        *zap.Logger
	Now           func() time.Time
}

type base struct {
	Deps
}

func newBase(d Deps) base {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Rules == nil {
		d.Rules = domain.NewRules(nil, d.Logger)
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return base{Deps: d}
}

func (b base) now() time.Time {
	return b.Now().In(b.Rules.Location())
}

// load busca a solicitação; a de terceiros aparece como inexistente.
func (b base) load(ctx context.Context, a actor.Actor, id uuid.UUID) (*models.ServiceRequest, error) {
	req, err := b.Repo.GetRequest(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("request_not_found")
		}
		return nil, err
	}
	if !a.CanSee(req) {
		return nil, httperr.ErrBusiness("request_not_found")
	}
	return req, nil
}

// commit aplica a transição condicional. Se outra chamada mudou o status
// antes, nada é gravado e o chamador recebe wrong_state.
func (b base) commit(ctx context.Context, u domain.StatusUpdate) (*models.ServiceRequest, error) {
	ok, err := b.Repo.ConditionalUpdateRequestStatus(ctx, u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("wrong_state")
	}

	req, err := b.Repo.GetRequest(ctx, u.RequestID)
	if err != nil {
		return nil, fmt.Errorf("reload service request: %w", err)
	}
	return req, nil
}

// notify é best-effort: a transição já foi gravada.
func (b base) notify(ctx context.Context, kind string, userID uuid.UUID, req *models.ServiceRequest) {
	if b.Notifications == nil {
		return
	}
	n := notification.New(kind, userID, req, b.now())
	if err := b.Notifications.CreateNotification(ctx, n); err != nil {
		b.Logger.Warn("notification failed",
			zap.String("kind", kind),
			zap.String("request_id", req.ID.String()),
			zap.Error(err),
		)
	}
}

func (b base) audit(a actor.Actor, action string, req *models.ServiceRequest, meta any) {
	if b.Audit == nil {
		return
	}

	var actorID *uuid.UUID
	if a.ID != uuid.Nil {
		id := a.ID
		actorID = &id
	}
	entityID := req.ID

	b.Audit.Dispatch(audit.Event{
		ActorID:   actorID,
		ActorRole: string(a.Role),
		Action:    action,
		Entity:    "service_request",
		EntityID:  &entityID,
		Metadata:  meta,
	})
}

// System é o ator dos jobs agendados.
var System = actor.Actor{Role: "system"}
