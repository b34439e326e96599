package servicerequest

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/infra/reminder"
)

// ======================================================
// REMINDERS
// ======================================================

type SendReminders struct {
	base
	dedupe reminder.Deduper
}

func NewSendReminders(d Deps, dedupe reminder.Deduper) *SendReminders {
	return &SendReminders{base: newBase(d), dedupe: dedupe}
}

// Execute avisa cliente e fornecedor dos eventos reservados que começam
// nas próximas horas. Devolve quantos lembretes saíram nesta rodada.
func (uc *SendReminders) Execute(ctx context.Context) (int, error) {
	now := uc.now()

	requests, err := uc.Repo.ListRequestsStartingBetween(
		ctx,
		domain.PinStatuses,
		now,
		now.Add(domain.ReminderLead),
	)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range requests {
		req := &requests[i]
		if !domain.ReminderDue(now, req.ServiceDatetime) {
			continue
		}

		key := reminder.Key(req.ID, uc.Rules.DayKey(req.ServiceDatetime))
		claimed, err := uc.dedupe.Claim(ctx, key)
		if err != nil {
			uc.Logger.Warn("reminder dedupe failed",
				zap.String("request_id", req.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if !claimed {
			continue
		}

		uc.notify(ctx, notification.KindEventReminder, req.ClientID, req)
		uc.notify(ctx, notification.KindEventReminder, req.ProviderID, req)
		sent++
	}

	return sent, nil
}

// ======================================================
// EXPIRY
// ======================================================

type ExpirePendingRequests struct {
	base
}

func NewExpirePendingRequests(d Deps) *ExpirePendingRequests {
	return &ExpirePendingRequests{base: newBase(d)}
}

// Execute abandona as solicitações pendentes cujo prazo de resposta venceu.
// Uma resposta do fornecedor no meio da varredura vence a atualização
// condicional e a solicitação é simplesmente pulada.
func (uc *ExpirePendingRequests) Execute(ctx context.Context) (int, error) {
	now := uc.now()

	requests, err := uc.Repo.ListPendingPastDeadline(ctx, now)
	if err != nil {
		return 0, err
	}

	abandoned := 0
	for i := range requests {
		update, err := domain.Abandon(&requests[i], now)
		if err != nil {
			continue
		}

		updated, err := uc.commit(ctx, update)
		if err != nil {
			if httperr.IsBusiness(err, "wrong_state") {
				continue
			}
			return abandoned, err
		}

		uc.notify(ctx, notification.KindRequestAbandoned, updated.ClientID, updated)
		uc.audit(System, "request_abandoned", updated, map[string]any{
			"respond_by": updated.RespondBy,
		})
		abandoned++
	}

	return abandoned, nil
}
