package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/eventos-marketplace/internal/audit"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/calendar"
	"github.com/BruksfildServices01/eventos-marketplace/internal/dto"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
	"github.com/BruksfildServices01/eventos-marketplace/internal/timezone"
)

type ToggleBlock struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

func NewToggleBlock(
	repo domain.Repository,
	audit *audit.Dispatcher,
	loc *time.Location,
	logger *zap.Logger,
) *ToggleBlock {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ToggleBlock{
		repo:   repo,
		audit:  audit,
		loc:    loc,
		logger: logger,
		now:    time.Now,
	}
}

// Execute alterna o bloqueio manual de um dia do fornecedor: dia livre vira
// bloqueado, bloqueio manual é removido e dia com solicitação ativa é recusado.
func (uc *ToggleBlock) Execute(
	ctx context.Context,
	a actor.Actor,
	dateKey string,
	reason string,
) (*dto.ToggleResult, error) {

	if a.Role != actor.RoleProvider {
		return nil, httperr.ErrBusiness("forbidden")
	}

	day, err := timezone.ParseDateKey(dateKey, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	key := day.Format(timezone.DateLayout)

	today := timezone.DayKey(uc.now(), uc.loc)
	if key < today {
		return nil, httperr.ErrBusiness("date_in_past")
	}

	// --------------------------------------------------
	// Estado atual do dia
	// --------------------------------------------------
	start, end := timezone.DayBounds(day, uc.loc)

	blocks, err := uc.repo.ListBlocksForProvider(ctx, a.ID, key, end.Format(timezone.DateLayout))
	if err != nil {
		return nil, err
	}
	requests, err := uc.repo.ListActiveRequestsForProviderInRange(ctx, a.ID, start, end)
	if err != nil {
		return nil, err
	}

	current := domain.EvaluateDay(key, blocks, requests, uc.loc)

	action, err := domain.DecideToggle(current)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Aplicação
	// --------------------------------------------------
	var blockID uuid.UUID

	switch action {
	case domain.ToggleCreateBlock:
		block := &models.CalendarBlock{
			ID:          uuid.New(),
			ProviderID:  a.ID,
			BlockedDate: key,
			Reason:      reason,
			CreatedAt:   uc.now(),
		}
		if err := uc.repo.CreateBlock(ctx, block); err != nil {
			if errors.Is(err, domain.ErrAlreadyBlocked) {
				return nil, httperr.ErrBusiness("date_already_blocked")
			}
			return nil, err
		}
		blockID = block.ID

	case domain.ToggleDeleteBlock:
		blockID = *current.BlockID
		if err := uc.repo.DeleteBlock(ctx, blockID); err != nil {
			if errors.Is(err, domain.ErrBlockNotFound) {
				return nil, httperr.ErrBusiness("block_not_found")
			}
			return nil, err
		}
	}

	uc.logger.Debug("calendar toggled",
		zap.String("provider_id", a.ID.String()),
		zap.String("date", key),
		zap.String("action", string(action)),
	)

	if uc.audit != nil {
		actorID := a.ID
		uc.audit.Dispatch(audit.Event{
			ActorID:   &actorID,
			ActorRole: string(a.Role),
			Action:    "calendar_" + string(action),
			Entity:    "calendar_block",
			EntityID:  &blockID,
			Metadata:  map[string]any{"date": key},
		})
	}

	return &dto.ToggleResult{
		Date:    key,
		Blocked: action == domain.ToggleCreateBlock,
		Action:  string(action),
	}, nil
}
