package calendar

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/calendar"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/timezone"
)

type GetMonthAvailability struct {
	repo domain.Repository
	loc  *time.Location
}

func NewGetMonthAvailability(repo domain.Repository, loc *time.Location) *GetMonthAvailability {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	return &GetMonthAvailability{repo: repo, loc: loc}
}

func (uc *GetMonthAvailability) Execute(
	ctx context.Context,
	providerID uuid.UUID,
	year int,
	month int,
) ([]domain.DayAvailability, error) {

	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start, end := timezone.MonthBounds(year, time.Month(month), uc.loc)

	blocks, err := uc.repo.ListBlocksForProvider(
		ctx,
		providerID,
		start.Format(timezone.DateLayout),
		end.Format(timezone.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	requests, err := uc.repo.ListActiveRequestsForProviderInRange(ctx, providerID, start, end)
	if err != nil {
		return nil, err
	}

	return domain.EvaluateMonth(year, time.Month(month), blocks, requests, uc.loc), nil
}
