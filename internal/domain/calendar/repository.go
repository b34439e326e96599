package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

var (
	ErrBlockNotFound  = errors.New("calendar block not found")
	ErrAlreadyBlocked = errors.New("date already blocked")
)

type Repository interface {
	// fromDate inclusivo, toDate exclusivo (YYYY-MM-DD).
	ListBlocksForProvider(
		ctx context.Context,
		providerID uuid.UUID,
		fromDate string,
		toDate string,
	) ([]models.CalendarBlock, error)

	ListActiveRequestsForProviderInRange(
		ctx context.Context,
		providerID uuid.UUID,
		from time.Time,
		to time.Time,
	) ([]models.ServiceRequest, error)

	CreateBlock(
		ctx context.Context,
		block *models.CalendarBlock,
	) error

	DeleteBlock(
		ctx context.Context,
		id uuid.UUID,
	) error
}
