package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/calendar"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

type CalendarGormRepository struct {
	db *gorm.DB
}

func NewCalendarGormRepository(db *gorm.DB) *CalendarGormRepository {
	return &CalendarGormRepository{db: db}
}

func (r *CalendarGormRepository) ListBlocksForProvider(
	ctx context.Context,
	providerID uuid.UUID,
	fromDate string,
	toDate string,
) ([]models.CalendarBlock, error) {

	var blocks []models.CalendarBlock
	if err := r.db.WithContext(ctx).
		Where(
			"provider_id = ? AND blocked_date >= ? AND blocked_date < ?",
			providerID, fromDate, toDate,
		).
		Order("blocked_date ASC").
		Find(&blocks).Error; err != nil {
		return nil, fmt.Errorf("list calendar blocks: %w", err)
	}
	return blocks, nil
}

func (r *CalendarGormRepository) ListActiveRequestsForProviderInRange(
	ctx context.Context,
	providerID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.ServiceRequest, error) {

	var out []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Select("id", "provider_id", "service_datetime", "status").
		Where(
			"provider_id = ? AND status IN ? AND service_datetime >= ? AND service_datetime < ?",
			providerID, statusStrings(domain.ActiveStatuses), from, to,
		).
		Order("service_datetime ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list active requests: %w", err)
	}
	return out, nil
}

func (r *CalendarGormRepository) CreateBlock(
	ctx context.Context,
	block *models.CalendarBlock,
) error {
	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		if IsUniqueViolation(err) {
			return calendar.ErrAlreadyBlocked
		}
		return fmt.Errorf("create calendar block: %w", err)
	}
	return nil
}

func (r *CalendarGormRepository) DeleteBlock(
	ctx context.Context,
	id uuid.UUID,
) error {

	res := r.db.WithContext(ctx).Delete(&models.CalendarBlock{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete calendar block: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return calendar.ErrBlockNotFound
	}
	return nil
}

// IsUniqueViolation reconhece o índice único (provider_id, blocked_date).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	return false
}

// Compile-time check
var _ calendar.Repository = (*CalendarGormRepository)(nil)
