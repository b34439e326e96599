package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

type ServiceRequestGormRepository struct {
	db *gorm.DB
}

func NewServiceRequestGormRepository(db *gorm.DB) *ServiceRequestGormRepository {
	return &ServiceRequestGormRepository{db: db}
}

// --------------------------------------------------
// Leitura
// --------------------------------------------------

func (r *ServiceRequestGormRepository) GetRequest(
	ctx context.Context,
	id uuid.UUID,
) (*models.ServiceRequest, error) {

	var req models.ServiceRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get service request: %w", err)
	}
	return &req, nil
}

func (r *ServiceRequestGormRepository) ListRequests(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.ServiceRequest, error) {

	q := r.db.WithContext(ctx).Model(&models.ServiceRequest{})

	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.ProviderID != nil {
		q = q.Where("provider_id = ?", *filter.ProviderID)
	}
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", statusStrings(filter.Statuses))
	}

	var out []models.ServiceRequest
	if err := q.Order("service_datetime ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list service requests: %w", err)
	}
	return out, nil
}

// --------------------------------------------------
// Criação
// --------------------------------------------------

func (r *ServiceRequestGormRepository) CreateRequest(
	ctx context.Context,
	req *models.ServiceRequest,
) error {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("create service request: %w", err)
	}
	return nil
}

// --------------------------------------------------
// Mudança de estado
// --------------------------------------------------

// ConditionalUpdateRequestStatus executa UPDATE ... WHERE id = ? AND status IN (...).
// Zero linhas afetadas significa que outra transição chegou antes.
func (r *ServiceRequestGormRepository) ConditionalUpdateRequestStatus(
	ctx context.Context,
	u domain.StatusUpdate,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.ServiceRequest{}).
		Where("id = ? AND status IN ?", u.RequestID, statusStrings(u.From)).
		Updates(updateColumns(u))

	if res.Error != nil {
		return false, fmt.Errorf("update service request status: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *ServiceRequestGormRepository) DeleteRequest(
	ctx context.Context,
	id uuid.UUID,
	allowed []domain.Status,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("id = ? AND status IN ?", id, statusStrings(allowed)).
		Delete(&models.ServiceRequest{})

	if res.Error != nil {
		return false, fmt.Errorf("delete service request: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// --------------------------------------------------
// Jobs
// --------------------------------------------------

func (r *ServiceRequestGormRepository) ListRequestsStartingBetween(
	ctx context.Context,
	statuses []domain.Status,
	from time.Time,
	to time.Time,
) ([]models.ServiceRequest, error) {

	var out []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Where(
			"status IN ? AND service_datetime > ? AND service_datetime <= ?",
			statusStrings(statuses), from, to,
		).
		Order("service_datetime ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list upcoming service requests: %w", err)
	}
	return out, nil
}

func (r *ServiceRequestGormRepository) ListPendingPastDeadline(
	ctx context.Context,
	now time.Time,
) ([]models.ServiceRequest, error) {

	var out []models.ServiceRequest
	if err := r.db.WithContext(ctx).
		Where(
			"status = ? AND respond_by IS NOT NULL AND respond_by < ?",
			string(domain.StatusPendingApproval), now,
		).
		Order("service_datetime ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list overdue service requests: %w", err)
	}
	return out, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

var timestampColumns = map[domain.Status]string{
	domain.StatusAwaitingDeposit: "accepted_at",
	domain.StatusRejected:        "rejected_at",
	domain.StatusConfirmed:       "deposit_paid_at",
	domain.StatusInProgress:      "started_at",
	domain.StatusDelivered:       "pin_validated_at",
	domain.StatusCompleted:       "settled_at",
	domain.StatusCancelled:       "cancelled_at",
	domain.StatusAbandoned:       "abandoned_at",
}

func updateColumns(u domain.StatusUpdate) map[string]any {
	cols := map[string]any{
		"status":     string(u.To),
		"updated_at": u.At,
	}
	if col, ok := timestampColumns[u.To]; ok {
		cols[col] = u.At
	}
	if u.CompletionPin != nil {
		cols["completion_pin"] = *u.CompletionPin
	}
	if u.CancelledBy != nil {
		cols["cancelled_by"] = *u.CancelledBy
	}
	return cols
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// Compile-time check
var _ domain.Repository = (*ServiceRequestGormRepository)(nil)
