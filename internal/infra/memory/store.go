// Package memory guarda o estado em memória para STORAGE_DRIVER=memory e para
// os testes. Todas as operações são serializadas por um único mutex, o que
// torna a atualização condicional de status um compare-and-swap real.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/audit"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/calendar"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

type Store struct {
	mu sync.Mutex

	requests      map[uuid.UUID]models.ServiceRequest
	blocks        map[uuid.UUID]models.CalendarBlock
	notifications []models.Notification
	auditLogs     []models.AuditLog
	nextAuditID   uint
}

func NewStore() *Store {
	return &Store{
		requests: make(map[uuid.UUID]models.ServiceRequest),
		blocks:   make(map[uuid.UUID]models.CalendarBlock),
	}
}

// --------------------------------------------------
// Service requests
// --------------------------------------------------

func (s *Store) GetRequest(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(r), nil
}

func (s *Store) ListRequests(ctx context.Context, filter domain.ListFilter) ([]models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ServiceRequest, 0)
	for _, r := range s.requests {
		if filter.ClientID != nil && r.ClientID != *filter.ClientID {
			continue
		}
		if filter.ProviderID != nil && r.ProviderID != *filter.ProviderID {
			continue
		}
		if len(filter.Statuses) > 0 && !domain.Status(r.Status).In(filter.Statuses...) {
			continue
		}
		out = append(out, *clone(r))
	}

	sortByServiceDate(out)
	return out, nil
}

func (s *Store) CreateRequest(ctx context.Context, req *models.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := time.Now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = req.CreatedAt

	s.requests[req.ID] = *clone(*req)
	return nil
}

func (s *Store) ConditionalUpdateRequestStatus(ctx context.Context, u domain.StatusUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[u.RequestID]
	if !ok {
		return false, nil
	}
	if !domain.Status(r.Status).In(u.From...) {
		return false, nil
	}

	domain.Apply(&r, u)
	s.requests[r.ID] = r
	return true, nil
}

func (s *Store) DeleteRequest(ctx context.Context, id uuid.UUID, allowed []domain.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok || !domain.Status(r.Status).In(allowed...) {
		return false, nil
	}
	delete(s.requests, id)
	return true, nil
}

func (s *Store) ListRequestsStartingBetween(
	ctx context.Context,
	statuses []domain.Status,
	from time.Time,
	to time.Time,
) ([]models.ServiceRequest, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ServiceRequest, 0)
	for _, r := range s.requests {
		if !domain.Status(r.Status).In(statuses...) {
			continue
		}
		if r.ServiceDatetime.After(from) && !r.ServiceDatetime.After(to) {
			out = append(out, *clone(r))
		}
	}

	sortByServiceDate(out)
	return out, nil
}

func (s *Store) ListPendingPastDeadline(ctx context.Context, now time.Time) ([]models.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ServiceRequest, 0)
	for _, r := range s.requests {
		if domain.Status(r.Status) == domain.StatusPendingApproval && domain.ResponseOverdue(r.RespondBy, now) {
			out = append(out, *clone(r))
		}
	}

	sortByServiceDate(out)
	return out, nil
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (s *Store) ListBlocksForProvider(
	ctx context.Context,
	providerID uuid.UUID,
	fromDate string,
	toDate string,
) ([]models.CalendarBlock, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CalendarBlock, 0)
	for _, b := range s.blocks {
		if b.ProviderID != providerID {
			continue
		}
		if b.BlockedDate >= fromDate && b.BlockedDate < toDate {
			out = append(out, b)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].BlockedDate < out[j].BlockedDate })
	return out, nil
}

func (s *Store) ListActiveRequestsForProviderInRange(
	ctx context.Context,
	providerID uuid.UUID,
	from time.Time,
	to time.Time,
) ([]models.ServiceRequest, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ServiceRequest, 0)
	for _, r := range s.requests {
		if r.ProviderID != providerID || !domain.Status(r.Status).IsActive() {
			continue
		}
		if !r.ServiceDatetime.Before(from) && r.ServiceDatetime.Before(to) {
			out = append(out, *clone(r))
		}
	}

	sortByServiceDate(out)
	return out, nil
}

func (s *Store) CreateBlock(ctx context.Context, block *models.CalendarBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.blocks {
		if b.ProviderID == block.ProviderID && b.BlockedDate == block.BlockedDate {
			return calendar.ErrAlreadyBlocked
		}
	}

	if block.ID == uuid.Nil {
		block.ID = uuid.New()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now()
	}
	s.blocks[block.ID] = *block
	return nil
}

func (s *Store) DeleteBlock(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blocks[id]; !ok {
		return calendar.ErrBlockNotFound
	}
	delete(s.blocks, id)
	return nil
}

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *Store) ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Notification, 0)
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].UserID != userID {
			continue
		}
		out = append(out, s.notifications[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func (s *Store) SaveAuditLog(ctx context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAuditID++
	log.ID = s.nextAuditID
	s.auditLogs = append(s.auditLogs, *log)
	return nil
}

func (s *Store) ListAuditLogs(ctx context.Context, filter audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]models.AuditLog, 0)
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		l := s.auditLogs[i]
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.Entity != "" && l.Entity != filter.Entity {
			continue
		}
		if filter.From != nil && l.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && l.CreatedAt.After(*filter.To) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func clone(r models.ServiceRequest) *models.ServiceRequest {
	c := r
	if r.CompletionPin != nil {
		pin := *r.CompletionPin
		c.CompletionPin = &pin
	}
	if r.PinValidatedAt != nil {
		at := *r.PinValidatedAt
		c.PinValidatedAt = &at
	}
	return &c
}

func sortByServiceDate(rs []models.ServiceRequest) {
	sort.Slice(rs, func(i, j int) bool {
		return rs[i].ServiceDatetime.Before(rs[j].ServiceDatetime)
	})
}

var (
	_ domain.Repository       = (*Store)(nil)
	_ calendar.Repository     = (*Store)(nil)
	_ notification.Repository = (*Store)(nil)
	_ audit.Store             = (*Store)(nil)
)
