package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/eventos-marketplace/internal/audit"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/calendar"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

func TestConditionalUpdate_OnlyOneWinner(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	req := &models.ServiceRequest{Status: string(domain.StatusConfirmed)}
	require.NoError(t, s.CreateRequest(ctx, req))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := s.ConditionalUpdateRequestStatus(ctx, domain.StatusUpdate{
				RequestID: req.ID,
				From:      domain.PinStatuses,
				To:        domain.StatusDelivered,
				At:        time.Unix(int64(i), 0),
			})
			assert.NoError(t, err)
			if ok {
				atomic.AddInt32(&wins, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)

	got, err := s.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusDelivered), got.Status)
	assert.NotNil(t, got.PinValidatedAt)
}

func TestConditionalUpdate_UnknownRequest(t *testing.T) {
	ok, err := NewStore().ConditionalUpdateRequestStatus(context.Background(), domain.StatusUpdate{
		RequestID: uuid.New(),
		From:      []domain.Status{domain.StatusConfirmed},
		To:        domain.StatusDelivered,
	})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetRequest_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	pin := "4821"
	req := &models.ServiceRequest{Status: string(domain.StatusConfirmed), CompletionPin: &pin}
	require.NoError(t, s.CreateRequest(ctx, req))

	got, err := s.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	*got.CompletionPin = "0000"
	got.Status = string(domain.StatusCompleted)

	again, err := s.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "4821", *again.CompletionPin)
	assert.Equal(t, string(domain.StatusConfirmed), again.Status)

	_, err = s.GetRequest(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlocks(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	provider := uuid.New()

	b := &models.CalendarBlock{ProviderID: provider, BlockedDate: "2026-01-12"}
	require.NoError(t, s.CreateBlock(ctx, b))
	assert.ErrorIs(t, s.CreateBlock(ctx, &models.CalendarBlock{ProviderID: provider, BlockedDate: "2026-01-12"}), calendar.ErrAlreadyBlocked)
	require.NoError(t, s.CreateBlock(ctx, &models.CalendarBlock{ProviderID: uuid.New(), BlockedDate: "2026-01-12"}))
	require.NoError(t, s.CreateBlock(ctx, &models.CalendarBlock{ProviderID: provider, BlockedDate: "2026-02-01"}))

	blocks, err := s.ListBlocksForProvider(ctx, provider, "2026-01-01", "2026-02-01")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, b.ID, blocks[0].ID)

	require.NoError(t, s.DeleteBlock(ctx, b.ID))
	assert.ErrorIs(t, s.DeleteBlock(ctx, b.ID), calendar.ErrBlockNotFound)
}

func TestListActiveRequestsForProviderInRange(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	provider := uuid.New()
	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	for _, r := range []models.ServiceRequest{
		{ProviderID: provider, Status: string(domain.StatusConfirmed), ServiceDatetime: day.Add(20 * time.Hour)},
		{ProviderID: provider, Status: string(domain.StatusCancelled), ServiceDatetime: day.Add(10 * time.Hour)},
		{ProviderID: provider, Status: string(domain.StatusPendingApproval), ServiceDatetime: day.Add(24 * time.Hour)},
		{ProviderID: uuid.New(), Status: string(domain.StatusConfirmed), ServiceDatetime: day.Add(time.Hour)},
	} {
		r := r
		require.NoError(t, s.CreateRequest(ctx, &r))
	}

	got, err := s.ListActiveRequestsForProviderInRange(ctx, provider, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, string(domain.StatusConfirmed), got[0].Status)
}

func TestDeleteRequest_OnlyAllowedStatuses(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	active := &models.ServiceRequest{Status: string(domain.StatusConfirmed)}
	done := &models.ServiceRequest{Status: string(domain.StatusCompleted)}
	require.NoError(t, s.CreateRequest(ctx, active))
	require.NoError(t, s.CreateRequest(ctx, done))

	ok, err := s.DeleteRequest(ctx, active.ID, domain.TerminalStatuses)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.DeleteRequest(ctx, done.ID, domain.TerminalStatuses)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAuditLogsPagination(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for _, action := range []string{"a", "b", "a", "a"} {
		require.NoError(t, s.SaveAuditLog(ctx, &models.AuditLog{Action: action, CreatedAt: time.Now()}))
	}

	logs, total, err := s.ListAuditLogs(ctx, audit.Filter{Action: "a", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 2)
	assert.Equal(t, uint(4), logs[0].ID)

	logs, _, err = s.ListAuditLogs(ctx, audit.Filter{Action: "a", Limit: 2, Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestAuditLogsNegativeOffsetStartsAtFirstPage(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.SaveAuditLog(ctx, &models.AuditLog{Action: "a", CreatedAt: time.Now()}))
	}

	var logs []models.AuditLog
	require.NotPanics(t, func() {
		var err error
		logs, _, err = s.ListAuditLogs(ctx, audit.Filter{Limit: 2, Offset: -50})
		require.NoError(t, err)
	})
	require.Len(t, logs, 2)
	assert.Equal(t, uint(3), logs[0].ID)
}
