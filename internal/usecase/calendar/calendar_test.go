package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/calendar"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/infra/memory"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

var mexico = time.FixedZone("UTC-6", -6*3600)

func newToggle(store *memory.Store) *ToggleBlock {
	uc := NewToggleBlock(store, nil, mexico, zap.NewNop())
	uc.now = func() time.Time { return time.Date(2026, 1, 10, 12, 0, 0, 0, mexico) }
	return uc
}

func TestToggleBlock_CreatesThenRemoves(t *testing.T) {
	store := memory.NewStore()
	provider := actor.Actor{ID: uuid.New(), Role: actor.RoleProvider}
	uc := newToggle(store)
	ctx := context.Background()

	res, err := uc.Execute(ctx, provider, "2026-01-15", "vacaciones")
	require.NoError(t, err)
	assert.True(t, res.Blocked)
	assert.Equal(t, string(domain.ToggleCreateBlock), res.Action)

	blocks, err := store.ListBlocksForProvider(ctx, provider.ID, "2026-01-01", "2026-02-01")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "vacaciones", blocks[0].Reason)

	res, err = uc.Execute(ctx, provider, "2026-01-15", "")
	require.NoError(t, err)
	assert.False(t, res.Blocked)
	assert.Equal(t, string(domain.ToggleDeleteBlock), res.Action)

	blocks, err = store.ListBlocksForProvider(ctx, provider.ID, "2026-01-01", "2026-02-01")
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestToggleBlock_Rejections(t *testing.T) {
	store := memory.NewStore()
	provider := actor.Actor{ID: uuid.New(), Role: actor.RoleProvider}
	ctx := context.Background()

	require.NoError(t, store.CreateRequest(ctx, &models.ServiceRequest{
		ID:              uuid.New(),
		ClientID:        uuid.New(),
		ProviderID:      provider.ID,
		ServiceDatetime: time.Date(2026, 1, 16, 19, 0, 0, 0, mexico),
		Status:          string(servicerequest.StatusAwaitingDeposit),
	}))

	uc := newToggle(store)

	tests := []struct {
		name     string
		who      actor.Actor
		date     string
		wantCode string
	}{
		{"occupied by active request", provider, "2026-01-16", "date_occupied"},
		{"past date", provider, "2026-01-09", "date_in_past"},
		{"bad format", provider, "16/01/2026", "invalid_date"},
		{"client cannot toggle", actor.Actor{ID: uuid.New(), Role: actor.RoleClient}, "2026-01-20", "forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(ctx, tt.who, tt.date, "")
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
		})
	}

	// hoje ainda pode ser bloqueado
	_, err := uc.Execute(ctx, provider, "2026-01-10", "")
	assert.NoError(t, err)
}

func TestGetMonthAvailability(t *testing.T) {
	store := memory.NewStore()
	providerID := uuid.New()
	ctx := context.Background()

	require.NoError(t, store.CreateBlock(ctx, &models.CalendarBlock{ProviderID: providerID, BlockedDate: "2026-02-03"}))
	require.NoError(t, store.CreateRequest(ctx, &models.ServiceRequest{
		ID:              uuid.New(),
		ProviderID:      providerID,
		ServiceDatetime: time.Date(2026, 2, 14, 20, 0, 0, 0, mexico),
		Status:          string(servicerequest.StatusConfirmed),
	}))
	require.NoError(t, store.CreateRequest(ctx, &models.ServiceRequest{
		ID:              uuid.New(),
		ProviderID:      providerID,
		ServiceDatetime: time.Date(2026, 2, 20, 20, 0, 0, 0, mexico),
		Status:          string(servicerequest.StatusRejected),
	}))

	days, err := NewGetMonthAvailability(store, mexico).Execute(ctx, providerID, 2026, 2)
	require.NoError(t, err)
	require.Len(t, days, 28)

	assert.Equal(t, domain.DayBlocked, days[2].State)
	assert.Equal(t, domain.DayOccupied, days[13].State)
	assert.Equal(t, domain.DayAvailable, days[19].State)

	_, err = NewGetMonthAvailability(store, mexico).Execute(ctx, providerID, 2026, 13)
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}
