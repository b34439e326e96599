package servicerequest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/infra/memory"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

var mexico = time.FixedZone("UTC-6", -6*3600)

type fixture struct {
	store *memory.Store
	deps  Deps
	now   time.Time

	client   actor.Actor
	provider actor.Actor
	admin    actor.Actor
	stranger actor.Actor
}

// newFixture congela o relógio em 10/01/2026 12:00 (UTC-6).
func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	f := &fixture{
		store:    store,
		now:      time.Date(2026, 1, 10, 12, 0, 0, 0, mexico),
		client:   actor.Actor{ID: uuid.New(), Role: actor.RoleClient},
		provider: actor.Actor{ID: uuid.New(), Role: actor.RoleProvider},
		admin:    actor.Actor{ID: uuid.New(), Role: actor.RoleAdmin},
		stranger: actor.Actor{ID: uuid.New(), Role: actor.RoleClient},
	}

	f.deps = Deps{
		Repo:          store,
		Calendar:      store,
		Notifications: store,
		Rules:         domain.NewRules(mexico, zap.NewNop()),
		Logger:        zap.NewNop(),
		Now:           func() time.Time { return f.now },
	}
	return f
}

func (f *fixture) seed(t *testing.T, status domain.Status, serviceAt time.Time, pin string) *models.ServiceRequest {
	t.Helper()

	req := &models.ServiceRequest{
		ID:              uuid.New(),
		ClientID:        f.client.ID,
		ProviderID:      f.provider.ID,
		ServiceDatetime: serviceAt,
		Status:          string(status),
		AmountTotal:     1500,
		CreatedAt:       f.now.Add(-72 * time.Hour),
		RespondBy:       f.now.Add(-48 * time.Hour),
	}
	if pin != "" {
		req.CompletionPin = &pin
	}

	require.NoError(t, f.store.CreateRequest(context.Background(), req))
	return req
}

func (f *fixture) status(t *testing.T, id uuid.UUID) domain.Status {
	t.Helper()

	req, err := f.store.GetRequest(context.Background(), id)
	require.NoError(t, err)
	return domain.Status(req.Status)
}

func (f *fixture) notifications(t *testing.T, userID uuid.UUID) []models.Notification {
	t.Helper()

	list, err := f.store.ListNotifications(context.Background(), userID, 0)
	require.NoError(t, err)
	return list
}
