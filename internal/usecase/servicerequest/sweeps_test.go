package servicerequest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/infra/reminder"
)

type failingDeduper struct{}

func (failingDeduper) Claim(ctx context.Context, key string) (bool, error) {
	return false, errors.New("redis down")
}

func TestSendReminders_OncePerRequestAndDay(t *testing.T) {
	f := newFixture(t)

	soon := f.seed(t, domain.StatusConfirmed, f.now.Add(2*time.Hour), "1111")
	f.seed(t, domain.StatusConfirmed, f.now.Add(5*time.Hour), "2222")
	f.seed(t, domain.StatusPendingApproval, f.now.Add(time.Hour), "")

	uc := NewSendReminders(f.deps, reminder.NewMemoryDeduper())

	sent, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	clientInbox := f.notifications(t, f.client.ID)
	require.Len(t, clientInbox, 1)
	assert.Equal(t, notification.KindEventReminder, clientInbox[0].Kind)
	require.NotNil(t, clientInbox[0].RequestID)
	assert.Equal(t, soon.ID, *clientInbox[0].RequestID)
	assert.Len(t, f.notifications(t, f.provider.ID), 1)

	f.now = f.now.Add(30 * time.Minute)
	sent, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestSendReminders_DedupeFailureSkips(t *testing.T) {
	f := newFixture(t)
	f.seed(t, domain.StatusInProgress, f.now.Add(time.Hour), "1111")

	sent, err := NewSendReminders(f.deps, failingDeduper{}).Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, f.notifications(t, f.client.ID))
}

func TestExpirePendingRequests(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	overdue := f.seed(t, domain.StatusPendingApproval, time.Date(2026, 1, 20, 18, 0, 0, 0, mexico), "")

	fresh := f.seed(t, domain.StatusPendingApproval, time.Date(2026, 1, 21, 18, 0, 0, 0, mexico), "")
	fresh.RespondBy = f.now.Add(time.Hour)
	require.NoError(t, f.store.CreateRequest(ctx, fresh))

	accepted := f.seed(t, domain.StatusAwaitingDeposit, time.Date(2026, 1, 22, 18, 0, 0, 0, mexico), "")

	n, err := NewExpirePendingRequests(f.deps).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Equal(t, domain.StatusAbandoned, f.status(t, overdue.ID))
	assert.Equal(t, domain.StatusPendingApproval, f.status(t, fresh.ID))
	assert.Equal(t, domain.StatusAwaitingDeposit, f.status(t, accepted.ID))

	inbox := f.notifications(t, f.client.ID)
	require.Len(t, inbox, 1)
	assert.Equal(t, notification.KindRequestAbandoned, inbox[0].Kind)
}
