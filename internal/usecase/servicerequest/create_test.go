package servicerequest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

func TestCreateServiceRequest_ClassifiesResponseWindow(t *testing.T) {
	tests := []struct {
		name       string
		service    string
		wantUrgent bool
		wantWindow time.Duration
	}{
		{"same evening is urgent", "2026-01-10T20:00:00", true, 3 * time.Hour},
		{"exactly 24h ahead is standard", "2026-01-11T12:00:00", false, 24 * time.Hour},
		{"next week is standard", "2026-01-17T18:00:00-06:00", false, 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			uc := NewCreateServiceRequest(f.deps)

			req, err := uc.Execute(context.Background(), f.client, CreateInput{
				ProviderID:      f.provider.ID,
				ServiceDatetime: tt.service,
				AmountTotal:     2500,
			})
			require.NoError(t, err)

			assert.Equal(t, string(domain.StatusPendingApproval), req.Status)
			assert.Equal(t, tt.wantUrgent, req.Urgent)
			assert.True(t, f.now.Add(tt.wantWindow).Equal(req.RespondBy))
			assert.Equal(t, f.client.ID, req.ClientID)

			sent := f.notifications(t, f.provider.ID)
			require.Len(t, sent, 1)
			assert.Equal(t, notification.KindRequestCreated, sent[0].Kind)
		})
	}
}

func TestCreateServiceRequest_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.CreateBlock(ctx, &models.CalendarBlock{
		ProviderID:  f.provider.ID,
		BlockedDate: "2026-01-12",
	}))
	f.seed(t, domain.StatusConfirmed, time.Date(2026, 1, 13, 18, 0, 0, 0, mexico), "1234")

	uc := NewCreateServiceRequest(f.deps)

	tests := []struct {
		name     string
		input    CreateInput
		wantCode string
	}{
		{"malformed date", CreateInput{ServiceDatetime: "el sábado"}, "invalid_date"},
		{"past date", CreateInput{ServiceDatetime: "2026-01-09T18:00:00"}, "service_in_past"},
		{"negative amount", CreateInput{ServiceDatetime: "2026-01-20T18:00:00", AmountTotal: -1}, "invalid_amount"},
		{"manually blocked day", CreateInput{ServiceDatetime: "2026-01-12T18:00:00"}, "date_unavailable"},
		{"day with active request", CreateInput{ServiceDatetime: "2026-01-13T09:00:00"}, "date_unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			in.ProviderID = f.provider.ID

			_, err := uc.Execute(ctx, f.client, in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestCreateServiceRequest_OnlyClients(t *testing.T) {
	f := newFixture(t)

	_, err := NewCreateServiceRequest(f.deps).Execute(context.Background(), f.provider, CreateInput{
		ProviderID:      f.provider.ID,
		ServiceDatetime: "2026-01-20T18:00:00",
	})
	assert.True(t, httperr.IsBusiness(err, "forbidden"))
}
