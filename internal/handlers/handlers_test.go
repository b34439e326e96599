package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/eventos-marketplace/internal/infra/memory"
	"github.com/BruksfildServices01/eventos-marketplace/internal/middleware"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
	usecase "github.com/BruksfildServices01/eventos-marketplace/internal/usecase/calendar"
)

var mexico = time.FixedZone("UTC-6", -6*3600)

func withActor(a actor.Actor) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set(middleware.ContextActor, a) }
}

func TestAuditLogsHandler_FiltersByLocalDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	ctx := context.Background()

	for _, l := range []models.AuditLog{
		{Action: "pin_validated", Entity: "service_request", CreatedAt: time.Date(2026, 1, 9, 23, 0, 0, 0, mexico)},
		{Action: "pin_validated", Entity: "service_request", CreatedAt: time.Date(2026, 1, 10, 23, 30, 0, 0, mexico)},
		{Action: "request_created", Entity: "service_request", CreatedAt: time.Date(2026, 1, 10, 9, 0, 0, 0, mexico)},
	} {
		l := l
		require.NoError(t, store.SaveAuditLog(ctx, &l))
	}

	r := gin.New()
	r.GET("/logs", NewAuditLogsHandler(store, mexico).List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logs?action=pin_validated&from=2026-01-10&to=2026-01-10", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Total int64             `json:"total"`
		Logs  []models.AuditLog `json:"logs"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body.Total)
	require.Len(t, body.Logs, 1)
	assert.Equal(t, 10, body.Logs[0].CreatedAt.In(mexico).Day())
}

func TestAuditLogsHandler_PageOutOfRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	require.NoError(t, store.SaveAuditLog(context.Background(), &models.AuditLog{
		Action: "request_created", Entity: "service_request", CreatedAt: time.Now(),
	}))

	r := gin.New()
	r.GET("/logs", NewAuditLogsHandler(store, mexico).List)

	tests := []struct {
		name     string
		query    string
		wantCode int
	}{
		{"overflowing page", "?page=184467440737095518&limit=50", http.StatusBadRequest},
		{"max int page", "?page=9223372036854775807", http.StatusBadRequest},
		{"far but representable page", "?page=1000&limit=200", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			require.NotPanics(t, func() {
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/logs"+tt.query, nil))
			})
			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode == http.StatusBadRequest {
				var body struct {
					Code string `json:"error_code"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, "invalid_request", body.Code)
			}
		})
	}
}

func TestCalendarHandler_MonthQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	provider := actor.Actor{ID: uuid.New(), Role: actor.RoleProvider}

	h := NewCalendarHandler(
		usecase.NewGetMonthAvailability(store, mexico),
		usecase.NewToggleBlock(store, nil, mexico, zap.NewNop()),
		mexico,
	)
	h.now = func() time.Time { return time.Date(2026, 2, 10, 12, 0, 0, 0, mexico) }

	r := gin.New()
	r.GET("/me/calendar", withActor(provider), h.MyMonth)

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantDays int
	}{
		{"defaults to current month", "", http.StatusOK, 28},
		{"explicit month", "?year=2026&month=4", http.StatusOK, 30},
		{"non numeric", "?month=abril", http.StatusBadRequest, 0},
		{"out of range", "?month=13", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me/calendar"+tt.query, nil))
			assert.Equal(t, tt.wantCode, w.Code)

			if tt.wantCode == http.StatusOK {
				var body struct {
					Total int `json:"total"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantDays, body.Total)
			}
		})
	}
}
