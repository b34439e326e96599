package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/eventos-marketplace/internal/audit"
	"github.com/BruksfildServices01/eventos-marketplace/internal/config"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/calendar"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/notification"
	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/handlers"
	"github.com/BruksfildServices01/eventos-marketplace/internal/middleware"
	ucCalendar "github.com/BruksfildServices01/eventos-marketplace/internal/usecase/calendar"
	ucRequest "github.com/BruksfildServices01/eventos-marketplace/internal/usecase/servicerequest"
)

// Dependencies são os adaptadores já montados pelo main (postgres ou memória).
type Dependencies struct {
	Config        *config.Config
	Logger        *zap.Logger
	Rules         *servicerequest.Rules
	Requests      servicerequest.Repository
	Calendar      calendar.Repository
	Notifications notification.Repository
	AuditStore    audit.Store
	Audit         *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORSMiddleware(deps.Config.CORSOrigins))

	loc := deps.Rules.Location()

	// ======================================================
	// USE CASES
	// ======================================================
	requestDeps := ucRequest.Deps{
		Repo:          deps.Requests,
		Calendar:      deps.Calendar,
		Notifications: deps.Notifications,
		Audit:         deps.Audit,
		Rules:         deps.Rules,
		Logger:        deps.Logger,
	}

	monthUC := ucCalendar.NewGetMonthAvailability(deps.Calendar, loc)
	toggleUC := ucCalendar.NewToggleBlock(deps.Calendar, deps.Audit, loc, deps.Logger)

	// ======================================================
	// HANDLERS
	// ======================================================
	requestHandler := handlers.NewServiceRequestHandler(requestDeps)
	calendarHandler := handlers.NewCalendarHandler(monthUC, toggleUC, loc)
	notificationHandler := handlers.NewNotificationHandler(deps.Notifications)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.AuditStore, loc)

	// 5 tentativas de PIN, repondo uma a cada 30s
	pinLimiter := middleware.NewKeyedLimiter(30*time.Second, 5)

	// ======================================================
	// ROTAS PÚBLICAS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/providers/:id/calendar", calendarHandler.ProviderMonth)

	// ======================================================
	// ROTAS AUTENTICADAS
	// ======================================================
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(deps.Config.JWTSecret))

	client := middleware.RequireRole(actor.RoleClient)
	provider := middleware.RequireRole(actor.RoleProvider)
	admin := middleware.RequireRole(actor.RoleAdmin)
	party := middleware.RequireRole(actor.RoleClient, actor.RoleProvider)

	requests := auth.Group("/requests")
	{
		requests.POST("", client, requestHandler.Create)
		requests.GET("/:id", requestHandler.Get)

		requests.PATCH("/:id/accept", provider, requestHandler.Accept)
		requests.PATCH("/:id/reject", provider, requestHandler.Reject)
		requests.PATCH("/:id/start", provider, requestHandler.Start)
		requests.POST("/:id/validate-pin", provider, middleware.PinAttemptLimit(pinLimiter), requestHandler.ValidatePin)

		requests.PATCH("/:id/deposit", admin, requestHandler.ConfirmDeposit)
		requests.PATCH("/:id/settle", admin, requestHandler.Settle)

		requests.PATCH("/:id/cancel", requestHandler.Cancel)
		requests.DELETE("/:id", party, requestHandler.Delete)
	}

	me := auth.Group("/me")
	{
		me.GET("/requests", requestHandler.ListMine)
		me.GET("/notifications", notificationHandler.ListMine)
		me.GET("/calendar", provider, calendarHandler.MyMonth)
		me.POST("/calendar/toggle", provider, calendarHandler.Toggle)
	}

	auth.GET("/admin/audit-logs", admin, auditLogsHandler.List)
}
