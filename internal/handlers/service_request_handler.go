package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/actor"
	domain "github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/eventos-marketplace/internal/middleware"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
	usecase "github.com/BruksfildServices01/eventos-marketplace/internal/usecase/servicerequest"
)

// ======================================================
// HANDLER
// ======================================================

type ServiceRequestHandler struct {
	presenter *usecase.Presenter

	create   *usecase.CreateServiceRequest
	get      *usecase.GetServiceRequest
	list     *usecase.ListMyServiceRequests
	accept   *usecase.AcceptServiceRequest
	reject   *usecase.RejectServiceRequest
	deposit  *usecase.ConfirmDeposit
	start    *usecase.StartService
	validate *usecase.ValidateCompletionPin
	settle   *usecase.SettleServiceRequest
	cancel   *usecase.CancelServiceRequest
	remove   *usecase.DeleteServiceRequest
}

func NewServiceRequestHandler(d usecase.Deps) *ServiceRequestHandler {
	return &ServiceRequestHandler{
		presenter: usecase.NewPresenter(d),
		create:    usecase.NewCreateServiceRequest(d),
		get:       usecase.NewGetServiceRequest(d),
		list:      usecase.NewListMyServiceRequests(d),
		accept:    usecase.NewAcceptServiceRequest(d),
		reject:    usecase.NewRejectServiceRequest(d),
		deposit:   usecase.NewConfirmDeposit(d),
		start:     usecase.NewStartService(d),
		validate:  usecase.NewValidateCompletionPin(d),
		settle:    usecase.NewSettleServiceRequest(d),
		cancel:    usecase.NewCancelServiceRequest(d),
		remove:    usecase.NewDeleteServiceRequest(d),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequestBody struct {
	ProviderID      string  `json:"provider_id" binding:"required"`
	ServiceDatetime string  `json:"service_datetime" binding:"required"`
	AmountTotal     float64 `json:"amount_total"`
	Notes           string  `json:"notes"`
}

type ValidatePinBody struct {
	Pin string `json:"pin" binding:"required"`
}

type ReasonBody struct {
	Reason string `json:"reason"`
}

// ======================================================
// HELPERS
// ======================================================

func currentActor(c *gin.Context) actor.Actor {
	a, _ := middleware.ActorFrom(c)
	return a
}

func requestID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return uuid.Nil, false
	}
	return id, true
}

// reason aceita corpo vazio.
func reason(c *gin.Context) string {
	var body ReasonBody
	_ = c.ShouldBindJSON(&body)
	return strings.TrimSpace(body.Reason)
}

func (h *ServiceRequestHandler) respond(c *gin.Context, a actor.Actor, req *models.ServiceRequest, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, h.presenter.View(a, req))
}

// ======================================================
// CREATE / READ
// ======================================================

func (h *ServiceRequestHandler) Create(c *gin.Context) {
	a := currentActor(c)

	var body CreateServiceRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	providerID, err := uuid.Parse(body.ProviderID)
	if err != nil {
		httperr.BadRequest(c, "invalid_provider", "Proveedor inválido.")
		return
	}

	req, err := h.create.Execute(c.Request.Context(), a, usecase.CreateInput{
		ProviderID:      providerID,
		ServiceDatetime: body.ServiceDatetime,
		AmountTotal:     body.AmountTotal,
		Notes:           strings.TrimSpace(body.Notes),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.presenter.View(a, req))
}

func (h *ServiceRequestHandler) Get(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	view, err := h.get.Execute(c.Request.Context(), currentActor(c), id)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, view)
}

// ListMine aceita ?status=a,b para filtrar.
func (h *ServiceRequestHandler) ListMine(c *gin.Context) {
	var statuses []domain.Status
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			s, ok := domain.ParseStatus(strings.TrimSpace(part))
			if !ok {
				httperr.BadRequest(c, "invalid_status", "Estado inválido.")
				return
			}
			statuses = append(statuses, s)
		}
	}

	views, err := h.list.Execute(c.Request.Context(), currentActor(c), statuses)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.List(c, views)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *ServiceRequestHandler) Accept(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}
	a := currentActor(c)
	req, err := h.accept.Execute(c.Request.Context(), a, id)
	h.respond(c, a, req, err)
}

func (h *ServiceRequestHandler) Reject(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}
	a := currentActor(c)
	req, err := h.reject.Execute(c.Request.Context(), a, id, reason(c))
	h.respond(c, a, req, err)
}

func (h *ServiceRequestHandler) ConfirmDeposit(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}
	a := currentActor(c)
	req, err := h.deposit.Execute(c.Request.Context(), a, id)
	h.respond(c, a, req, err)
}

func (h *ServiceRequestHandler) Start(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}
	a := currentActor(c)
	req, err := h.start.Execute(c.Request.Context(), a, id)
	h.respond(c, a, req, err)
}

func (h *ServiceRequestHandler) ValidatePin(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}

	var body ValidatePinBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_pin_format", "El PIN debe tener 4 dígitos.")
		return
	}

	res, err := h.validate.Execute(c.Request.Context(), currentActor(c), id, body.Pin)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *ServiceRequestHandler) Settle(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}
	a := currentActor(c)
	req, err := h.settle.Execute(c.Request.Context(), a, id)
	h.respond(c, a, req, err)
}

func (h *ServiceRequestHandler) Cancel(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}
	a := currentActor(c)
	req, err := h.cancel.Execute(c.Request.Context(), a, id, reason(c))
	h.respond(c, a, req, err)
}

func (h *ServiceRequestHandler) Delete(c *gin.Context) {
	id, ok := requestID(c)
	if !ok {
		return
	}
	if err := h.remove.Execute(c.Request.Context(), currentActor(c), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
