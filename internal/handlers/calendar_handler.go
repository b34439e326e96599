package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/calendar"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httpresp"
	usecase "github.com/BruksfildServices01/eventos-marketplace/internal/usecase/calendar"
)

// ======================================================
// HANDLER
// ======================================================

type CalendarHandler struct {
	month  *usecase.GetMonthAvailability
	toggle *usecase.ToggleBlock
	loc    *time.Location
	now    func() time.Time
}

func NewCalendarHandler(
	month *usecase.GetMonthAvailability,
	toggle *usecase.ToggleBlock,
	loc *time.Location,
) *CalendarHandler {
	return &CalendarHandler{
		month:  month,
		toggle: toggle,
		loc:    loc,
		now:    time.Now,
	}
}

type ToggleBody struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

// yearMonth lê ?year=&month=; ausentes valem o mês corrente no fuso local.
func (h *CalendarHandler) yearMonth(c *gin.Context) (int, int, bool) {
	now := h.now().In(h.loc)
	year, month := now.Year(), int(now.Month())

	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return 0, 0, false
		}
		year = v
	}
	if raw := c.Query("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return 0, 0, false
		}
		month = v
	}
	return year, month, true
}

func (h *CalendarHandler) monthFor(c *gin.Context, providerID uuid.UUID) ([]calendar.DayAvailability, bool) {
	year, month, ok := h.yearMonth(c)
	if !ok {
		return nil, false
	}

	days, err := h.month.Execute(c.Request.Context(), providerID, year, month)
	if err != nil {
		fail(c, err)
		return nil, false
	}
	return days, true
}

// ======================================================
// ROUTES
// ======================================================

// ProviderMonth é público: o cliente consulta antes de solicitar.
func (h *CalendarHandler) ProviderMonth(c *gin.Context) {
	providerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}
	days, ok := h.monthFor(c, providerID)
	if !ok {
		return
	}
	httpresp.List(c, calendar.PublicMonth(days))
}

func (h *CalendarHandler) MyMonth(c *gin.Context) {
	days, ok := h.monthFor(c, currentActor(c).ID)
	if !ok {
		return
	}
	httpresp.List(c, days)
}

func (h *CalendarHandler) Toggle(c *gin.Context) {
	var body ToggleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	res, err := h.toggle.Execute(
		c.Request.Context(),
		currentActor(c),
		strings.TrimSpace(body.Date),
		strings.TrimSpace(body.Reason),
	)
	if err != nil {
		fail(c, err)
		return
	}
	httpresp.OK(c, res)
}
