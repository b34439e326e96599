package handlers

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/eventos-marketplace/internal/audit"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store audit.Store
	loc   *time.Location
}

func NewAuditLogsHandler(store audit.Store, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	if page > math.MaxInt/limit {
		httperr.BadRequest(c, "invalid_request", "Página fuera de rango.")
		return
	}

	filter := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Período (dias civis no fuso local, "to" inclusivo)
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		if from, err := timezone.ParseDateKey(raw, h.loc); err == nil {
			filter.From = &from
		}
	}

	if raw := c.Query("to"); raw != "" {
		if to, err := timezone.ParseDateKey(raw, h.loc); err == nil {
			end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
			filter.To = &end
		}
	}

	logs, total, err := h.store.ListAuditLogs(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
