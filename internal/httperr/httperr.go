package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// ======================================================
// MAPEAMENTO DE REGRAS DE NEGÓCIO
// ======================================================

type businessMapping struct {
	status  int
	message string
}

var businessStatus = map[string]businessMapping{
	"request_not_found":    {http.StatusNotFound, "Solicitud no encontrada."},
	"block_not_found":      {http.StatusNotFound, "Bloqueo no encontrado."},
	"forbidden":            {http.StatusForbidden, "No tienes permiso para esta acción."},
	"wrong_state":          {http.StatusConflict, "La solicitud no está en un estado válido para esta acción."},
	"not_service_day":      {http.StatusConflict, "La validación solo está disponible el día del evento."},
	"date_occupied":        {http.StatusConflict, "La fecha tiene una solicitud activa."},
	"date_unavailable":     {http.StatusConflict, "El proveedor no está disponible en esa fecha."},
	"date_already_blocked": {http.StatusConflict, "La fecha ya está bloqueada."},
	"not_deletable":        {http.StatusConflict, "Solo se pueden eliminar solicitudes finalizadas."},
	"incorrect_pin":        {http.StatusUnprocessableEntity, "PIN incorrecto."},
	"pin_not_set":          {http.StatusConflict, "La solicitud no tiene PIN asignado."},
	"invalid_pin_format":   {http.StatusBadRequest, "El PIN debe tener 4 dígitos."},
	"invalid_date":         {http.StatusBadRequest, "Fecha inválida."},
	"date_in_past":         {http.StatusBadRequest, "No se puede modificar una fecha pasada."},
	"service_in_past":      {http.StatusBadRequest, "La fecha del servicio ya pasó."},
	"invalid_amount":       {http.StatusBadRequest, "Monto inválido."},
	"response_expired":     {http.StatusConflict, "El plazo de respuesta ya venció."},
}

// FromError escreve a resposta adequada para erros de negócio e trata o
// resto como falha interna genérica.
func FromError(c *gin.Context, err error) {
	code, ok := BusinessCode(err)
	if !ok {
		Internal(c, "internal_error", "Error interno. Intenta de nuevo.")
		return
	}

	if m, found := businessStatus[code]; found {
		Write(c, m.status, code, m.message)
		return
	}

	BadRequest(c, code, "Solicitud inválida.")
}
