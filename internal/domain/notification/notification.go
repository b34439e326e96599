package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

const (
	KindRequestCreated   = "request_created"
	KindRequestAccepted  = "request_accepted"
	KindRequestRejected  = "request_rejected"
	KindDepositConfirmed = "deposit_confirmed"
	KindPinValidated     = "pin_validated"
	KindRequestCancelled = "request_cancelled"
	KindRequestAbandoned = "request_abandoned"
	KindEventReminder    = "event_reminder"
)

type Repository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	ListNotifications(ctx context.Context, userID uuid.UUID, limit int) ([]models.Notification, error)
}

var titles = map[string]string{
	KindRequestCreated:   "Nueva solicitud de servicio",
	KindRequestAccepted:  "Solicitud aceptada",
	KindRequestRejected:  "Solicitud rechazada",
	KindDepositConfirmed: "Anticipo confirmado",
	KindPinValidated:     "Servicio entregado",
	KindRequestCancelled: "Solicitud cancelada",
	KindRequestAbandoned: "Solicitud sin respuesta",
	KindEventReminder:    "Tu evento es pronto",
}

// New monta a notificação de uma solicitação para um destinatário.
func New(kind string, userID uuid.UUID, req *models.ServiceRequest, now time.Time) *models.Notification {
	requestID := req.ID
	return &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		RequestID: &requestID,
		Kind:      kind,
		Title:     titles[kind],
		Body:      body(kind, req),
		CreatedAt: now,
	}
}

func body(kind string, req *models.ServiceRequest) string {
	when := req.ServiceDatetime.Format("02/01/2006 15:04")

	switch kind {
	case KindRequestCreated:
		return fmt.Sprintf("Tienes una nueva solicitud para el %s.", when)
	case KindRequestAccepted:
		return fmt.Sprintf("Tu solicitud del %s fue aceptada. Paga el anticipo para reservar.", when)
	case KindRequestRejected:
		return fmt.Sprintf("Tu solicitud del %s fue rechazada.", when)
	case KindDepositConfirmed:
		return fmt.Sprintf("Reserva confirmada para el %s.", when)
	case KindPinValidated:
		return fmt.Sprintf("El servicio del %s fue validado. Ya puedes liquidar el saldo.", when)
	case KindRequestCancelled:
		return fmt.Sprintf("La solicitud del %s fue cancelada.", when)
	case KindRequestAbandoned:
		return fmt.Sprintf("La solicitud del %s expiró sin respuesta.", when)
	case KindEventReminder:
		return fmt.Sprintf("Tu evento comienza a las %s.", req.ServiceDatetime.Format("15:04"))
	default:
		return ""
	}
}
