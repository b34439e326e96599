package servicerequest

import "github.com/BruksfildServices01/eventos-marketplace/internal/httperr"

// ===============================
// Service Request Status
// ===============================

type Status string

const (
	StatusPendingApproval Status = "pendiente_aprobacion"
	StatusRejected        Status = "rechazada"
	StatusAwaitingDeposit Status = "esperando_anticipo"
	StatusConfirmed       Status = "reservado"
	StatusInProgress      Status = "en_progreso"
	StatusDelivered       Status = "entregado_pendiente_liq"
	StatusCompleted       Status = "finalizado"
	StatusCancelled       Status = "cancelada"
	StatusAbandoned       Status = "abandonada"
)

// ActiveStatuses ocupam a data do fornecedor no calendário.
var ActiveStatuses = []Status{
	StatusPendingApproval,
	StatusAwaitingDeposit,
	StatusConfirmed,
	StatusInProgress,
}

// PinStatuses precedem legitimamente a validação do PIN.
var PinStatuses = []Status{
	StatusConfirmed,
	StatusInProgress,
}

// TerminalStatuses podem ser apagadas do histórico.
var TerminalStatuses = []Status{
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
	StatusAbandoned,
}

var labels = map[Status]string{
	StatusPendingApproval: "Pendiente de aprobación",
	StatusRejected:        "Rechazada",
	StatusAwaitingDeposit: "Esperando anticipo",
	StatusConfirmed:       "Reservado",
	StatusInProgress:      "En progreso",
	StatusDelivered:       "Entregado, pendiente de liquidación",
	StatusCompleted:       "Finalizado",
	StatusCancelled:       "Cancelada",
	StatusAbandoned:       "Abandonada",
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	_, ok := labels[s]
	return s, ok
}

func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

func (s Status) In(set ...Status) bool {
	for _, candidate := range set {
		if s == candidate {
			return true
		}
	}
	return false
}

func (s Status) IsActive() bool {
	return s.In(ActiveStatuses...)
}

func (s Status) IsTerminal() bool {
	return s.In(TerminalStatuses...)
}

// ===============================
// Validations
// ===============================

func requireStatus(current Status, allowed ...Status) error {
	if !current.In(allowed...) {
		return httperr.ErrBusiness("wrong_state")
	}
	return nil
}

// CanAccept / CanReject: só enquanto o fornecedor ainda não respondeu.
func CanAccept(current Status) error {
	return requireStatus(current, StatusPendingApproval)
}

func CanReject(current Status) error {
	return requireStatus(current, StatusPendingApproval)
}

func CanConfirmDeposit(current Status) error {
	return requireStatus(current, StatusAwaitingDeposit)
}

func CanStart(current Status) error {
	return requireStatus(current, StatusConfirmed)
}

func CanValidatePin(current Status) error {
	return requireStatus(current, PinStatuses...)
}

func CanSettle(current Status) error {
	return requireStatus(current, StatusDelivered)
}

// CanCancel vale para qualquer parte enquanto a solicitação estiver ativa.
func CanCancel(current Status) error {
	return requireStatus(current, ActiveStatuses...)
}

func CanAbandon(current Status) error {
	return requireStatus(current, StatusPendingApproval)
}

func CanDelete(current Status) error {
	if !current.IsTerminal() {
		return httperr.ErrBusiness("not_deletable")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPendingApproval
}
