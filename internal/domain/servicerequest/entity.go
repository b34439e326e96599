package servicerequest

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

// StatusUpdate é uma transição condicional: o repositório só a aplica se o
// status persistido ainda estiver em From (compare-and-swap).
type StatusUpdate struct {
	RequestID uuid.UUID
	From      []Status
	To        Status
	At        time.Time

	CompletionPin *string
	CancelledBy   *string
}

// ===============================
// Domain Actions
// ===============================

func Accept(req *models.ServiceRequest, now time.Time) (StatusUpdate, error) {
	if err := CanAccept(Status(req.Status)); err != nil {
		return StatusUpdate{}, err
	}
	return transition(req, now, StatusAwaitingDeposit, StatusPendingApproval), nil
}

func Reject(req *models.ServiceRequest, now time.Time) (StatusUpdate, error) {
	if err := CanReject(Status(req.Status)); err != nil {
		return StatusUpdate{}, err
	}
	return transition(req, now, StatusRejected, StatusPendingApproval), nil
}

// ConfirmDeposit gera o PIN de conclusão que o cliente apresentará no dia.
func ConfirmDeposit(req *models.ServiceRequest, now time.Time, pin string) (StatusUpdate, error) {
	if err := CanConfirmDeposit(Status(req.Status)); err != nil {
		return StatusUpdate{}, err
	}
	u := transition(req, now, StatusConfirmed, StatusAwaitingDeposit)
	u.CompletionPin = &pin
	return u, nil
}

func Start(req *models.ServiceRequest, now time.Time) (StatusUpdate, error) {
	if err := CanStart(Status(req.Status)); err != nil {
		return StatusUpdate{}, err
	}
	return transition(req, now, StatusInProgress, StatusConfirmed), nil
}

func Deliver(req *models.ServiceRequest, now time.Time) (StatusUpdate, error) {
	if err := CanValidatePin(Status(req.Status)); err != nil {
		return StatusUpdate{}, err
	}
	return transition(req, now, StatusDelivered, PinStatuses...), nil
}

func Settle(req *models.ServiceRequest, now time.Time) (StatusUpdate, error) {
	if err := CanSettle(Status(req.Status)); err != nil {
		return StatusUpdate{}, err
	}
	return transition(req, now, StatusCompleted, StatusDelivered), nil
}

func Cancel(req *models.ServiceRequest, now time.Time, by string) (StatusUpdate, error) {
	if err := CanCancel(Status(req.Status)); err != nil {
		return StatusUpdate{}, err
	}
	u := transition(req, now, StatusCancelled, ActiveStatuses...)
	u.CancelledBy = &by
	return u, nil
}

func Abandon(req *models.ServiceRequest, now time.Time) (StatusUpdate, error) {
	if err := CanAbandon(Status(req.Status)); err != nil {
		return StatusUpdate{}, err
	}
	return transition(req, now, StatusAbandoned, StatusPendingApproval), nil
}

func transition(req *models.ServiceRequest, now time.Time, to Status, from ...Status) StatusUpdate {
	return StatusUpdate{
		RequestID: req.ID,
		From:      from,
		To:        to,
		At:        now,
	}
}

// Apply reflete a transição no modelo em memória, incluindo o carimbo de
// tempo correspondente ao novo status.
func Apply(req *models.ServiceRequest, u StatusUpdate) {
	at := u.At
	req.Status = string(u.To)
	req.UpdatedAt = at

	switch u.To {
	case StatusAwaitingDeposit:
		req.AcceptedAt = &at
	case StatusRejected:
		req.RejectedAt = &at
	case StatusConfirmed:
		req.DepositPaidAt = &at
	case StatusInProgress:
		req.StartedAt = &at
	case StatusDelivered:
		req.PinValidatedAt = &at
	case StatusCompleted:
		req.SettledAt = &at
	case StatusCancelled:
		req.CancelledAt = &at
	case StatusAbandoned:
		req.AbandonedAt = &at
	}

	if u.CompletionPin != nil {
		pin := *u.CompletionPin
		req.CompletionPin = &pin
	}
	if u.CancelledBy != nil {
		by := *u.CancelledBy
		req.CancelledBy = &by
	}
}
