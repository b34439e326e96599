package servicerequest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

var ErrNotFound = errors.New("service request not found")

type ListFilter struct {
	ClientID   *uuid.UUID
	ProviderID *uuid.UUID
	Statuses   []Status
}

type Repository interface {
	// -------- Leitura --------
	GetRequest(
		ctx context.Context,
		id uuid.UUID,
	) (*models.ServiceRequest, error)

	ListRequests(
		ctx context.Context,
		filter ListFilter,
	) ([]models.ServiceRequest, error)

	// -------- Criação --------
	CreateRequest(
		ctx context.Context,
		req *models.ServiceRequest,
	) error

	// -------- Mudança de estado (compare-and-swap) --------
	ConditionalUpdateRequestStatus(
		ctx context.Context,
		u StatusUpdate,
	) (bool, error)

	// DeleteRequest só apaga se o status atual estiver em allowed.
	DeleteRequest(
		ctx context.Context,
		id uuid.UUID,
		allowed []Status,
	) (bool, error)

	// -------- Jobs --------
	ListRequestsStartingBetween(
		ctx context.Context,
		statuses []Status,
		from time.Time,
		to time.Time,
	) ([]models.ServiceRequest, error)

	ListPendingPastDeadline(
		ctx context.Context,
		now time.Time,
	) ([]models.ServiceRequest, error)
}
