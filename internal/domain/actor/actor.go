package actor

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleClient, RoleProvider, RoleAdmin:
		return Role(raw), true
	}
	return "", false
}

// Actor é quem executa a ação, extraído do token do backend.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsClientOf / IsProviderOf exigem papel e vínculo com a solicitação.
func (a Actor) IsClientOf(req *models.ServiceRequest) bool {
	return a.Role == RoleClient && req.ClientID == a.ID
}

func (a Actor) IsProviderOf(req *models.ServiceRequest) bool {
	return a.Role == RoleProvider && req.ProviderID == a.ID
}

func (a Actor) IsPartyOf(req *models.ServiceRequest) bool {
	return a.IsClientOf(req) || a.IsProviderOf(req)
}

// CanSee: partes da solicitação e administradores.
func (a Actor) CanSee(req *models.ServiceRequest) bool {
	return a.IsAdmin() || a.IsPartyOf(req)
}
