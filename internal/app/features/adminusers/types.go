package adminusers

import (
	"time"

	"github.com/vantagesoft/vantagehub/internal/app/system/authz"
	"github.com/vantagesoft/vantagehub/internal/app/system/normalize"
	"github.com/vantagesoft/vantagehub/internal/domain/models"
)

// PasswordPlaceholder is the eight-bullet string admin clients show in
// the edit form's password field to mean "unchanged". It is never a
// real credential and is filtered out before any password handling.
const PasswordPlaceholder = "••••••••"

// userPayload is the request body for create and update.
type userPayload struct {
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Role        string              `json:"role"`
	IsActive    *bool               `json:"isActive"`
	Permissions *permissionsPayload `json:"permissions"`
	Password    string              `json:"password"`
}

type permissionsPayload struct {
	Capabilities []string `json:"capabilities"`
}

// userResponse is the wire shape of a user. The password hash never
// leaves the store layer.
type userResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Email       string              `json:"email"`
	Role        string              `json:"role"`
	RoleLabel   string              `json:"roleLabel"`
	IsActive    bool                `json:"isActive"`
	Permissions *permissionsPayload `json:"permissions"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func toResponse(u models.User) userResponse {
	resp := userResponse{
		ID:        u.ID.Hex(),
		Name:      u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		RoleLabel: models.RoleLabel(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Permissions != nil {
		resp.Permissions = &permissionsPayload{Capabilities: u.Permissions.Capabilities}
	}
	return resp
}

// overridesFromPayload keeps only known, normalized capabilities.
// A nil payload or an empty capability list means "role defaults only".
func overridesFromPayload(p *permissionsPayload) *models.PermissionOverrides {
	if p == nil {
		return nil
	}
	var caps []string
	for _, c := range p.Capabilities {
		c = normalize.Capability(c)
		if authz.IsKnownCapability(c) {
			caps = append(caps, c)
		}
	}
	if len(caps) == 0 {
		return nil
	}
	return &models.PermissionOverrides{Capabilities: caps}
}
