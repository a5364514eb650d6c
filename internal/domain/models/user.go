// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an internal account with access to the admin panel.
//
// NOTE:
//   - PasswordHash is never serialized to JSON; the API layer builds its
//     own response DTOs from this struct.
//   - Permissions is nil for almost every account; a non-nil value grants
//     extra capabilities on top of the role defaults.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FullName   string             `bson:"full_name"`
	Email      string             `bson:"email"` // lowercase, unique
	Role       string             `bson:"role"`  // admin | business_developer | user
	IsActive   bool               `bson:"is_active"`
	AuthMethod string             `bson:"auth_method,omitempty"` // password | google

	PasswordHash []byte `bson:"password_hash,omitempty"`

	// Permissions holds per-user capability overrides. Nil means the role
	// defaults apply unchanged.
	Permissions *PermissionOverrides `bson:"permissions,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// PermissionOverrides grants additional capabilities to a single user.
// Overrides are additive only; they never remove a role-default capability.
type PermissionOverrides struct {
	Capabilities []string `bson:"capabilities" json:"capabilities"`
}
