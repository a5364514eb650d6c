// Package authz is the permission oracle for the admin panel.
//
// Every action is named by a capability. Roles carry a default capability
// set, and individual users may carry additive overrides
// (models.PermissionOverrides). The effective set is the union of the two;
// overrides never subtract.
package authz

import (
	"net/http"
	"sort"

	"github.com/vantagesoft/vantagehub/internal/app/system/auth"
	"github.com/vantagesoft/vantagehub/internal/app/system/normalize"
	"github.com/vantagesoft/vantagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Capabilities checked before exposing or allowing an action.
const (
	CapUsersView      = "users.view"
	CapUsersCreate    = "users.create"
	CapUsersEdit      = "users.edit"
	CapUsersDelete    = "users.delete"
	CapActivitiesView = "activities.view"
)

// allCapabilities lists every known capability in display order.
var allCapabilities = []string{
	CapUsersView,
	CapUsersCreate,
	CapUsersEdit,
	CapUsersDelete,
	CapActivitiesView,
}

// roleDefaults maps each role to its default capability set.
var roleDefaults = map[string][]string{
	models.RoleAdmin: {
		CapUsersView, CapUsersCreate, CapUsersEdit, CapUsersDelete,
		CapActivitiesView,
	},
	models.RoleBusinessDeveloper: {
		CapUsersView, CapUsersCreate, CapUsersEdit, CapUsersDelete,
	},
	models.RoleUser: {},
}

// IsKnownCapability reports whether c names a capability this system
// understands. Unknown names in overrides are stored but never granted.
func IsKnownCapability(c string) bool {
	for _, known := range allCapabilities {
		if c == known {
			return true
		}
	}
	return false
}

// EffectiveCapabilities computes the sorted union of the role defaults and
// the user's overrides. Unknown override names are dropped.
func EffectiveCapabilities(role string, overrides *models.PermissionOverrides) []string {
	set := make(map[string]struct{})
	for _, c := range roleDefaults[normalize.Role(role)] {
		set[c] = struct{}{}
	}
	if overrides != nil {
		for _, c := range overrides.Capabilities {
			c = normalize.Capability(c)
			if IsKnownCapability(c) {
				set[c] = struct{}{}
			}
		}
	}

	caps := make([]string, 0, len(set))
	for c := range set {
		caps = append(caps, c)
	}
	sort.Strings(caps)
	return caps
}

// UserCtx returns the current user's role, name, ObjectID, and a found
// flag. ok=true guarantees a valid authenticated user with a parseable ID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session; fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return normalize.Role(user.Role), user.Name, userID, true
}

// Can reports whether the current request's user holds the capability.
func Can(r *http.Request, capability string) bool {
	user, ok := auth.CurrentUser(r)
	return ok && user.HasCapability(capability)
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleAdmin
}
