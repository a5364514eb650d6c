// internal/app/system/authz/actions.go
package authz

import (
	"github.com/vantagesoft/vantagehub/internal/app/system/auth"
	"github.com/vantagesoft/vantagehub/internal/domain/models"
)

// Row actions in presentation order.
const (
	ActionView       = "view"
	ActionEdit       = "edit"
	ActionDelete     = "delete"
	ActionActivities = "activities"
)

// RowActions computes the ordered list of actions the actor may take on a
// user row. It is a pure function of (actor capabilities, actor role,
// actor id, row id); the row's own role never widens access.
//
// Delete is omitted for the actor's own row, and the activities link is
// admin-only, matching the panel's fail-closed-by-omission policy.
func RowActions(actor *auth.SessionUser, rowUserID string) []string {
	if actor == nil {
		return nil
	}

	var actions []string
	if actor.HasCapability(CapUsersView) {
		actions = append(actions, ActionView)
	}
	if actor.HasCapability(CapUsersEdit) {
		actions = append(actions, ActionEdit)
	}
	if actor.HasCapability(CapUsersDelete) && actor.ID != rowUserID {
		actions = append(actions, ActionDelete)
	}
	if actor.Role == models.RoleAdmin && actor.HasCapability(CapActivitiesView) {
		actions = append(actions, ActionActivities)
	}
	return actions
}
