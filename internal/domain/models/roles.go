// internal/domain/models/roles.go
package models

// Account roles. The set is closed: nothing outside these three values is
// accepted on create or update.
const (
	RoleAdmin             = "admin"
	RoleBusinessDeveloper = "business_developer"
	RoleUser              = "user"
)

// AllRoles lists the accepted roles in display order.
var AllRoles = []string{RoleAdmin, RoleBusinessDeveloper, RoleUser}

// roleLabels maps stored role values to their human-readable labels.
var roleLabels = map[string]string{
	RoleAdmin:             "Admin",
	RoleBusinessDeveloper: "Business Developer",
	RoleUser:              "User",
}

// IsValidRole reports whether role is one of the accepted values.
func IsValidRole(role string) bool {
	_, ok := roleLabels[role]
	return ok
}

// RoleLabel returns the display label for a role. Unrecognized values pass
// through unchanged so stale data renders rather than crashing.
func RoleLabel(role string) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return role
}
