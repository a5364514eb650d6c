package adminusers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/app/system/authz"
	"github.com/vantagesoft/vantagehub/internal/app/system/httpjson"
	"github.com/vantagesoft/vantagehub/internal/app/system/inputval"
	"github.com/vantagesoft/vantagehub/internal/app/system/normalize"
	"github.com/vantagesoft/vantagehub/internal/app/system/timeouts"
	"github.com/vantagesoft/vantagehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// editUserInput defines validation rules for updating a user.
type editUserInput struct {
	Name  string `validate:"required,max=200" label:"Name"`
	Email string `validate:"required,email,max=254" label:"Email"`
	Role  string `validate:"required,oneof=admin business_developer user" label:"Role"`
}

// HandleUpdate updates a user from a JSON payload. An empty or
// masked-placeholder password leaves the stored hash untouched; any
// other password replaces it wholesale.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(r, authz.CapUsersEdit) {
		httpjson.Forbidden(w)
		return
	}

	actorRole, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	uid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid user ID")
		return
	}

	var payload userPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}

	name := normalize.Name(payload.Name)
	email := normalize.Email(payload.Email)
	role := normalize.Role(payload.Role)

	var newPassword *string
	if p := payload.Password; p != "" && p != PasswordPlaceholder {
		if utf8.RuneCountInString(p) < 8 {
			httpjson.BadRequest(w, "Password must be at least 8 characters")
			return
		}
		newPassword = &p
	}

	input := editUserInput{Name: name, Email: email, Role: role}
	if result := inputval.Validate(input); result.HasErrors() {
		httpjson.BadRequest(w, result.First())
		return
	}

	isActive := true
	if payload.IsActive != nil {
		isActive = *payload.IsActive
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	store := userstore.New(h.DB)

	current, err := store.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.NotFound(w, "User not found")
			return
		}
		h.Log.Error("load user failed", zap.Error(err))
		httpjson.ServerError(w, "Failed to update user")
		return
	}

	isSelf := actorID == uid
	if isSelf && (role != current.Role || !isActive) {
		httpjson.BadRequest(w, "You cannot change your own role or status")
		return
	}

	// Keep at least one active admin able to sign in.
	if current.Role == models.RoleAdmin && current.IsActive &&
		(role != models.RoleAdmin || !isActive) {
		admins, err := store.CountActiveAdmins(ctx)
		if err != nil {
			h.Log.Error("count active admins failed", zap.Error(err))
			httpjson.ServerError(w, "Failed to update user")
			return
		}
		if admins <= 1 {
			httpjson.BadRequest(w, "You cannot remove the last active admin")
			return
		}
	}

	taken, err := store.EmailExistsForOther(ctx, email, uid)
	if err != nil {
		h.Log.Error("email lookup failed", zap.Error(err))
		httpjson.ServerError(w, "Failed to update user")
		return
	}
	if taken {
		httpjson.Conflict(w, "Email already in use")
		return
	}

	upd := userstore.Update{
		FullName:    name,
		Email:       email,
		Role:        role,
		IsActive:    isActive,
		Permissions: overridesFromPayload(payload.Permissions),
		Password:    newPassword,
	}

	if err := store.Apply(ctx, uid, upd); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.NotFound(w, "User not found")
			return
		}
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Conflict(w, "Email already in use")
			return
		}
		h.Log.Error("update user failed", zap.Error(err))
		httpjson.ServerError(w, "Failed to update user")
		return
	}

	h.AuditLog.UserUpdated(ctx, r, actorID, uid, actorRole,
		changedFields(current, upd))
	if newPassword != nil {
		h.AuditLog.PasswordChanged(ctx, r, actorID, uid, actorRole)
	}
	if err := h.Activity.RecordAdminAction(ctx, actorID, h.Sessions.SessionID(r), map[string]any{
		"action": "user_updated",
		"target": uid.Hex(),
	}); err != nil {
		h.Log.Warn("record admin action failed", zap.Error(err))
	}

	updated, err := store.GetByID(ctx, uid)
	if err != nil {
		h.Log.Error("reload user failed", zap.Error(err))
		httpjson.Message(w, "User updated successfully")
		return
	}

	httpjson.MessageWithUser(w, http.StatusOK, "User updated successfully", toResponse(*updated))
}

// changedFields lists the updated field names for the audit trail.
func changedFields(before *models.User, upd userstore.Update) string {
	var fields []string
	if before.FullName != upd.FullName {
		fields = append(fields, "name")
	}
	if before.Email != upd.Email {
		fields = append(fields, "email")
	}
	if before.Role != upd.Role {
		fields = append(fields, "role")
	}
	if before.IsActive != upd.IsActive {
		fields = append(fields, "is_active")
	}
	if upd.Password != nil {
		fields = append(fields, "password")
	}
	if fields == nil {
		return "none"
	}
	return strings.Join(fields, ",")
}
