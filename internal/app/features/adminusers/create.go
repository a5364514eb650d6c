package adminusers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"unicode/utf8"

	userstore "github.com/vantagesoft/vantagehub/internal/app/store/users"
	"github.com/vantagesoft/vantagehub/internal/app/system/authz"
	"github.com/vantagesoft/vantagehub/internal/app/system/httpjson"
	"github.com/vantagesoft/vantagehub/internal/app/system/inputval"
	"github.com/vantagesoft/vantagehub/internal/app/system/normalize"
	"github.com/vantagesoft/vantagehub/internal/app/system/timeouts"
	"github.com/vantagesoft/vantagehub/internal/domain/models"
	"go.uber.org/zap"
)

// createUserInput defines validation rules for creating a user.
type createUserInput struct {
	Name  string `validate:"required,max=200" label:"Name"`
	Email string `validate:"required,email,max=254" label:"Email"`
	Role  string `validate:"required,oneof=admin business_developer user" label:"Role"`
}

// HandleCreate creates a user from a JSON payload. Password is
// mandatory on create and must be at least 8 characters.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !authz.Can(r, authz.CapUsersCreate) {
		httpjson.Forbidden(w)
		return
	}

	actorRole, _, actorID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Unauthorized(w)
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

	// The masked placeholder is a display artifact, never a credential.
	password := payload.Password
	if password == PasswordPlaceholder {
		password = ""
	}
	if password == "" {
		httpjson.BadRequest(w, "Password is required for new users")
		return
	}
	if utf8.RuneCountInString(password) < 8 {
		httpjson.BadRequest(w, "Password must be at least 8 characters")
		return
	}

	input := createUserInput{Name: name, Email: email, Role: role}
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

	exists, err := store.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, userstore.ErrNotFound) {
		h.Log.Error("email lookup failed", zap.Error(err))
		httpjson.ServerError(w, "Failed to create user")
		return
	}
	if exists != nil {
		httpjson.Conflict(w, "Email already in use")
		return
	}

	u := models.User{
		FullName:    name,
		Email:       email,
		Role:        role,
		IsActive:    isActive,
		Permissions: overridesFromPayload(payload.Permissions),
	}

	created, err := store.Create(ctx, u, password)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Conflict(w, "Email already in use")
			return
		}
		h.Log.Error("create user failed", zap.Error(err))
		httpjson.ServerError(w, "Failed to create user")
		return
	}

	h.AuditLog.UserCreated(ctx, r, actorID, created.ID, actorRole, created.Role, created.Email)
	if err := h.Activity.RecordAdminAction(ctx, actorID, h.Sessions.SessionID(r), map[string]any{
		"action": "user_created",
		"target": created.ID.Hex(),
	}); err != nil {
		h.Log.Warn("record admin action failed", zap.Error(err))
	}

	httpjson.MessageWithUser(w, http.StatusCreated, "User created successfully", toResponse(created))
}
