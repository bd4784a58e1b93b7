package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hugh/planit/internal/accounts"
	"github.com/hugh/planit/internal/api/dto"
	"github.com/hugh/planit/internal/auth"
	"github.com/hugh/planit/internal/identity"
	"gorm.io/gorm"
)

type UserHandler struct {
	db          *gorm.DB
	accounts    *accounts.Service
	authService auth.Authenticator
}

func NewUserHandler(db *gorm.DB, accountService *accounts.Service, authService auth.Authenticator) *UserHandler {
	return &UserHandler{db: db, accounts: accountService, authService: authService}
}

// Get looks a user up by local id or Google subject.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "Failed to fetch user", err)
		return
	}

	user, err := h.accounts.GetUser(r.Context(), caller)
	if err != nil {
		writeError(w, r, "Failed to fetch user", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UserResponse{Response: dto.OK("User fetched successfully"), User: user})
}

func (h *UserHandler) GetByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := h.accounts.GetUserByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		writeError(w, r, "Failed to fetch user", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UserResponse{Response: dto.OK("User fetched successfully"), User: user})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "Failed to update profile", err)
		return
	}

	var req dto.UpdateProfileRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	user, err := h.accounts.UpdateProfile(r.Context(), caller, req.Input())
	if err != nil {
		writeError(w, r, "Failed to update profile", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UserResponse{Response: dto.OK("Profile updated successfully"), User: user})
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	userID, err := resolveCaller(r, h.db, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "Failed to change password", err)
		return
	}
	if err := h.authService.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeError(w, r, "Failed to change password", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Password changed successfully"))
}

// Delete removes the account and everything that refers to it.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := identity.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "Failed to delete account", err)
		return
	}

	if err := h.accounts.DeleteUser(r.Context(), caller); err != nil {
		writeError(w, r, "Failed to delete account", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Account deleted successfully"))
}
