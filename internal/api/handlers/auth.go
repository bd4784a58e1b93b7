package handlers

import (
	"net/http"

	"github.com/hugh/planit/internal/accounts"
	"github.com/hugh/planit/internal/api/dto"
	"github.com/hugh/planit/internal/api/middleware"
	"github.com/hugh/planit/internal/auth"
)

type AuthHandler struct {
	authService auth.Authenticator
}

func NewAuthHandler(authService auth.Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	resp, err := h.authService.Register(r.Context(), req.Input())
	if err != nil {
		writeError(w, r, "Registration failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponse{
		Response: dto.OK("User registered successfully"),
		UserID:   resp.User.ID.String(),
		Token:    resp.Token,
		User:     accounts.NewUserView(resp.User),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	resp, err := h.authService.Login(r.Context(), req.Input())
	if err != nil {
		writeError(w, r, "Login failed", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Response: dto.OK("Login successful"),
		UserID:   resp.User.ID.String(),
		Token:    resp.Token,
		User:     accounts.NewUserView(resp.User),
	})
}

// Me returns the session user. It sits behind middleware.Auth.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.GetUserByID(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, "Failed to fetch user", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.UserResponse{
		Response: dto.OK("User fetched successfully"),
		User:     accounts.NewUserView(user),
	})
}
