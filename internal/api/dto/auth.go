package dto

import (
	"strings"

	"github.com/hugh/planit/internal/accounts"
	"github.com/hugh/planit/internal/api/validation"
	"github.com/hugh/planit/internal/auth"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	DOB      string `json:"dob"`
	GoogleID string `json:"googleId"`
	ImageURL string `json:"imageUrl"`
	IDToken  string `json:"idToken"`
}

func (r RegisterRequest) Validate() map[string]string {
	errors := make(fieldErrors)

	if strings.TrimSpace(r.Username) == "" {
		errors["username"] = "Username is required"
	}
	if r.Email == "" {
		errors["email"] = "Email is required"
	} else if !validation.IsValidEmail(strings.TrimSpace(r.Email)) {
		errors["email"] = "Invalid email format"
	}
	if r.GoogleID == "" && r.IDToken == "" {
		if r.Password == "" {
			errors["password"] = "Password is required for non-Google users"
		} else if ok, msg := validation.IsValidPassword(r.Password); !ok {
			errors["password"] = msg
		}
	}
	errors.date("dob", r.DOB)

	return errors
}

func (r RegisterRequest) Input() auth.RegisterInput {
	return auth.RegisterInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
		DOB:      r.DOB,
		GoogleID: r.GoogleID,
		ImageURL: r.ImageURL,
		IDToken:  r.IDToken,
	}
}

type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	GoogleID   string `json:"googleId"`
	IDToken    string `json:"idToken"`
	ImageURL   string `json:"imageUrl"`
	RememberMe bool   `json:"rememberMe"`
}

func (r LoginRequest) Validate() map[string]string {
	errors := make(fieldErrors)

	if r.Email == "" {
		errors["email"] = "Email is required"
	}
	google := r.GoogleID != "" || r.IDToken != ""
	if google && r.Password != "" {
		errors["password"] = "Cannot provide both Google ID and password"
	}
	if !google && r.Password == "" {
		errors["password"] = "Either Google authentication or password is required"
	}

	return errors
}

func (r LoginRequest) Input() auth.LoginInput {
	return auth.LoginInput{
		Email:      r.Email,
		Password:   r.Password,
		GoogleID:   r.GoogleID,
		IDToken:    r.IDToken,
		ImageURL:   r.ImageURL,
		RememberMe: r.RememberMe,
	}
}

type AuthResponse struct {
	Response
	UserID string             `json:"userId"`
	Token  string             `json:"token"`
	User   *accounts.UserView `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() map[string]string {
	errors := make(fieldErrors)

	if r.CurrentPassword == "" {
		errors["currentPassword"] = "Current password is required"
	}
	if r.NewPassword == "" {
		errors["newPassword"] = "New password is required"
	} else if ok, msg := validation.IsValidPassword(r.NewPassword); !ok {
		errors["newPassword"] = msg
	}

	return errors
}
