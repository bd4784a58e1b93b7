package dto

import (
	"strings"

	"github.com/hugh/planit/internal/accounts"
	"github.com/hugh/planit/internal/api/validation"
)

// UpdateProfileRequest mirrors accounts.ProfileInput. A missing or null
// profilePicture clears the picture and an empty string keeps it.
type UpdateProfileRequest struct {
	Username       string  `json:"username"`
	Bio            string  `json:"bio"`
	DOB            string  `json:"dob"`
	ProfilePicture *string `json:"profilePicture"`
}

func (r UpdateProfileRequest) Validate() map[string]string {
	errors := make(fieldErrors)

	if strings.TrimSpace(r.Username) == "" {
		errors["username"] = "Username is required"
	}
	errors.date("dob", r.DOB)
	if r.ProfilePicture != nil && *r.ProfilePicture != "" && !validation.IsValidURL(*r.ProfilePicture) {
		errors["profilePicture"] = "Must be an http or https URL"
	}

	return errors
}

func (r UpdateProfileRequest) Input() accounts.ProfileInput {
	return accounts.ProfileInput{
		Username:       r.Username,
		Bio:            validation.TruncateString(validation.SanitizeString(r.Bio), validation.MaxBioLength),
		DOB:            parseDatePtr(r.DOB),
		ProfilePicture: r.ProfilePicture,
	}
}

type UserResponse struct {
	Response
	User *accounts.UserView `json:"user"`
}
