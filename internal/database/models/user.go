package models

import "github.com/hugh/planit/pkg/clock"

// User is an account. Exactly one of PasswordHash and GoogleID is set: the two
// login paths are mutually exclusive.
type User struct {
	Base
	Name           string      `gorm:"not null;index" json:"username"`
	Email          string      `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   *string     `json:"-"`
	GoogleID       *string     `gorm:"uniqueIndex" json:"-"`
	DOB            *clock.Date `gorm:"type:date" json:"dob,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	ProfilePicture *string     `json:"profile_picture,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsGoogleUser() bool {
	return u.GoogleID != nil
}
