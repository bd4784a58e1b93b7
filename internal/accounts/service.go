// Package accounts reads and edits user profiles and removes whole accounts.
package accounts

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/identity"
	"github.com/hugh/planit/pkg/clock"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// UserView is the public shape of a user. Credentials never leave the store.
type UserView struct {
	ID             uuid.UUID `json:"userid"`
	Name           string    `json:"username"`
	Email          string    `json:"useremail"`
	DOB            *string   `json:"userdob"`
	Bio            string    `json:"userbio"`
	ProfilePicture *string   `json:"userprofilepicture"`
	IsGoogleUser   bool      `json:"isgoogleuser"`
}

func NewUserView(u *models.User) *UserView {
	return &UserView{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		DOB:            clock.FormatDate(u.DOB),
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		IsGoogleUser:   u.IsGoogleUser(),
	}
}

// ProfileInput replaces the editable profile fields. ProfilePicture is
// tri-state: nil clears the picture, an empty string keeps it, anything else
// replaces it.
type ProfileInput struct {
	Username       string
	Bio            string
	DOB            *clock.Date
	ProfilePicture *string
}

func (s *Service) GetUser(ctx context.Context, caller identity.Caller) (*UserView, error) {
	user, err := identity.ResolveUser(ctx, s.db, caller)
	if err != nil {
		return nil, err
	}
	return NewUserView(user), nil
}

func (s *Service) GetUserByEmail(ctx context.Context, email string) (*UserView, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.Validation("email is required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.FromStore(err)
	}
	return NewUserView(&user), nil
}

func (s *Service) UpdateProfile(ctx context.Context, caller identity.Caller, in ProfileInput) (*UserView, error) {
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		return nil, apperr.Validation("username is required")
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		id, err := identity.Resolve(ctx, tx, caller)
		if err != nil {
			return err
		}

		columns := []string{"name", "bio", "dob"}
		if in.ProfilePicture == nil || *in.ProfilePicture != "" {
			columns = append(columns, "profile_picture")
		}
		err = tx.Model(&models.User{}).
			Where("id = ?", id).
			Select(columns).
			Updates(models.User{
				Name:           in.Username,
				Bio:            in.Bio,
				DOB:            in.DOB,
				ProfilePicture: in.ProfilePicture,
			}).Error
		if err != nil {
			return err
		}

		user = &models.User{}
		return tx.First(user, "id = ?", id).Error
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	s.logger.Info("profile updated", "user_id", user.ID)
	return NewUserView(user), nil
}
