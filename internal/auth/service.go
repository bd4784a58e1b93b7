package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/pkg/clock"
	"gorm.io/gorm"
)

const MinPasswordLength = 6

type Service struct {
	db     *gorm.DB
	jwt    *JWTService
	google GoogleVerifier
}

// NewService builds the auth service. google may be nil, in which case a
// caller-supplied Google id is trusted as is.
func NewService(db *gorm.DB, jwt *JWTService, google GoogleVerifier) *Service {
	return &Service{db: db, jwt: jwt, google: google}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	DOB      string
	GoogleID string
	ImageURL string
	IDToken  string
}

type LoginInput struct {
	Email      string
	Password   string
	GoogleID   string
	IDToken    string
	ImageURL   string
	RememberMe bool
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" {
		return nil, apperr.Validation("username and email are required")
	}

	googleID, picture, err := s.googleIdentity(ctx, input.IDToken, input.GoogleID, input.Email)
	if err != nil {
		return nil, err
	}
	if input.ImageURL == "" {
		input.ImageURL = picture
	}
	if googleID == "" && input.Password == "" {
		return nil, apperr.Validation("password is required for non-Google users")
	}

	dob, err := clock.ParseDatePtr(&input.DOB)
	if err != nil {
		return nil, apperr.Validation("invalid date format for date of birth")
	}

	user := models.User{
		Name:  input.Username,
		Email: input.Email,
		DOB:   dob,
	}
	if googleID != "" {
		user.GoogleID = &googleID
		if input.ImageURL != "" {
			user.ProfilePicture = &input.ImageURL
		}
	} else {
		hash, err := HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = &hash
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("Email already registered")
		}

		if user.GoogleID != nil {
			if err := tx.Model(&models.User{}).Where("google_id = ?", *user.GoogleID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return apperr.Conflict("Google account already registered")
			}
		}

		return tx.Create(&user).Error
	})
	if err != nil {
		// a concurrent registration loses on the unique index
		return nil, apperr.FromStore(err)
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, false)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  &user,
	}, nil
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	input.Email = strings.TrimSpace(input.Email)
	if input.Email == "" {
		return nil, apperr.Validation("email is required")
	}

	googleID, picture, err := s.googleIdentity(ctx, input.IDToken, input.GoogleID, input.Email)
	if err != nil {
		return nil, err
	}
	if input.ImageURL == "" {
		input.ImageURL = picture
	}
	if googleID != "" && input.Password != "" {
		return nil, apperr.Validation("cannot provide both Google ID and password")
	}
	if googleID == "" && input.Password == "" {
		return nil, apperr.Validation("either Google authentication or password is required")
	}

	var user models.User
	db := s.db.WithContext(ctx)

	if googleID != "" {
		if err := db.Where("google_id = ?", googleID).First(&user).Error; err != nil {
			return nil, notRegistered(err)
		}
		if input.ImageURL != "" && user.ProfilePicture == nil {
			res := db.Model(&models.User{}).
				Where("id = ? AND profile_picture IS NULL", user.ID).
				Update("profile_picture", input.ImageURL)
			if res.Error != nil {
				return nil, apperr.FromStore(res.Error)
			}
			if res.RowsAffected > 0 {
				user.ProfilePicture = &input.ImageURL
			}
		}
	} else {
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			return nil, notRegistered(err)
		}
		if user.PasswordHash == nil || !CheckPassword(input.Password, *user.PasswordHash) {
			return nil, apperr.Auth("invalid credentials")
		}
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, input.RememberMe)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token: token,
		User:  &user,
	}, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if current == "" || next == "" {
		return apperr.Validation("current password and new password are required")
	}
	if len(next) < MinPasswordLength {
		return apperr.Validation("password must be at least %d characters long", MinPasswordLength)
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsGoogleUser() {
		return apperr.Validation("cannot change password for Google users")
	}
	if user.PasswordHash == nil || !CheckPassword(current, *user.PasswordHash) {
		return apperr.Auth("current password is incorrect")
	}

	hash, err := HashPassword(next)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("password_hash", hash).Error
	return apperr.FromStore(err)
}

func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user")
		}
		return nil, apperr.FromStore(err)
	}
	return &user, nil
}

// googleIdentity returns the external key to use for this request. A supplied
// ID token wins over a bare Google id when a verifier is configured.
func (s *Service) googleIdentity(ctx context.Context, idToken, googleID, email string) (string, string, error) {
	if idToken == "" || s.google == nil {
		return strings.TrimSpace(googleID), "", nil
	}

	id, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return "", "", apperr.Auth("invalid Google credential")
	}
	if id.Email != "" && !strings.EqualFold(id.Email, email) {
		return "", "", apperr.Auth("Google account email does not match")
	}
	return id.Subject, id.Picture, nil
}

func notRegistered(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Auth("Account is not registered")
	}
	return apperr.FromStore(err)
}
