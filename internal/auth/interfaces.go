package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/database/models"
)

// Authenticator defines the interface for user authentication operations.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, input LoginInput) (*AuthResponse, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	GenerateToken(userID uuid.UUID, email string, rememberMe bool) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// GoogleVerifier checks a Google ID token and returns the identity it carries.
type GoogleVerifier interface {
	Verify(ctx context.Context, token string) (*GoogleIdentity, error)
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator  = (*Service)(nil)
	_ TokenService   = (*JWTService)(nil)
	_ GoogleVerifier = (*IDTokenVerifier)(nil)
)
