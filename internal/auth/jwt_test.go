package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 24*time.Hour, 30*24*time.Hour)

	userID := uuid.New()
	email := "test@example.com"

	t.Run("generates valid token", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, email, false)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		// Should be parseable
		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, email, claims.Email)
	})

	t.Run("token contains correct issuer", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, email, false)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "planit", claims.Issuer)
	})

	t.Run("token contains correct subject", func(t *testing.T) {
		token, err := jwtService.GenerateToken(userID, email, false)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.Subject)
	})
}

func TestJWTService_RememberMe(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour, 30*24*time.Hour)
	userID := uuid.New()

	short, err := jwtService.GenerateToken(userID, "a@example.com", false)
	require.NoError(t, err)
	long, err := jwtService.GenerateToken(userID, "a@example.com", true)
	require.NoError(t, err)

	shortClaims, err := jwtService.ValidateToken(short)
	require.NoError(t, err)
	longClaims, err := jwtService.ValidateToken(long)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(time.Hour), shortClaims.ExpiresAt.Time, time.Minute)
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), longClaims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ValidateToken(t *testing.T) {
	userID := uuid.New()
	email := "test@example.com"

	t.Run("validates correct token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour, 0)

		token, err := jwtService.GenerateToken(userID, email, false)
		require.NoError(t, err)

		claims, err := jwtService.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		// Create service with very short expiry
		jwtService := auth.NewJWTService("test-secret", 1*time.Millisecond, 0)

		token, err := jwtService.GenerateToken(userID, email, false)
		require.NoError(t, err)

		// Wait for token to expire
		time.Sleep(10 * time.Millisecond)

		_, err = jwtService.ValidateToken(token)
		assert.Equal(t, auth.ErrExpiredToken, err)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour, 0)

		token, err := jwtService.GenerateToken(userID, email, false)
		require.NoError(t, err)

		_, err = jwtService.ValidateToken(token + "tampered")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		jwtService1 := auth.NewJWTService("secret-1", 24*time.Hour, 0)
		jwtService2 := auth.NewJWTService("secret-2", 24*time.Hour, 0)

		token, err := jwtService1.GenerateToken(userID, email, false)
		require.NoError(t, err)

		_, err = jwtService2.ValidateToken(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour, 0)

		_, err := jwtService.ValidateToken("not-a-valid-jwt")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 24*time.Hour, 0)

		_, err := jwtService.ValidateToken("")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})
}
