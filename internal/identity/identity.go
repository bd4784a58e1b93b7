// Package identity resolves the caller of an operation to a local user id.
//
// A caller names itself either by the internal id or by the key of an external
// identity provider (the Google subject). Resolution is one lookup against the
// users table.
package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"gorm.io/gorm"
)

type Kind int

const (
	KindLocalID Kind = iota + 1
	KindExternalKey
)

// Caller is either a LocalID or an ExternalKey. The zero value is invalid.
type Caller struct {
	kind        Kind
	localID     uuid.UUID
	externalKey string
}

func LocalID(id uuid.UUID) Caller {
	return Caller{kind: KindLocalID, localID: id}
}

func ExternalKey(key string) Caller {
	return Caller{kind: KindExternalKey, externalKey: key}
}

// Parse reads a raw identifier. Anything shaped like a uuid is a local id;
// every other non-empty string is an external key.
func Parse(raw string) (Caller, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Caller{}, apperr.Validation("user id is required")
	}
	if id, err := uuid.Parse(raw); err == nil {
		return LocalID(id), nil
	}
	return ExternalKey(raw), nil
}

func (c Caller) Kind() Kind {
	return c.kind
}

func (c Caller) IsZero() bool {
	return c.kind == 0
}

func (c Caller) String() string {
	switch c.kind {
	case KindLocalID:
		return c.localID.String()
	case KindExternalKey:
		return c.externalKey
	default:
		return ""
	}
}

// Resolve returns the local id of the user the caller names, or a NotFound
// error when no such user exists.
func Resolve(ctx context.Context, db *gorm.DB, c Caller) (uuid.UUID, error) {
	q := db.WithContext(ctx).Model(&models.User{})
	switch c.kind {
	case KindLocalID:
		q = q.Where("id = ?", c.localID)
	case KindExternalKey:
		q = q.Where("google_id = ?", c.externalKey)
	default:
		return uuid.Nil, apperr.Validation("user id is required")
	}

	var ids []uuid.UUID
	if err := q.Limit(1).Pluck("id", &ids).Error; err != nil {
		return uuid.Nil, apperr.FromStore(err)
	}
	if len(ids) == 0 {
		return uuid.Nil, apperr.NotFound("user")
	}
	return ids[0], nil
}

// ResolveUser loads the full user row the caller names.
func ResolveUser(ctx context.Context, db *gorm.DB, c Caller) (*models.User, error) {
	id, err := Resolve(ctx, db, c)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, apperr.FromStore(err)
	}
	return &user, nil
}
