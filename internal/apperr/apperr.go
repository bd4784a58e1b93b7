package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Error kinds. Every error returned by a service wraps exactly one of these.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrAuth       = errors.New("authentication failed")
	ErrInternal   = errors.New("internal error")
)

func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound reports a missing entity, e.g. NotFound("team").
func NotFound(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

func Conflict(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func Auth(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrAuth, fmt.Sprintf(format, args...))
}

// FromStore classifies an error coming back from gorm. Errors that already
// carry a kind pass through unchanged.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	if hasKind(err) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", ErrConflict, err)
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// IsNotFound reports whether err is a missing row, raw from gorm or classified.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrNotFound)
}

// IsUniqueViolation reports whether err is a rejected duplicate insert, either
// translated by gorm or raw from postgres.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func hasKind(err error) bool {
	for _, kind := range []error{ErrValidation, ErrNotFound, ErrConflict, ErrAuth, ErrInternal} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

// Status maps an error to its HTTP status code.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
