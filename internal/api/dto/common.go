package dto

import (
	"github.com/hugh/planit/pkg/clock"
)

// Response is the envelope every endpoint answers with. Payload types embed
// it so the flag and message sit next to the data.
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func OK(message string) Response {
	return Response{Success: true, Message: message}
}

func Fail(message, detail string) Response {
	return Response{Message: message, Error: detail}
}

// UserIDRequest is the body of endpoints that only name the caller.
type UserIDRequest struct {
	UserID string `json:"userId"`
}

type fieldErrors map[string]string

func (f fieldErrors) date(key, value string) {
	if value == "" {
		return
	}
	if _, err := clock.ParseDate(value); err != nil {
		f[key] = "Must be a date in YYYY-MM-DD format"
	}
}

func (f fieldErrors) time(key, value string) {
	if value == "" {
		return
	}
	if _, err := clock.ParseTime(value); err != nil {
		f[key] = "Must be a time in HH:MM format"
	}
}

// The parse helpers below run after Validate, so their errors are dropped.

func parseDate(s string) clock.Date {
	d, _ := clock.ParseDate(s)
	return d
}

func parseDatePtr(s string) *clock.Date {
	d, _ := clock.ParseDatePtr(&s)
	return d
}

func parseTimePtr(s string) *clock.Time {
	t, _ := clock.ParseTimePtr(&s)
	return t
}
