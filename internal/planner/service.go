// Package planner keeps a user's personal activities and goals.
package planner

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
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

type ActivityInput struct {
	Title       string
	Description string
	Category    string
	Urgency     string
	Date        clock.Date
	StartTime   *clock.Time
	EndTime     *clock.Time
}

func (in *ActivityInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.Date.IsZero() {
		return apperr.Validation("activity title and date are required")
	}
	return nil
}

type TimelineInput struct {
	Title     string
	StartDate *clock.Date
	EndDate   *clock.Date
	StartTime *clock.Time
	EndTime   *clock.Time
}

// GoalInput replaces a goal and its whole list of timelines.
type GoalInput struct {
	Title       string
	Description string
	Category    string
	Progress    int
	Timelines   []TimelineInput
}

func (in *GoalInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return apperr.Validation("goal title is required")
	}
	if len(in.Timelines) == 0 {
		return apperr.Validation("at least one timeline is required")
	}
	if in.Progress < 0 || in.Progress > 100 {
		return apperr.Validation("goal progress must be between 0 and 100")
	}
	return nil
}

func (in *GoalInput) timelines(goalID uuid.UUID) []models.Timeline {
	rows := make([]models.Timeline, len(in.Timelines))
	for i, t := range in.Timelines {
		rows[i] = models.Timeline{
			GoalID:    goalID,
			Title:     strings.TrimSpace(t.Title),
			StartDate: t.StartDate,
			EndDate:   t.EndDate,
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
		}
	}
	return rows
}
