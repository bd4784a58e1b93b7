package planner

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/pkg/clock"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type GoalView struct {
	ID          uuid.UUID      `json:"goalid"`
	Title       string         `json:"goaltitle"`
	Description string         `json:"goaldescription"`
	Category    string         `json:"goalcategory"`
	Progress    int            `json:"goalprogress"`
	Timelines   []TimelineView `json:"timelines"`
}

type TimelineView struct {
	ID        uuid.UUID `json:"timelineid"`
	Title     string    `json:"timelinetitle"`
	StartDate *string   `json:"timelinestartdate"`
	EndDate   *string   `json:"timelineenddate"`
	StartTime *string   `json:"timelinestarttime"`
	EndTime   *string   `json:"timelineendtime"`
}

// Saved reports the rows written for a goal.
type Saved struct {
	GoalID      uuid.UUID   `json:"goalId"`
	TimelineIDs []uuid.UUID `json:"timelineIds"`
}

func (s *Service) CreateGoal(ctx context.Context, userID uuid.UUID, in GoalInput) (*Saved, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var saved *Saved
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		goal := models.Goal{
			UserID:      userID,
			Title:       in.Title,
			Description: in.Description,
			Category:    in.Category,
			Progress:    in.Progress,
		}
		if err := tx.Create(&goal).Error; err != nil {
			return err
		}
		ids, err := insertTimelines(tx, goal.ID, &in)
		if err != nil {
			return err
		}
		saved = &Saved{GoalID: goal.ID, TimelineIDs: ids}
		return nil
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return saved, nil
}

// ListGoals returns the user's goals oldest first, each with its timelines
// ordered by start date.
func (s *Service) ListGoals(ctx context.Context, userID uuid.UUID) ([]GoalView, error) {
	var goals []models.Goal
	err := s.db.WithContext(ctx).
		Preload("Timelines", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date, created_at")
		}).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&goals).Error
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	return lo.Map(goals, func(g models.Goal, _ int) GoalView {
		return GoalView{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Category:    g.Category,
			Progress:    g.Progress,
			Timelines: lo.Map(g.Timelines, func(t models.Timeline, _ int) TimelineView {
				return TimelineView{
					ID:        t.ID,
					Title:     t.Title,
					StartDate: clock.FormatDate(t.StartDate),
					EndDate:   clock.FormatDate(t.EndDate),
					StartTime: clock.FormatTime(t.StartTime),
					EndTime:   clock.FormatTime(t.EndTime),
				}
			}),
		}
	}), nil
}

// UpdateGoal overwrites the goal and swaps its timelines for the given ones.
func (s *Service) UpdateGoal(ctx context.Context, goalID uuid.UUID, in GoalInput) (*Saved, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var saved *Saved
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Goal{}).
			Where("id = ?", goalID).
			Select("title", "description", "category", "progress").
			Updates(models.Goal{
				Title:       in.Title,
				Description: in.Description,
				Category:    in.Category,
				Progress:    in.Progress,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("goal")
		}

		if err := tx.Where("goal_id = ?", goalID).Delete(&models.Timeline{}).Error; err != nil {
			return err
		}
		ids, err := insertTimelines(tx, goalID, &in)
		if err != nil {
			return err
		}
		saved = &Saved{GoalID: goalID, TimelineIDs: ids}
		return nil
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return saved, nil
}

func (s *Service) DeleteGoal(ctx context.Context, goalID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("goal_id = ?", goalID).Delete(&models.Timeline{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", goalID).Delete(&models.Goal{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("goal")
		}
		return nil
	})
	return apperr.FromStore(err)
}

// DeleteTimeline removes one timeline. A goal keeps at least one, so removing
// the last is a conflict and leaves the row in place.
func (s *Service) DeleteTimeline(ctx context.Context, timelineID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var timeline models.Timeline
		if err := tx.First(&timeline, "id = ?", timelineID).Error; err != nil {
			if apperr.IsNotFound(err) {
				return apperr.NotFound("timeline")
			}
			return err
		}

		var siblings int64
		if err := tx.Model(&models.Timeline{}).Where("goal_id = ?", timeline.GoalID).Count(&siblings).Error; err != nil {
			return err
		}
		if siblings <= 1 {
			return apperr.Conflict("cannot delete the last timeline: a goal must have at least one timeline")
		}

		return tx.Where("id = ?", timeline.ID).Delete(&models.Timeline{}).Error
	})
	return apperr.FromStore(err)
}

func insertTimelines(tx *gorm.DB, goalID uuid.UUID, in *GoalInput) ([]uuid.UUID, error) {
	rows := in.timelines(goalID)
	if err := tx.Create(&rows).Error; err != nil {
		return nil, err
	}
	return lo.Map(rows, func(t models.Timeline, _ int) uuid.UUID { return t.ID }), nil
}
