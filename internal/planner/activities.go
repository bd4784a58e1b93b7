package planner

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/pkg/clock"
	"github.com/samber/lo"
)

type ActivityView struct {
	ID          uuid.UUID `json:"activityid"`
	Title       string    `json:"activitytitle"`
	Description string    `json:"activitydescription"`
	Category    string    `json:"activitycategory"`
	Urgency     string    `json:"activityurgency"`
	Date        string    `json:"activitydate"`
	StartTime   *string   `json:"activitystarttime"`
	EndTime     *string   `json:"activityendtime"`
}

func newActivityView(a models.Activity) ActivityView {
	return ActivityView{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		Category:    a.Category,
		Urgency:     a.Urgency,
		Date:        a.Date.String(),
		StartTime:   clock.FormatTime(a.StartTime),
		EndTime:     clock.FormatTime(a.EndTime),
	}
}

func (s *Service) CreateActivity(ctx context.Context, userID uuid.UUID, in ActivityInput) (uuid.UUID, error) {
	if err := in.validate(); err != nil {
		return uuid.Nil, err
	}

	activity := models.Activity{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Urgency:     in.Urgency,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
	}
	if err := s.db.WithContext(ctx).Create(&activity).Error; err != nil {
		return uuid.Nil, apperr.FromStore(err)
	}
	return activity.ID, nil
}

// ListActivities returns the user's activities by date, then start time.
func (s *Service) ListActivities(ctx context.Context, userID uuid.UUID) ([]ActivityView, error) {
	var activities []models.Activity
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date, start_time").
		Find(&activities).Error
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return lo.Map(activities, func(a models.Activity, _ int) ActivityView { return newActivityView(a) }), nil
}

func (s *Service) UpdateActivity(ctx context.Context, id uuid.UUID, in ActivityInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Model(&models.Activity{}).
		Where("id = ?", id).
		Select("title", "description", "category", "urgency", "date", "start_time", "end_time").
		Updates(models.Activity{
			Title:       in.Title,
			Description: in.Description,
			Category:    in.Category,
			Urgency:     in.Urgency,
			Date:        in.Date,
			StartTime:   in.StartTime,
			EndTime:     in.EndTime,
		})
	if res.Error != nil {
		return apperr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("activity")
	}
	return nil
}

func (s *Service) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Activity{})
	if res.Error != nil {
		return apperr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("activity")
	}
	return nil
}
