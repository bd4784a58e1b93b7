package teams

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/notify"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Created identifies the rows written by CreateTeam.
type Created struct {
	TeamID     uuid.UUID   `json:"teamId"`
	MeetingIDs []uuid.UUID `json:"meetingIds"`
}

// CreateTeam inserts the team, the creator's membership and any initial
// meetings with their invitations.
func (s *Service) CreateTeam(ctx context.Context, creatorID uuid.UUID, in TeamInput, meetings ...MeetingInput) (*Created, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	for i := range meetings {
		if err := meetings[i].validate(); err != nil {
			return nil, err
		}
	}

	created := &Created{MeetingIDs: []uuid.UUID{}}
	batch := notify.NewBatch()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team := models.Team{
			Name:             in.Name,
			Description:      in.Description,
			StartWorkingHour: in.StartWorkingHour,
			EndWorkingHour:   in.EndWorkingHour,
			CreatedByUserID:  creatorID,
		}
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		if _, err := ensureMember(tx, team.ID, creatorID); err != nil {
			return err
		}
		created.TeamID = team.ID

		for _, m := range meetings {
			meeting, err := s.createMeeting(tx, batch, &team, m)
			if err != nil {
				return err
			}
			created.MeetingIDs = append(created.MeetingIDs, meeting.ID)
		}
		return nil
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	batch.Commit()

	s.logger.Info("team created",
		"team_id", created.TeamID,
		"creator_id", creatorID,
		"meetings", len(created.MeetingIDs),
		"notifications", batch.Len(),
	)
	return created, nil
}

// EnsureMember adds the user to the team unless already a member and reports
// whether a membership was created.
func (s *Service) EnsureMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var added bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.loadTeam(tx, teamID); err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("user")
		}

		var err error
		added, err = ensureMember(tx, teamID, userID)
		return err
	})
	if err != nil {
		return false, apperr.FromStore(err)
	}
	return added, nil
}

func ensureMember(tx *gorm.DB, teamID, userID uuid.UUID) (bool, error) {
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.TeamMember{TeamID: teamID, UserID: userID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// UpdateTeam replaces the editable fields of a team.
func (s *Service) UpdateTeam(ctx context.Context, teamID uuid.UUID, in TeamInput) error {
	if err := in.validate(); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Model(&models.Team{}).
		Where("id = ?", teamID).
		Select("name", "description", "start_working_hour", "end_working_hour").
		Updates(models.Team{
			Name:             in.Name,
			Description:      in.Description,
			StartWorkingHour: in.StartWorkingHour,
			EndWorkingHour:   in.EndWorkingHour,
		})
	if res.Error != nil {
		return apperr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("team")
	}
	return nil
}

// IsMember reports whether the user has ever belonged to the team.
func (s *Service) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&n).Error
	if err != nil {
		return false, apperr.FromStore(err)
	}
	return n > 0, nil
}
