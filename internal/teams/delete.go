package teams

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/notify"
	"gorm.io/gorm"
)

// DeleteTeam removes the team with its meetings, invitations and memberships.
// Every member other than the creator is told. Existence is checked before
// any notification is written.
func (s *Service) DeleteTeam(ctx context.Context, teamID uuid.UUID) error {
	batch := notify.NewBatch()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := s.loadTeam(tx, teamID)
		if err != nil {
			return err
		}

		if err := NotifyTeamDeleted(tx, batch, team); err != nil {
			return err
		}
		return DeleteTeams(tx, []uuid.UUID{team.ID})
	})
	if err != nil {
		return apperr.FromStore(err)
	}
	batch.Commit()
	ObserveCascade("team")

	s.logger.Info("team deleted", "team_id", teamID, "notified", batch.Len())
	return nil
}

// NotifyTeamDeleted tells every member of the team except its creator that
// the team is gone.
func NotifyTeamDeleted(tx *gorm.DB, batch *notify.Batch, team *models.Team) error {
	var members []uuid.UUID
	err := tx.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id <> ?", team.ID, team.CreatedByUserID).
		Pluck("user_id", &members).Error
	if err != nil {
		return err
	}
	for _, userID := range members {
		err := batch.Notify(tx, userID, models.NotificationTeamDeleted,
			teamDeletedTitle(team.Name), teamDeletedMessage(team.Name), nil)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteTeams removes teams and every row that exists only because of them,
// leaves first. It writes no notifications; callers decide who is told.
func DeleteTeams(tx *gorm.DB, teamIDs []uuid.UUID) error {
	if len(teamIDs) == 0 {
		return nil
	}

	var meetingIDs []uuid.UUID
	if err := tx.Model(&models.Meeting{}).Where("team_id IN ?", teamIDs).Pluck("id", &meetingIDs).Error; err != nil {
		return err
	}
	if err := deleteMeetings(tx, meetingIDs); err != nil {
		return err
	}
	if err := tx.Where("team_id IN ?", teamIDs).Delete(&models.TeamMember{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", teamIDs).Delete(&models.Team{}).Error
}
