package accounts

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/identity"
	"github.com/hugh/planit/internal/notify"
	"github.com/hugh/planit/internal/teams"
	"gorm.io/gorm"
)

const memberLeftTitle = "Team Member Left"

func memberLeftMessage(name string) string {
	return fmt.Sprintf("User '%s' has deleted their account and has been removed from your team(s).", name)
}

// DeleteUser removes the account and everything that refers to it. Creators
// of teams the user had joined are told once each. Beyond those notices,
// members of teams the user created also get a team_deleted notification,
// since the cascade removes those teams. Either every row goes or none does.
func (s *Service) DeleteUser(ctx context.Context, caller identity.Caller) error {
	batch := notify.NewBatch()
	var (
		userID     uuid.UUID
		ownedTeams []models.Team
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := identity.ResolveUser(ctx, tx, caller)
		if err != nil {
			return err
		}
		userID = user.ID

		var creators []uuid.UUID
		err = tx.Model(&models.Team{}).
			Joins("JOIN team_members tm ON tm.team_id = teams.id").
			Where("tm.user_id = ? AND teams.created_by_user_id <> ?", user.ID, user.ID).
			Distinct().
			Pluck("teams.created_by_user_id", &creators).Error
		if err != nil {
			return err
		}
		for _, creatorID := range creators {
			err := batch.Notify(tx, creatorID, models.NotificationMemberLeftTeam,
				memberLeftTitle, memberLeftMessage(user.Name), nil)
			if err != nil {
				return err
			}
		}

		if err := tx.Where("created_by_user_id = ?", user.ID).Find(&ownedTeams).Error; err != nil {
			return err
		}
		for i := range ownedTeams {
			if err := teams.NotifyTeamDeleted(tx, batch, &ownedTeams[i]); err != nil {
				return err
			}
		}

		return deleteUserRows(tx, user.ID, ownedTeams)
	})
	if err != nil {
		return apperr.FromStore(err)
	}
	batch.Commit()
	teams.ObserveCascade("user")

	s.logger.Info("account deleted",
		"user_id", userID,
		"teams_deleted", len(ownedTeams),
		"notified", batch.Len(),
	)
	return nil
}

// deleteUserRows removes rows leaves first so no reference outlives its
// target.
func deleteUserRows(tx *gorm.DB, userID uuid.UUID, ownedTeams []models.Team) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.Invitation{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Notification{}).Error; err != nil {
		return err
	}

	goals := tx.Model(&models.Goal{}).Select("id").Where("user_id = ?", userID)
	if err := tx.Where("goal_id IN (?)", goals).Delete(&models.Timeline{}).Error; err != nil {
		return err
	}

	teamIDs := make([]uuid.UUID, len(ownedTeams))
	for i := range ownedTeams {
		teamIDs[i] = ownedTeams[i].ID
	}
	if err := teams.DeleteTeams(tx, teamIDs); err != nil {
		return err
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.TeamMember{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Goal{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", userID).Delete(&models.Activity{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", userID).Delete(&models.User{}).Error
}
