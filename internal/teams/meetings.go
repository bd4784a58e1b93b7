package teams

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/notify"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// CreateMeeting adds a meeting to an existing team and invites every email
// that names a known user.
func (s *Service) CreateMeeting(ctx context.Context, teamID uuid.UUID, in MeetingInput) (*models.Meeting, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var meeting *models.Meeting
	batch := notify.NewBatch()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := s.loadTeam(tx, teamID)
		if err != nil {
			return err
		}
		meeting, err = s.createMeeting(tx, batch, team, in)
		return err
	})
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	batch.Commit()

	s.logger.Info("meeting created",
		"meeting_id", meeting.ID,
		"team_id", teamID,
		"mode", meeting.Mode,
		"notifications", batch.Len(),
	)
	return meeting, nil
}

func (s *Service) createMeeting(tx *gorm.DB, batch *notify.Batch, team *models.Team, in MeetingInput) (*models.Meeting, error) {
	meeting := models.Meeting{
		TeamID:      team.ID,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Mode:        in.Mode,
	}
	if err := tx.Create(&meeting).Error; err != nil {
		return nil, err
	}

	invitees, err := s.resolveInvitees(tx, in.InviteeEmails)
	if err != nil {
		return nil, err
	}

	for _, user := range invitees {
		if err := invite(tx, team.ID, &meeting, user.ID); err != nil {
			return nil, err
		}
		// mandatory invitations need no answer, so nobody is prompted
		if meeting.Mode != models.InvitationModeRequest {
			continue
		}
		err := batch.Notify(tx, user.ID, models.NotificationMeetingInvitation,
			invitationTitle(meeting.Title), invitationMessage(&meeting, team.Name), &meeting.ID)
		if err != nil {
			return nil, err
		}
	}
	return &meeting, nil
}

// invite makes the user a team member if needed and inserts a fresh
// invitation. A second invitation to the same meeting fails on the unique
// index and surfaces as a conflict.
func invite(tx *gorm.DB, teamID uuid.UUID, meeting *models.Meeting, userID uuid.UUID) error {
	if _, err := ensureMember(tx, teamID, userID); err != nil {
		return err
	}
	inv := models.Invitation{
		MeetingID: meeting.ID,
		UserID:    userID,
		Mode:      meeting.Mode,
		Status:    meeting.Mode.InitialStatus(),
	}
	return tx.Create(&inv).Error
}

// UpdateMeeting overwrites the meeting fields, then removes the listed users
// and invites the new emails, in that order. A user in both lists ends up
// with a fresh invitation. Every removed team member is told, invited or
// not; ids outside the team are ignored.
func (s *Service) UpdateMeeting(ctx context.Context, meetingID uuid.UUID, in MeetingInput, removedUserIDs []uuid.UUID) error {
	if err := in.validate(); err != nil {
		return err
	}

	batch := notify.NewBatch()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meeting, err := s.loadMeeting(tx, meetingID)
		if err != nil {
			return err
		}

		meeting.Title = in.Title
		meeting.Description = in.Description
		meeting.Date = in.Date
		meeting.StartTime = in.StartTime
		meeting.EndTime = in.EndTime
		meeting.Mode = in.Mode
		err = tx.Model(&models.Meeting{}).
			Where("id = ?", meeting.ID).
			Select("title", "description", "date", "start_time", "end_time", "mode").
			Updates(models.Meeting{
				Title:       meeting.Title,
				Description: meeting.Description,
				Date:        meeting.Date,
				StartTime:   meeting.StartTime,
				EndTime:     meeting.EndTime,
				Mode:        meeting.Mode,
			}).Error
		if err != nil {
			return err
		}

		for _, userID := range lo.Uniq(removedUserIDs) {
			if err := s.removeInvitee(tx, batch, meeting, userID); err != nil {
				return err
			}
		}

		invitees, err := s.resolveInvitees(tx, in.InviteeEmails)
		if err != nil {
			return err
		}
		for _, user := range invitees {
			if err := invite(tx, meeting.TeamID, meeting, user.ID); err != nil {
				return err
			}
			err := batch.Notify(tx, user.ID, models.NotificationMeetingInvitation,
				addedTitle(meeting.Title), addedMessage(meeting, meeting.Team.Name), &meeting.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperr.FromStore(err)
	}
	batch.Commit()

	s.logger.Info("meeting updated",
		"meeting_id", meetingID,
		"removed", batch.Count(models.NotificationMeetingRemoved),
		"invited", batch.Count(models.NotificationMeetingInvitation),
	)
	return nil
}

func (s *Service) removeInvitee(tx *gorm.DB, batch *notify.Batch, meeting *models.Meeting, userID uuid.UUID) error {
	res := tx.Where("meeting_id = ? AND user_id = ?", meeting.ID, userID).Delete(&models.Invitation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var members int64
		err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", meeting.TeamID, userID).
			Count(&members).Error
		if err != nil || members == 0 {
			return err
		}
	}

	if err := notify.DeleteInvitationNotices(tx, []uuid.UUID{meeting.ID}, &userID); err != nil {
		return err
	}
	return batch.Notify(tx, userID, models.NotificationMeetingRemoved,
		removedTitle(meeting.Title), removedMessage(meeting, meeting.Team.Name), nil)
}

// RespondToInvitation records the invitee's answer and marks the invitation
// notice read. Answering again overwrites the previous answer. Mandatory
// invitations take no answer.
func (s *Service) RespondToInvitation(ctx context.Context, meetingID, userID uuid.UUID, response models.InvitationStatus) error {
	if !response.ValidResponse() {
		return apperr.Validation("invalid response %q: must be \"accepted\" or \"declined\"", response)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv models.Invitation
		if err := tx.Where("meeting_id = ? AND user_id = ?", meetingID, userID).First(&inv).Error; err != nil {
			if apperr.IsNotFound(err) {
				return apperr.NotFound("invitation")
			}
			return err
		}
		if inv.Mode == models.InvitationModeMandatory {
			return apperr.Conflict("mandatory invitations cannot be answered")
		}

		err := tx.Model(&models.Invitation{}).
			Where("id = ?", inv.ID).
			Updates(map[string]interface{}{
				"status":       response,
				"responded_at": time.Now(),
			}).Error
		if err != nil {
			return err
		}
		return notify.MarkInvitationNoticeRead(tx, meetingID, userID)
	})
	if err != nil {
		return apperr.FromStore(err)
	}

	invitationResponses.WithLabelValues(string(response)).Inc()
	s.logger.Info("invitation answered", "meeting_id", meetingID, "user_id", userID, "response", response)
	return nil
}

// DeleteMeeting cancels the meeting: every invitee is told, then the
// invitations, the invitation notices and the meeting row are removed.
func (s *Service) DeleteMeeting(ctx context.Context, meetingID uuid.UUID) error {
	batch := notify.NewBatch()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meeting, err := s.loadMeeting(tx, meetingID)
		if err != nil {
			return err
		}

		var invitees []uuid.UUID
		if err := tx.Model(&models.Invitation{}).Where("meeting_id = ?", meeting.ID).Pluck("user_id", &invitees).Error; err != nil {
			return err
		}
		for _, userID := range invitees {
			err := batch.Notify(tx, userID, models.NotificationMeetingCanceled,
				canceledTitle(meeting.Title), canceledMessage(meeting, meeting.Team.Name), nil)
			if err != nil {
				return err
			}
		}

		return deleteMeetings(tx, []uuid.UUID{meeting.ID})
	})
	if err != nil {
		return apperr.FromStore(err)
	}
	batch.Commit()
	ObserveCascade("meeting")

	s.logger.Info("meeting deleted", "meeting_id", meetingID, "notified", batch.Len())
	return nil
}

// deleteMeetings removes meetings with their invitations and invitation
// notices. Memberships are untouched.
func deleteMeetings(tx *gorm.DB, meetingIDs []uuid.UUID) error {
	if len(meetingIDs) == 0 {
		return nil
	}
	if err := tx.Where("meeting_id IN ?", meetingIDs).Delete(&models.Invitation{}).Error; err != nil {
		return err
	}
	if err := notify.DeleteInvitationNotices(tx, meetingIDs, nil); err != nil {
		return err
	}
	return tx.Where("id IN ?", meetingIDs).Delete(&models.Meeting{}).Error
}
