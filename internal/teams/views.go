package teams

import (
	"context"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/pkg/clock"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type TeamView struct {
	ID               uuid.UUID     `json:"teamid"`
	Name             string        `json:"teamname"`
	Description      string        `json:"teamdescription"`
	StartWorkingHour *string       `json:"teamstartworkinghour"`
	EndWorkingHour   *string       `json:"teamendworkinghour"`
	CreatedByUserID  uuid.UUID     `json:"createdbyuserid"`
	Meetings         []MeetingView `json:"meetings"`
}

type MeetingView struct {
	ID          uuid.UUID             `json:"teammeetingid"`
	Title       string                `json:"meetingtitle"`
	Description string                `json:"meetingdescription"`
	Date        string                `json:"meetingdate"`
	StartTime   *string               `json:"meetingstarttime"`
	EndTime     *string               `json:"meetingendtime"`
	Mode        models.InvitationMode `json:"invitationtype"`
	Members     []RosterEntry         `json:"members"`
}

// RosterEntry is one invitee of a meeting with the state of their invitation.
type RosterEntry struct {
	UserID         uuid.UUID               `json:"userid"`
	Name           string                  `json:"username"`
	Email          string                  `json:"useremail"`
	ProfilePicture *string                 `json:"userprofilepicture"`
	Status         models.InvitationStatus `json:"status"`
	Mode           models.InvitationMode   `json:"invitationtype"`
}

type rosterRow struct {
	MeetingID uuid.UUID
	RosterEntry
}

// ListTeams returns every team the user belongs to, each with the meetings
// the user may see.
func (s *Service) ListTeams(ctx context.Context, userID uuid.UUID) ([]TeamView, error) {
	db := s.db.WithContext(ctx)

	var teams []models.Team
	err := db.Joins("JOIN team_members tm ON tm.team_id = teams.id").
		Where("tm.user_id = ?", userID).
		Order("teams.created_at, teams.id").
		Find(&teams).Error
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	views := make([]TeamView, 0, len(teams))
	for i := range teams {
		meetings, err := s.visibleMeetings(db, &teams[i], &userID)
		if err != nil {
			return nil, apperr.FromStore(err)
		}
		views = append(views, teamView(&teams[i], meetings))
	}
	return views, nil
}

// GetTeam returns one team. With a viewer the meetings are filtered as in
// ListTeamMeetings; without one every meeting is returned.
func (s *Service) GetTeam(ctx context.Context, teamID uuid.UUID, viewer *uuid.UUID) (*TeamView, error) {
	db := s.db.WithContext(ctx)

	team, err := s.loadTeam(db, teamID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	meetings, err := s.visibleMeetings(db, team, viewer)
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	view := teamView(team, meetings)
	return &view, nil
}

// ListTeamMeetings returns every meeting of the team to its creator, and to
// anyone else only the meetings they hold an invitation to, whatever its
// status. Each meeting carries its roster ordered by name.
func (s *Service) ListTeamMeetings(ctx context.Context, teamID, viewerID uuid.UUID) ([]MeetingView, error) {
	db := s.db.WithContext(ctx)

	team, err := s.loadTeam(db, teamID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	meetings, err := s.visibleMeetings(db, team, &viewerID)
	if err != nil {
		return nil, apperr.FromStore(err)
	}
	return meetings, nil
}

func (s *Service) visibleMeetings(db *gorm.DB, team *models.Team, viewer *uuid.UUID) ([]MeetingView, error) {
	q := db.Where("team_id = ?", team.ID)
	if viewer != nil && *viewer != team.CreatedByUserID {
		invited := db.Model(&models.Invitation{}).Select("meeting_id").Where("user_id = ?", *viewer)
		q = q.Where("id IN (?)", invited)
	}

	var meetings []models.Meeting
	if err := q.Order("date, start_time").Find(&meetings).Error; err != nil {
		return nil, err
	}
	if len(meetings) == 0 {
		return []MeetingView{}, nil
	}

	rosters, err := loadRosters(db, lo.Map(meetings, func(m models.Meeting, _ int) uuid.UUID { return m.ID }))
	if err != nil {
		return nil, err
	}

	return lo.Map(meetings, func(m models.Meeting, _ int) MeetingView {
		members := rosters[m.ID]
		if members == nil {
			members = []RosterEntry{}
		}
		return MeetingView{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Date:        m.Date.String(),
			StartTime:   clock.FormatTime(m.StartTime),
			EndTime:     clock.FormatTime(m.EndTime),
			Mode:        m.Mode,
			Members:     members,
		}
	}), nil
}

func loadRosters(db *gorm.DB, meetingIDs []uuid.UUID) (map[uuid.UUID][]RosterEntry, error) {
	var rows []rosterRow
	err := db.Table("meeting_invitations AS mi").
		Select(`mi.meeting_id AS meeting_id, u.id AS user_id, u.name AS name, u.email AS email,
			u.profile_picture AS profile_picture, mi.status AS status, mi.mode AS mode`).
		Joins("JOIN users u ON u.id = mi.user_id").
		Where("mi.meeting_id IN ?", meetingIDs).
		Order("u.name, u.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	rosters := make(map[uuid.UUID][]RosterEntry, len(meetingIDs))
	for _, r := range rows {
		rosters[r.MeetingID] = append(rosters[r.MeetingID], r.RosterEntry)
	}
	return rosters, nil
}

func teamView(team *models.Team, meetings []MeetingView) TeamView {
	return TeamView{
		ID:               team.ID,
		Name:             team.Name,
		Description:      team.Description,
		StartWorkingHour: clock.FormatTime(team.StartWorkingHour),
		EndWorkingHour:   clock.FormatTime(team.EndWorkingHour),
		CreatedByUserID:  team.CreatedByUserID,
		Meetings:         meetings,
	}
}
