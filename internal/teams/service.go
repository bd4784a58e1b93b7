// Package teams keeps teams, meetings, memberships and invitations coherent.
//
// Every exported operation runs in a single transaction together with the
// notifications it derives, so a failure anywhere leaves no partial effect.
package teams

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/pkg/clock"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

type TeamInput struct {
	Name             string
	Description      string
	StartWorkingHour *clock.Time
	EndWorkingHour   *clock.Time
}

func (in *TeamInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return apperr.Validation("team name is required")
	}
	return nil
}

// MeetingInput carries the editable fields of a meeting plus the emails to
// invite. An empty Mode means mandatory.
type MeetingInput struct {
	Title         string
	Description   string
	Date          clock.Date
	StartTime     *clock.Time
	EndTime       *clock.Time
	Mode          models.InvitationMode
	InviteeEmails []string
}

func (in *MeetingInput) validate() error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.Date.IsZero() {
		return apperr.Validation("meeting title and date are required")
	}
	if in.Mode == "" {
		in.Mode = models.InvitationModeMandatory
	}
	if !in.Mode.Valid() {
		return apperr.Validation("invalid invitation type %q", in.Mode)
	}
	return nil
}

func (s *Service) loadTeam(tx *gorm.DB, id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := tx.First(&team, "id = ?", id).Error; err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("team")
		}
		return nil, err
	}
	return &team, nil
}

func (s *Service) loadMeeting(tx *gorm.DB, id uuid.UUID) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := tx.Preload("Team").First(&meeting, "id = ?", id).Error; err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.NotFound("meeting")
		}
		return nil, err
	}
	return &meeting, nil
}

// resolveInvitees maps emails to known users, keeping the order of first
// appearance. Blank and unknown emails are skipped without error.
func (s *Service) resolveInvitees(tx *gorm.DB, emails []string) ([]models.User, error) {
	emails = lo.Uniq(lo.FilterMap(emails, func(e string, _ int) (string, bool) {
		e = strings.TrimSpace(e)
		return e, e != ""
	}))
	if len(emails) == 0 {
		return nil, nil
	}

	var users []models.User
	if err := tx.Where("email IN ?", emails).Find(&users).Error; err != nil {
		return nil, err
	}

	byEmail := lo.KeyBy(users, func(u models.User) string { return u.Email })
	return lo.FilterMap(emails, func(e string, _ int) (models.User, bool) {
		u, ok := byEmail[e]
		return u, ok
	}), nil
}
