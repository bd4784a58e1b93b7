package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewService(db *gorm.DB, logger *slog.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Entry is a notification joined with the live state of the invitation it
// refers to. The invitation fields are nil for every other type and for
// invitations that no longer exist.
type Entry struct {
	ID               uuid.UUID                `json:"notificationid"`
	Type             models.NotificationType  `json:"type"`
	Title            string                   `json:"title"`
	Message          string                   `json:"message"`
	RelatedID        *uuid.UUID               `json:"relatedid"`
	IsRead           bool                     `json:"isread"`
	CreatedAt        time.Time                `json:"createdat"`
	InvitationStatus *models.InvitationStatus `json:"invitationstatus"`
	InvitationMode   *models.InvitationMode   `json:"invitationtype"`
}

type Inbox struct {
	Notifications []Entry `json:"notifications"`
	UnreadCount   int     `json:"unreadCount"`
}

// List returns every notification of the user, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (*Inbox, error) {
	var entries []Entry
	err := s.db.WithContext(ctx).
		Table("notifications AS n").
		Select(`n.id AS id, n.type AS type, n.title AS title, n.message AS message,
			n.related_id AS related_id, n.is_read AS is_read, n.created_at AS created_at,
			mi.status AS invitation_status, m.mode AS invitation_mode`).
		Joins("LEFT JOIN meeting_invitations mi ON n.related_id = mi.meeting_id AND n.type = ? AND mi.user_id = n.user_id",
			models.NotificationMeetingInvitation).
		Joins("LEFT JOIN meetings m ON mi.meeting_id = m.id").
		Where("n.user_id = ?", userID).
		Order("n.created_at DESC").
		Scan(&entries).Error
	if err != nil {
		return nil, apperr.FromStore(err)
	}

	inbox := &Inbox{Notifications: entries}
	if inbox.Notifications == nil {
		inbox.Notifications = []Entry{}
	}
	for _, e := range entries {
		if !e.IsRead {
			inbox.UnreadCount++
		}
	}
	return inbox, nil
}

// MarkRead flags one notification as read. It does not check who owns it.
func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if res.Error != nil {
		return apperr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("notification")
	}
	return nil
}

// MarkAllRead flags every unread notification of the user and returns how
// many changed.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, apperr.FromStore(res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes one notification. It does not check who owns it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Notification{})
	if res.Error != nil {
		return apperr.FromStore(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("notification")
	}
	return nil
}

// Purge deletes read notifications created before cutoff. Invitation notices
// whose invitation is still pending are kept: they are the only prompt the
// invitee has to respond.
func (s *Service) Purge(ctx context.Context, cutoff time.Time) (int64, error) {
	pending := s.db.Table("meeting_invitations AS mi").
		Select("1").
		Where("mi.meeting_id = notifications.related_id AND mi.user_id = notifications.user_id AND mi.status = ?",
			models.InvitationStatusPending)

	res := s.db.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Where("NOT (type = ? AND EXISTS (?))", models.NotificationMeetingInvitation, pending).
		Delete(&models.Notification{})
	if res.Error != nil {
		return 0, apperr.FromStore(res.Error)
	}

	notificationsPurged.Add(float64(res.RowsAffected))
	s.logger.Info("purged notifications", "count", res.RowsAffected, "cutoff", cutoff)
	return res.RowsAffected, nil
}
