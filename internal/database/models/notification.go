package models

import "github.com/google/uuid"

type NotificationType string

const (
	NotificationMeetingInvitation NotificationType = "meeting_invitation"
	NotificationMeetingRemoved    NotificationType = "meeting_removed"
	NotificationMeetingCanceled   NotificationType = "meeting_canceled"
	NotificationTeamDeleted       NotificationType = "team_deleted"
	NotificationMemberLeftTeam    NotificationType = "member_left_team"
)

type Notification struct {
	Base
	UserID    uuid.UUID        `gorm:"type:uuid;index;not null" json:"user_id"`
	Type      NotificationType `gorm:"not null;index" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	RelatedID *uuid.UUID       `gorm:"type:uuid;index" json:"related_id,omitempty"` // meeting that caused it
	IsRead    bool             `gorm:"not null;default:false;index" json:"is_read"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
