package models

import (
	"time"

	"github.com/google/uuid"
)

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// ValidResponse reports whether s is something an invitee may answer with.
func (s InvitationStatus) ValidResponse() bool {
	return s == InvitationStatusAccepted || s == InvitationStatusDeclined
}

type Invitation struct {
	Base
	MeetingID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_invitations_meeting_user" json:"meeting_id"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_invitations_meeting_user;index" json:"user_id"`
	Mode        InvitationMode   `gorm:"not null" json:"invitation_mode"`
	Status      InvitationStatus `gorm:"not null;default:'pending'" json:"status"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`

	// Relationships
	Meeting *Meeting `gorm:"foreignKey:MeetingID" json:"-"`
	User    *User    `gorm:"foreignKey:UserID" json:"-"`
}

func (Invitation) TableName() string {
	return "meeting_invitations"
}
