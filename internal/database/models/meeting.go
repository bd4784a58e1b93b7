package models

import (
	"github.com/google/uuid"
	"github.com/hugh/planit/pkg/clock"
)

type InvitationMode string

const (
	InvitationModeMandatory InvitationMode = "mandatory"
	InvitationModeRequest   InvitationMode = "request"
)

func (m InvitationMode) Valid() bool {
	return m == InvitationModeMandatory || m == InvitationModeRequest
}

// InitialStatus is the status an invitation starts in: mandatory invitations
// need no response.
func (m InvitationMode) InitialStatus() InvitationStatus {
	if m == InvitationModeMandatory {
		return InvitationStatusAccepted
	}
	return InvitationStatusPending
}

type Meeting struct {
	Base
	TeamID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"team_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description,omitempty"`
	Date        clock.Date     `gorm:"type:date;not null" json:"date"`
	StartTime   *clock.Time    `gorm:"type:time" json:"start_time,omitempty"`
	EndTime     *clock.Time    `gorm:"type:time" json:"end_time,omitempty"`
	Mode        InvitationMode `gorm:"not null;default:'mandatory'" json:"invitation_mode"`

	// Relationships
	Team        *Team        `gorm:"foreignKey:TeamID" json:"-"`
	Invitations []Invitation `gorm:"foreignKey:MeetingID" json:"-"`
}

func (Meeting) TableName() string {
	return "meetings"
}
