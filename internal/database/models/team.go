package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hugh/planit/pkg/clock"
)

type Team struct {
	Base
	Name             string      `gorm:"not null" json:"name"`
	Description      string      `json:"description,omitempty"`
	StartWorkingHour *clock.Time `gorm:"type:time" json:"start_working_hour,omitempty"`
	EndWorkingHour   *clock.Time `gorm:"type:time" json:"end_working_hour,omitempty"`
	CreatedByUserID  uuid.UUID   `gorm:"type:uuid;index;not null" json:"created_by_user_id"`

	// Relationships
	Creator  *User        `gorm:"foreignKey:CreatedByUserID" json:"-"`
	Members  []TeamMember `gorm:"foreignKey:TeamID" json:"-"`
	Meetings []Meeting    `gorm:"foreignKey:TeamID" json:"-"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamMember records that a user has ever belonged to a team. The pair is the
// primary key, so the relation is a set.
type TeamMember struct {
	TeamID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time
}

func (TeamMember) TableName() string {
	return "team_members"
}
