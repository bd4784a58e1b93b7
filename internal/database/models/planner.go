package models

import (
	"github.com/google/uuid"
	"github.com/hugh/planit/pkg/clock"
)

type Activity struct {
	Base
	UserID      uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Urgency     string      `json:"urgency,omitempty"`
	Date        clock.Date  `gorm:"type:date;not null" json:"date"`
	StartTime   *clock.Time `gorm:"type:time" json:"start_time,omitempty"`
	EndTime     *clock.Time `gorm:"type:time" json:"end_time,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Activity) TableName() string {
	return "activities"
}

// Goal always owns at least one Timeline.
type Goal struct {
	Base
	UserID      uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Progress    int       `gorm:"default:0" json:"progress"`

	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Timelines []Timeline `gorm:"foreignKey:GoalID" json:"timelines,omitempty"`
}

func (Goal) TableName() string {
	return "goals"
}

type Timeline struct {
	Base
	GoalID    uuid.UUID   `gorm:"type:uuid;index;not null" json:"goal_id"`
	Title     string      `json:"title"`
	StartDate *clock.Date `gorm:"type:date" json:"start_date,omitempty"`
	EndDate   *clock.Date `gorm:"type:date" json:"end_date,omitempty"`
	StartTime *clock.Time `gorm:"type:time" json:"start_time,omitempty"`
	EndTime   *clock.Time `gorm:"type:time" json:"end_time,omitempty"`

	Goal *Goal `gorm:"foreignKey:GoalID" json:"-"`
}

func (Timeline) TableName() string {
	return "timelines"
}
