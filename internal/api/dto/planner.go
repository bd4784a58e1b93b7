package dto

import (
	"fmt"
	"strings"

	"github.com/hugh/planit/internal/planner"
)

type ActivityRequest struct {
	UserID              string `json:"userId"`
	ActivityTitle       string `json:"activityTitle"`
	ActivityDescription string `json:"activityDescription"`
	ActivityCategory    string `json:"activityCategory"`
	ActivityUrgency     string `json:"activityUrgency"`
	ActivityDate        string `json:"activityDate"`
	ActivityStartTime   string `json:"activityStartTime"`
	ActivityEndTime     string `json:"activityEndTime"`
}

func (r ActivityRequest) Validate() map[string]string {
	errors := make(fieldErrors)

	if strings.TrimSpace(r.ActivityTitle) == "" {
		errors["activityTitle"] = "Title is required"
	}
	if r.ActivityDate == "" {
		errors["activityDate"] = "Date is required"
	} else {
		errors.date("activityDate", r.ActivityDate)
	}
	errors.time("activityStartTime", r.ActivityStartTime)
	errors.time("activityEndTime", r.ActivityEndTime)

	return errors
}

func (r ActivityRequest) Input() planner.ActivityInput {
	return planner.ActivityInput{
		Title:       r.ActivityTitle,
		Description: r.ActivityDescription,
		Category:    r.ActivityCategory,
		Urgency:     r.ActivityUrgency,
		Date:        parseDate(r.ActivityDate),
		StartTime:   parseTimePtr(r.ActivityStartTime),
		EndTime:     parseTimePtr(r.ActivityEndTime),
	}
}

type TimelineRequest struct {
	TimelineTitle     string `json:"timelineTitle"`
	TimelineStartDate string `json:"timelineStartDate"`
	TimelineEndDate   string `json:"timelineEndDate"`
	TimelineStartTime string `json:"timelineStartTime"`
	TimelineEndTime   string `json:"timelineEndTime"`
}

type GoalRequest struct {
	UserID          string            `json:"userId"`
	GoalTitle       string            `json:"goalTitle"`
	GoalDescription string            `json:"goalDescription"`
	GoalCategory    string            `json:"goalCategory"`
	GoalProgress    int               `json:"goalProgress"`
	Timelines       []TimelineRequest `json:"timelines"`
}

func (r GoalRequest) Validate() map[string]string {
	errors := make(fieldErrors)

	if strings.TrimSpace(r.GoalTitle) == "" {
		errors["goalTitle"] = "Title is required"
	}
	if r.GoalProgress < 0 || r.GoalProgress > 100 {
		errors["goalProgress"] = "Progress must be between 0 and 100"
	}
	if len(r.Timelines) == 0 {
		errors["timelines"] = "At least one timeline is required"
	}
	for i, t := range r.Timelines {
		prefix := fmt.Sprintf("timelines[%d].", i)
		errors.date(prefix+"timelineStartDate", t.TimelineStartDate)
		errors.date(prefix+"timelineEndDate", t.TimelineEndDate)
		errors.time(prefix+"timelineStartTime", t.TimelineStartTime)
		errors.time(prefix+"timelineEndTime", t.TimelineEndTime)
	}

	return errors
}

func (r GoalRequest) Input() planner.GoalInput {
	in := planner.GoalInput{
		Title:       r.GoalTitle,
		Description: r.GoalDescription,
		Category:    r.GoalCategory,
		Progress:    r.GoalProgress,
		Timelines:   make([]planner.TimelineInput, len(r.Timelines)),
	}
	for i, t := range r.Timelines {
		in.Timelines[i] = planner.TimelineInput{
			Title:     t.TimelineTitle,
			StartDate: parseDatePtr(t.TimelineStartDate),
			EndDate:   parseDatePtr(t.TimelineEndDate),
			StartTime: parseTimePtr(t.TimelineStartTime),
			EndTime:   parseTimePtr(t.TimelineEndTime),
		}
	}
	return in
}

type ActivitiesResponse struct {
	Response
	Activities []planner.ActivityView `json:"activities"`
}

type CreateActivityResponse struct {
	Response
	ActivityID string `json:"activityId"`
}

type GoalsResponse struct {
	Response
	Goals []planner.GoalView `json:"goals"`
}

type SaveGoalResponse struct {
	Response
	*planner.Saved
}
