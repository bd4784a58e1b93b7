package dto

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/teams"
)

type TeamRequest struct {
	TeamName             string `json:"teamName"`
	TeamDescription      string `json:"teamDescription"`
	TeamStartWorkingHour string `json:"teamStartWorkingHour"`
	TeamEndWorkingHour   string `json:"teamEndWorkingHour"`
}

func (r TeamRequest) Validate() map[string]string {
	errors := make(fieldErrors)

	if strings.TrimSpace(r.TeamName) == "" {
		errors["teamName"] = "Team name is required"
	}
	errors.time("teamStartWorkingHour", r.TeamStartWorkingHour)
	errors.time("teamEndWorkingHour", r.TeamEndWorkingHour)

	return errors
}

func (r TeamRequest) Input() teams.TeamInput {
	return teams.TeamInput{
		Name:             r.TeamName,
		Description:      r.TeamDescription,
		StartWorkingHour: parseTimePtr(r.TeamStartWorkingHour),
		EndWorkingHour:   parseTimePtr(r.TeamEndWorkingHour),
	}
}

// CreateTeamRequest creates a team together with its first meetings.
type CreateTeamRequest struct {
	TeamRequest
	CreatedByUserID string           `json:"createdByUserId"`
	Meetings        []MeetingRequest `json:"meetings"`
}

func (r CreateTeamRequest) Validate() map[string]string {
	errors := fieldErrors(r.TeamRequest.Validate())

	if len(r.Meetings) == 0 {
		errors["meetings"] = "At least one meeting is required"
	}
	for i, m := range r.Meetings {
		for field, msg := range m.Validate() {
			errors[fmt.Sprintf("meetings[%d].%s", i, field)] = msg
		}
	}

	return errors
}

func (r CreateTeamRequest) MeetingInputs() []teams.MeetingInput {
	inputs := make([]teams.MeetingInput, len(r.Meetings))
	for i, m := range r.Meetings {
		inputs[i] = m.Input()
	}
	return inputs
}

// MeetingRequest is used both for a new meeting and for one nested in a new
// team. Invitees come in InvitedEmails.
type MeetingRequest struct {
	MeetingTitle       string   `json:"meetingTitle"`
	MeetingDescription string   `json:"meetingDescription"`
	MeetingDate        string   `json:"meetingDate"`
	MeetingStartTime   string   `json:"meetingStartTime"`
	MeetingEndTime     string   `json:"meetingEndTime"`
	InvitationType     string   `json:"invitationType"`
	InvitedEmails      []string `json:"invitedEmails"`
}

func (r MeetingRequest) Validate() map[string]string {
	errors := make(fieldErrors)

	if strings.TrimSpace(r.MeetingTitle) == "" {
		errors["meetingTitle"] = "Meeting title is required"
	}
	if r.MeetingDate == "" {
		errors["meetingDate"] = "Meeting date is required"
	} else {
		errors.date("meetingDate", r.MeetingDate)
	}
	errors.time("meetingStartTime", r.MeetingStartTime)
	errors.time("meetingEndTime", r.MeetingEndTime)
	if r.InvitationType != "" && !models.InvitationMode(r.InvitationType).Valid() {
		errors["invitationType"] = "Must be \"mandatory\" or \"request\""
	}

	return errors
}

func (r MeetingRequest) Input() teams.MeetingInput {
	return teams.MeetingInput{
		Title:         r.MeetingTitle,
		Description:   r.MeetingDescription,
		Date:          parseDate(r.MeetingDate),
		StartTime:     parseTimePtr(r.MeetingStartTime),
		EndTime:       parseTimePtr(r.MeetingEndTime),
		Mode:          models.InvitationMode(r.InvitationType),
		InviteeEmails: r.InvitedEmails,
	}
}

// UpdateMeetingRequest replaces the meeting fields, then removes and adds
// invitees in that order.
type UpdateMeetingRequest struct {
	MeetingRequest
	NewMemberEmails  []string `json:"newMemberEmails"`
	RemovedMemberIDs []string `json:"removedMemberIds"`
}

func (r UpdateMeetingRequest) Validate() map[string]string {
	errors := fieldErrors(r.MeetingRequest.Validate())

	for i, id := range r.RemovedMemberIDs {
		if _, err := uuid.Parse(id); err != nil {
			errors[fmt.Sprintf("removedMemberIds[%d]", i)] = "Invalid user id"
		}
	}

	return errors
}

func (r UpdateMeetingRequest) Input() (teams.MeetingInput, []uuid.UUID) {
	in := r.MeetingRequest.Input()
	in.InviteeEmails = append(in.InviteeEmails, r.NewMemberEmails...)

	removed := make([]uuid.UUID, 0, len(r.RemovedMemberIDs))
	for _, id := range r.RemovedMemberIDs {
		if parsed, err := uuid.Parse(id); err == nil {
			removed = append(removed, parsed)
		}
	}
	return in, removed
}

type RespondRequest struct {
	UserID   string `json:"userId"`
	Response string `json:"response"`
}

func (r RespondRequest) Validate() map[string]string {
	errors := make(fieldErrors)

	if !models.InvitationStatus(r.Response).ValidResponse() {
		errors["response"] = "Invalid response. Must be \"accepted\" or \"declined\""
	}

	return errors
}

type CreateTeamResponse struct {
	Response
	*teams.Created
}

type CreateMeetingResponse struct {
	Response
	MeetingID uuid.UUID `json:"meetingId"`
}

type TeamsResponse struct {
	Response
	Teams []teams.TeamView `json:"teams"`
}

type TeamResponse struct {
	Response
	Team *teams.TeamView `json:"team"`
}

type MeetingsResponse struct {
	Response
	Meetings []teams.MeetingView `json:"meetings"`
}
