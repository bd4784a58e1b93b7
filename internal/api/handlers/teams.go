package handlers

import (
	"net/http"

	"github.com/hugh/planit/internal/api/dto"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/teams"
	"gorm.io/gorm"
)

type TeamHandler struct {
	db    *gorm.DB
	teams *teams.Service
}

func NewTeamHandler(db *gorm.DB, teamService *teams.Service) *TeamHandler {
	return &TeamHandler{db: db, teams: teamService}
}

// Create makes a team with its first meetings. The creator comes from
// createdByUserId or the session.
func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTeamRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	creatorID, err := resolveCaller(r, h.db, req.CreatedByUserID)
	if err != nil {
		writeError(w, r, "Failed to create team", err)
		return
	}

	created, err := h.teams.CreateTeam(r.Context(), creatorID, req.Input(), req.MeetingInputs()...)
	if err != nil {
		writeError(w, r, "Failed to create team", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.CreateTeamResponse{
		Response: dto.OK("Team created successfully"),
		Created:  created,
	})
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := resolveCaller(r, h.db, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, "Failed to fetch teams", err)
		return
	}

	views, err := h.teams.ListTeams(r.Context(), userID)
	if err != nil {
		writeError(w, r, "Failed to fetch teams", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TeamsResponse{Response: dto.OK("Teams fetched successfully"), Teams: views})
}

// Get returns one team. Meetings are filtered for the viewer when one is
// known; an anonymous request sees every meeting.
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "team")
	if err != nil {
		writeError(w, r, "Failed to fetch team", err)
		return
	}

	viewer, err := optionalCaller(r, h.db, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, "Failed to fetch team", err)
		return
	}

	view, err := h.teams.GetTeam(r.Context(), teamID, viewer)
	if err != nil {
		writeError(w, r, "Failed to fetch team", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.TeamResponse{Response: dto.OK("Team fetched successfully"), Team: view})
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "team")
	if err != nil {
		writeError(w, r, "Failed to update team", err)
		return
	}

	var req dto.TeamRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	if err := h.teams.UpdateTeam(r.Context(), teamID, req.Input()); err != nil {
		writeError(w, r, "Failed to update team", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Team updated successfully"))
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "team")
	if err != nil {
		writeError(w, r, "Failed to delete team", err)
		return
	}

	if err := h.teams.DeleteTeam(r.Context(), teamID); err != nil {
		writeError(w, r, "Failed to delete team", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Team and all associated data deleted successfully"))
}

func (h *TeamHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "team")
	if err != nil {
		writeError(w, r, "Failed to create meeting", err)
		return
	}

	var req dto.MeetingRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	meeting, err := h.teams.CreateMeeting(r.Context(), teamID, req.Input())
	if err != nil {
		writeError(w, r, "Failed to create meeting", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.CreateMeetingResponse{
		Response:  dto.OK("Meeting created successfully"),
		MeetingID: meeting.ID,
	})
}

// ListMeetings returns the meetings of a team the viewer may see.
func (h *TeamHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "team")
	if err != nil {
		writeError(w, r, "Failed to fetch meetings", err)
		return
	}
	viewerID, err := resolveCaller(r, h.db, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, "Failed to fetch meetings", err)
		return
	}

	meetings, err := h.teams.ListTeamMeetings(r.Context(), teamID, viewerID)
	if err != nil {
		writeError(w, r, "Failed to fetch meetings", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.MeetingsResponse{Response: dto.OK("Meetings fetched successfully"), Meetings: meetings})
}

func (h *TeamHandler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	meetingID, err := pathID(r, "meeting")
	if err != nil {
		writeError(w, r, "Failed to update meeting", err)
		return
	}

	var req dto.UpdateMeetingRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	in, removed := req.Input()
	if err := h.teams.UpdateMeeting(r.Context(), meetingID, in, removed); err != nil {
		writeError(w, r, "Failed to update meeting", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Meeting updated successfully"))
}

func (h *TeamHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	meetingID, err := pathID(r, "meeting")
	if err != nil {
		writeError(w, r, "Failed to delete meeting", err)
		return
	}

	if err := h.teams.DeleteMeeting(r.Context(), meetingID); err != nil {
		writeError(w, r, "Failed to delete meeting", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Meeting deleted successfully"))
}

// Respond records an invitee's answer. The path id is the meeting.
func (h *TeamHandler) Respond(w http.ResponseWriter, r *http.Request) {
	meetingID, err := pathID(r, "meeting")
	if err != nil {
		writeError(w, r, "Failed to respond to invitation", err)
		return
	}

	var req dto.RespondRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	userID, err := resolveCaller(r, h.db, req.UserID)
	if err != nil {
		writeError(w, r, "Failed to respond to invitation", err)
		return
	}

	err = h.teams.RespondToInvitation(r.Context(), meetingID, userID, models.InvitationStatus(req.Response))
	if err != nil {
		writeError(w, r, "Failed to respond to invitation", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Invitation "+req.Response+" successfully"))
}
