package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/api/dto"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func meetingBody(title, mode string, invited ...string) map[string]interface{} {
	return map[string]interface{}{
		"meetingTitle":     title,
		"meetingDate":      "2026-11-03",
		"meetingStartTime": "09:00",
		"meetingEndTime":   "10:00",
		"invitationType":   mode,
		"invitedEmails":    invited,
	}
}

func TestTeamHandler_InvitationLifecycle(t *testing.T) {
	srv := newTestServer(t)
	invitee := testutil.CreateTestUser(t, srv.DB, "Invitee")

	rr := srv.do(t, http.MethodPost, "/api/teams", map[string]interface{}{
		"teamName":        "Platform",
		"createdByUserId": srv.User.ID.String(),
		"meetings":        []interface{}{meetingBody("Planning", "request", invitee.Email, "ghost@example.com")},
	})
	testutil.AssertStatus(t, rr, http.StatusCreated)

	var created dto.CreateTeamResponse
	testutil.ParseJSONResponse(t, rr, &created)
	require.NotNil(t, created.Created)
	require.Len(t, created.MeetingIDs, 1)
	meetingID := created.MeetingIDs[0]

	rr = srv.do(t, http.MethodGet, "/api/notifications?userId="+invitee.ID.String(), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var inbox dto.NotificationsResponse
	testutil.ParseJSONResponse(t, rr, &inbox)
	require.NotNil(t, inbox.Inbox)
	require.Len(t, inbox.Notifications, 1)
	assert.Equal(t, 1, inbox.UnreadCount)
	assert.Equal(t, models.NotificationMeetingInvitation, inbox.Notifications[0].Type)

	rr = srv.do(t, http.MethodPut, fmt.Sprintf("/api/meeting-invitations/%s/respond", meetingID), map[string]string{
		"userId":   invitee.ID.String(),
		"response": "accepted",
	})
	testutil.AssertStatus(t, rr, http.StatusOK)

	var inv models.Invitation
	require.NoError(t, srv.DB.Where("meeting_id = ? AND user_id = ?", meetingID, invitee.ID).First(&inv).Error)
	assert.Equal(t, models.InvitationStatusAccepted, inv.Status)
	assert.Zero(t, testutil.Count(t, srv.DB, &models.Notification{}, "user_id = ? AND is_read = ?", invitee.ID, false))

	rr = srv.do(t, http.MethodDelete, "/api/meetings/"+meetingID.String(), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	assert.Equal(t, int64(1), testutil.Count(t, srv.DB, &models.Notification{},
		"user_id = ? AND type = ?", invitee.ID, models.NotificationMeetingCanceled))
	assert.Zero(t, testutil.Count(t, srv.DB, &models.Invitation{}, "meeting_id = ?", meetingID))
}

func TestTeamHandler_Create_Validation(t *testing.T) {
	srv := newTestServer(t)

	t.Run("no meetings", func(t *testing.T) {
		rr := srv.do(t, http.MethodPost, "/api/teams", map[string]interface{}{
			"teamName":        "Empty",
			"createdByUserId": srv.User.ID.String(),
		})
		testutil.AssertStatus(t, rr, http.StatusBadRequest)

		var resp dto.Response
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Contains(t, resp.Details, "meetings")
	})

	t.Run("nested meeting errors", func(t *testing.T) {
		bad := meetingBody("", "sometimes")
		rr := srv.do(t, http.MethodPost, "/api/teams", map[string]interface{}{
			"teamName":        "Bad",
			"createdByUserId": srv.User.ID.String(),
			"meetings":        []interface{}{bad},
		})
		testutil.AssertStatus(t, rr, http.StatusBadRequest)

		var resp dto.Response
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Contains(t, resp.Details, "meetings[0].meetingTitle")
		assert.Contains(t, resp.Details, "meetings[0].invitationType")
	})

	t.Run("unknown creator", func(t *testing.T) {
		rr := srv.do(t, http.MethodPost, "/api/teams", map[string]interface{}{
			"teamName":        "Orphan",
			"createdByUserId": uuid.New().String(),
			"meetings":        []interface{}{meetingBody("Kickoff", "mandatory")},
		})
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	t.Run("creator from session", func(t *testing.T) {
		rr := srv.doAuth(t, http.MethodPost, "/api/teams", map[string]interface{}{
			"teamName": "Session",
			"meetings": []interface{}{meetingBody("Kickoff", "mandatory")},
		}, srv.Token)
		testutil.AssertStatus(t, rr, http.StatusCreated)
		assert.Equal(t, int64(1), testutil.Count(t, srv.DB, &models.Team{},
			"name = ? AND created_by_user_id = ?", "Session", srv.User.ID))
	})

	t.Run("no creator at all", func(t *testing.T) {
		rr := srv.do(t, http.MethodPost, "/api/teams", map[string]interface{}{
			"teamName": "Nobody",
			"meetings": []interface{}{meetingBody("Kickoff", "mandatory")},
		})
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}

func TestTeamHandler_ListAndGet(t *testing.T) {
	srv := newTestServer(t)
	member := testutil.CreateTestUser(t, srv.DB, "Member")
	team := testutil.CreateTestTeam(t, srv.DB, srv.User)
	testutil.AddTestMember(t, srv.DB, team, member)
	invited := testutil.CreateTestMeeting(t, srv.DB, team, models.InvitationModeMandatory, "2026-11-01")
	testutil.CreateTestMeeting(t, srv.DB, team, models.InvitationModeMandatory, "2026-11-02")
	testutil.CreateTestInvitation(t, srv.DB, invited, member)

	t.Run("member sees invited meetings only", func(t *testing.T) {
		rr := srv.do(t, http.MethodGet, "/api/teams?userId="+member.ID.String(), nil)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.TeamsResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		require.Len(t, resp.Teams, 1)
		require.Len(t, resp.Teams[0].Meetings, 1)
		assert.Equal(t, invited.ID, resp.Teams[0].Meetings[0].ID)
	})

	t.Run("creator sees all via session", func(t *testing.T) {
		rr := srv.doAuth(t, http.MethodGet, "/api/teams", nil, srv.Token)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.TeamsResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		require.Len(t, resp.Teams, 1)
		assert.Len(t, resp.Teams[0].Meetings, 2)
	})

	t.Run("detail without viewer", func(t *testing.T) {
		rr := srv.do(t, http.MethodGet, "/api/teams/"+team.ID.String(), nil)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.TeamResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		require.NotNil(t, resp.Team)
		assert.Len(t, resp.Team.Meetings, 2)
	})

	t.Run("detail for member", func(t *testing.T) {
		rr := srv.do(t, http.MethodGet, "/api/teams/"+team.ID.String()+"?userId="+member.ID.String(), nil)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.TeamResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.Len(t, resp.Team.Meetings, 1)
	})

	t.Run("bad and unknown ids", func(t *testing.T) {
		testutil.AssertStatus(t, srv.do(t, http.MethodGet, "/api/teams/not-a-uuid", nil), http.StatusBadRequest)
		testutil.AssertStatus(t, srv.do(t, http.MethodGet, "/api/teams/"+uuid.New().String(), nil), http.StatusNotFound)
	})

	t.Run("meetings endpoint", func(t *testing.T) {
		rr := srv.do(t, http.MethodGet, "/api/teams/"+team.ID.String()+"/meetings?userId="+member.ID.String(), nil)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.MeetingsResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		require.Len(t, resp.Meetings, 1)
		require.Len(t, resp.Meetings[0].Members, 1)
		assert.Equal(t, member.ID, resp.Meetings[0].Members[0].UserID)
	})
}

func TestTeamHandler_UpdateAndDelete(t *testing.T) {
	srv := newTestServer(t)
	member := testutil.CreateTestUser(t, srv.DB, "Member")
	team := testutil.CreateTestTeam(t, srv.DB, srv.User)
	testutil.AddTestMember(t, srv.DB, team, member)

	rr := srv.do(t, http.MethodPut, "/api/teams/"+team.ID.String(), map[string]string{
		"teamName":             "Renamed",
		"teamStartWorkingHour": "08:30",
	})
	testutil.AssertStatus(t, rr, http.StatusOK)

	var reloaded models.Team
	require.NoError(t, srv.DB.First(&reloaded, "id = ?", team.ID).Error)
	assert.Equal(t, "Renamed", reloaded.Name)

	rr = srv.do(t, http.MethodPut, "/api/teams/"+team.ID.String(), map[string]string{"teamName": " "})
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = srv.do(t, http.MethodDelete, "/api/teams/"+team.ID.String(), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, int64(1), testutil.Count(t, srv.DB, &models.Notification{},
		"user_id = ? AND type = ?", member.ID, models.NotificationTeamDeleted))

	rr = srv.do(t, http.MethodDelete, "/api/teams/"+team.ID.String(), nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestTeamHandler_MeetingUpdate(t *testing.T) {
	srv := newTestServer(t)
	stays := testutil.CreateTestUser(t, srv.DB, "Stays")
	leaves := testutil.CreateTestUser(t, srv.DB, "Leaves")
	joins := testutil.CreateTestUser(t, srv.DB, "Joins")
	team := testutil.CreateTestTeam(t, srv.DB, srv.User)

	rr := srv.do(t, http.MethodPost, "/api/teams/"+team.ID.String()+"/meetings",
		meetingBody("Review", "mandatory", stays.Email, leaves.Email))
	testutil.AssertStatus(t, rr, http.StatusCreated)

	var created dto.CreateMeetingResponse
	testutil.ParseJSONResponse(t, rr, &created)
	require.NotEqual(t, uuid.Nil, created.MeetingID)

	body := map[string]interface{}{
		"meetingTitle":     "Review v2",
		"meetingDate":      "2026-11-04",
		"invitationType":   "request",
		"newMemberEmails":  []string{joins.Email},
		"removedMemberIds": []string{leaves.ID.String()},
	}
	rr = srv.do(t, http.MethodPut, "/api/meetings/"+created.MeetingID.String(), body)
	testutil.AssertStatus(t, rr, http.StatusOK)

	assert.Equal(t, int64(2), testutil.Count(t, srv.DB, &models.Invitation{}, "meeting_id = ?", created.MeetingID))
	assert.Equal(t, int64(1), testutil.Count(t, srv.DB, &models.Notification{},
		"user_id = ? AND type = ?", leaves.ID, models.NotificationMeetingRemoved))
	assert.Equal(t, int64(1), testutil.Count(t, srv.DB, &models.Notification{},
		"user_id = ? AND type = ?", joins.ID, models.NotificationMeetingInvitation))

	body["removedMemberIds"] = []string{"nope"}
	rr = srv.do(t, http.MethodPut, "/api/meetings/"+created.MeetingID.String(), body)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = srv.do(t, http.MethodPut, fmt.Sprintf("/api/meeting-invitations/%s/respond", created.MeetingID), map[string]string{
		"userId":   stays.ID.String(),
		"response": "maybe",
	})
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = srv.do(t, http.MethodPut, fmt.Sprintf("/api/meeting-invitations/%s/respond", created.MeetingID), map[string]string{
		"userId":   leaves.ID.String(),
		"response": "accepted",
	})
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}
