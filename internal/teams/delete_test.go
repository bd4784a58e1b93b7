package teams

import (
	"testing"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteTeam(t *testing.T) {
	svc, setup := newTestService(t)
	ctx := testutil.TestContext(t)
	alice := testutil.CreateTestUser(t, setup.DB, "Alice")
	bob := testutil.CreateTestUser(t, setup.DB, "Bob")

	created, err := svc.CreateTeam(ctx, setup.User.ID, TeamInput{Name: "Doomed"},
		MeetingInput{Title: "A", Date: mustDate(t, "2025-01-01"), Mode: models.InvitationModeRequest, InviteeEmails: []string{alice.Email, bob.Email}},
		MeetingInput{Title: "B", Date: mustDate(t, "2025-01-02"), InviteeEmails: []string{alice.Email}},
	)
	require.NoError(t, err)

	// a second team the members share must survive
	survivor := testutil.CreateTestTeam(t, setup.DB, alice)
	testutil.CreateTestMeeting(t, setup.DB, survivor, models.InvitationModeMandatory, "2025-02-01")

	require.NoError(t, svc.DeleteTeam(ctx, created.TeamID))

	assert.Equal(t, int64(0), testutil.Count(t, setup.DB, &models.Team{}, "id = ?", created.TeamID))
	assert.Equal(t, int64(0), testutil.Count(t, setup.DB, &models.TeamMember{}, "team_id = ?", created.TeamID))
	assert.Equal(t, int64(0), testutil.Count(t, setup.DB, &models.Meeting{}, "team_id = ?", created.TeamID))
	assert.Equal(t, int64(0), testutil.Count(t, setup.DB, &models.Invitation{}, "meeting_id IN ?", created.MeetingIDs))
	assert.Equal(t, int64(0), testutil.Count(t, setup.DB, &models.Notification{}, "type = ?", models.NotificationMeetingInvitation))

	for _, u := range []*models.User{alice, bob} {
		var notes []models.Notification
		require.NoError(t, setup.DB.Where("user_id = ? AND type = ?", u.ID, models.NotificationTeamDeleted).Find(&notes).Error)
		require.Len(t, notes, 1, "one notice per non-creator member")
		assert.Equal(t, "Team Deleted: Doomed", notes[0].Title)
		assert.Equal(t, `The team "Doomed" has been deleted by the creator.`, notes[0].Message)
	}
	assert.Equal(t, int64(0), testutil.Count(t, setup.DB, &models.Notification{}, "user_id = ?", setup.User.ID))

	assert.Equal(t, int64(1), testutil.Count(t, setup.DB, &models.Team{}, "id = ?", survivor.ID))
	assert.Equal(t, int64(1), testutil.Count(t, setup.DB, &models.Meeting{}, "team_id = ?", survivor.ID))
}

func TestDeleteTeam_NotFoundWritesNothing(t *testing.T) {
	svc, setup := newTestService(t)

	err := svc.DeleteTeam(testutil.TestContext(t), uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, int64(0), testutil.Count(t, setup.DB, &models.Notification{}, ""))
}
