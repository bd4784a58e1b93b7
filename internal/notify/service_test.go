package notify

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/apperr"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *testutil.TestSetup) {
	t.Helper()
	setup := testutil.NewTestContext(t)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(setup.DB, logger), setup
}

func backdate(t *testing.T, db *gorm.DB, n *models.Notification, age time.Duration) {
	t.Helper()
	require.NoError(t, db.Model(&models.Notification{}).Where("id = ?", n.ID).
		Update("created_at", time.Now().Add(-age)).Error)
}

func TestBatch_NotifyAndCount(t *testing.T) {
	_, setup := newTestService(t)
	meetingID := uuid.New()

	b := NewBatch()
	err := setup.DB.Transaction(func(tx *gorm.DB) error {
		if err := b.Notify(tx, setup.User.ID, models.NotificationMeetingInvitation, "Meeting Invitation: Sync", "msg", &meetingID); err != nil {
			return err
		}
		return b.Notify(tx, setup.User.ID, models.NotificationTeamDeleted, "Team Deleted: Core", "msg", nil)
	})
	require.NoError(t, err)
	b.Commit()

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 1, b.Count(models.NotificationTeamDeleted))
	assert.Equal(t, int64(2), testutil.Count(t, setup.DB, &models.Notification{}, "user_id = ?", setup.User.ID))
}

func TestBatch_RolledBackWritesNothing(t *testing.T) {
	_, setup := newTestService(t)

	b := NewBatch()
	err := setup.DB.Transaction(func(tx *gorm.DB) error {
		if err := b.Notify(tx, setup.User.ID, models.NotificationMeetingRemoved, "Removed", "msg", nil); err != nil {
			return err
		}
		return apperr.Conflict("abort")
	})
	require.Error(t, err)

	assert.Equal(t, int64(0), testutil.Count(t, setup.DB, &models.Notification{}, ""))
}

func TestList_JoinsLiveInvitationState(t *testing.T) {
	svc, setup := newTestService(t)
	ctx := testutil.TestContext(t)

	team := testutil.CreateTestTeam(t, setup.DB, setup.User)
	invitee := testutil.CreateTestUser(t, setup.DB, "Invitee")
	meeting := testutil.CreateTestMeeting(t, setup.DB, team, models.InvitationModeRequest, "2025-06-01")
	inv := testutil.CreateTestInvitation(t, setup.DB, meeting, invitee)

	older := testutil.CreateTestNotification(t, setup.DB, invitee, models.NotificationMeetingInvitation, &meeting.ID)
	backdate(t, setup.DB, older, time.Hour)
	newer := testutil.CreateTestNotification(t, setup.DB, invitee, models.NotificationTeamDeleted, nil)
	testutil.CreateTestNotification(t, setup.DB, setup.User, models.NotificationMemberLeftTeam, nil)

	inbox, err := svc.List(ctx, invitee.ID)
	require.NoError(t, err)
	require.Len(t, inbox.Notifications, 2)
	assert.Equal(t, 2, inbox.UnreadCount)

	assert.Equal(t, newer.ID, inbox.Notifications[0].ID)
	assert.Nil(t, inbox.Notifications[0].InvitationStatus)

	first := inbox.Notifications[1]
	assert.Equal(t, older.ID, first.ID)
	require.NotNil(t, first.InvitationStatus)
	assert.Equal(t, models.InvitationStatusPending, *first.InvitationStatus)
	require.NotNil(t, first.InvitationMode)
	assert.Equal(t, models.InvitationModeRequest, *first.InvitationMode)

	// a stale notice reflects the current response
	require.NoError(t, setup.DB.Model(inv).Update("status", models.InvitationStatusAccepted).Error)
	inbox, err = svc.List(ctx, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationStatusAccepted, *inbox.Notifications[1].InvitationStatus)
}

func TestList_Empty(t *testing.T) {
	svc, setup := newTestService(t)

	inbox, err := svc.List(testutil.TestContext(t), setup.User.ID)
	require.NoError(t, err)
	assert.NotNil(t, inbox.Notifications)
	assert.Empty(t, inbox.Notifications)
	assert.Zero(t, inbox.UnreadCount)
}

func TestMarkRead(t *testing.T) {
	svc, setup := newTestService(t)
	ctx := testutil.TestContext(t)
	n := testutil.CreateTestNotification(t, setup.DB, setup.User, models.NotificationMeetingCanceled, nil)

	require.NoError(t, svc.MarkRead(ctx, n.ID))

	var got models.Notification
	require.NoError(t, setup.DB.First(&got, "id = ?", n.ID).Error)
	assert.True(t, got.IsRead)

	assert.ErrorIs(t, svc.MarkRead(ctx, uuid.New()), apperr.ErrNotFound)
}

func TestMarkAllRead(t *testing.T) {
	svc, setup := newTestService(t)
	ctx := testutil.TestContext(t)
	other := testutil.CreateTestUser(t, setup.DB, "Other")

	testutil.CreateTestNotification(t, setup.DB, setup.User, models.NotificationMeetingCanceled, nil)
	testutil.CreateTestNotification(t, setup.DB, setup.User, models.NotificationMeetingRemoved, nil)
	testutil.CreateTestNotification(t, setup.DB, other, models.NotificationMeetingRemoved, nil)

	changed, err := svc.MarkAllRead(ctx, setup.User.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	assert.Equal(t, int64(0), testutil.Count(t, setup.DB, &models.Notification{}, "user_id = ? AND is_read = ?", setup.User.ID, false))
	assert.Equal(t, int64(1), testutil.Count(t, setup.DB, &models.Notification{}, "user_id = ? AND is_read = ?", other.ID, false))
}

func TestDelete(t *testing.T) {
	svc, setup := newTestService(t)
	ctx := testutil.TestContext(t)
	n := testutil.CreateTestNotification(t, setup.DB, setup.User, models.NotificationMeetingCanceled, nil)

	require.NoError(t, svc.Delete(ctx, n.ID))
	assert.ErrorIs(t, svc.Delete(ctx, n.ID), apperr.ErrNotFound)
}

func TestPurge(t *testing.T) {
	svc, setup := newTestService(t)
	ctx := testutil.TestContext(t)

	team := testutil.CreateTestTeam(t, setup.DB, setup.User)
	meeting := testutil.CreateTestMeeting(t, setup.DB, team, models.InvitationModeRequest, "2025-06-01")
	testutil.CreateTestInvitation(t, setup.DB, meeting, setup.User)

	oldRead := testutil.CreateTestNotification(t, setup.DB, setup.User, models.NotificationMeetingCanceled, nil)
	oldUnread := testutil.CreateTestNotification(t, setup.DB, setup.User, models.NotificationMeetingCanceled, nil)
	pendingNotice := testutil.CreateTestNotification(t, setup.DB, setup.User, models.NotificationMeetingInvitation, &meeting.ID)
	recentRead := testutil.CreateTestNotification(t, setup.DB, setup.User, models.NotificationTeamDeleted, nil)

	for _, n := range []*models.Notification{oldRead, oldUnread, pendingNotice} {
		backdate(t, setup.DB, n, 48*time.Hour)
	}
	require.NoError(t, setup.DB.Model(&models.Notification{}).
		Where("id IN ?", []uuid.UUID{oldRead.ID, pendingNotice.ID, recentRead.ID}).
		Update("is_read", true).Error)

	purged, err := svc.Purge(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	var remaining []uuid.UUID
	require.NoError(t, setup.DB.Model(&models.Notification{}).Pluck("id", &remaining).Error)
	assert.ElementsMatch(t, []uuid.UUID{oldUnread.ID, pendingNotice.ID, recentRead.ID}, remaining)
}
