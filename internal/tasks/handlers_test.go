package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestHandler(t *testing.T) (*Handler, *testutil.TestSetup) {
	t.Helper()
	setup := testutil.NewTestContext(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(setup.DB, logger), setup
}

func readNotification(t *testing.T, db *gorm.DB, user *models.User, age time.Duration) *models.Notification {
	t.Helper()
	n := testutil.CreateTestNotification(t, db, user, models.NotificationTeamDeleted, nil)
	require.NoError(t, db.Model(n).Updates(map[string]interface{}{
		"is_read":    true,
		"created_at": time.Now().Add(-age),
	}).Error)
	return n
}

func TestNewNotificationPurgeTask(t *testing.T) {
	task, err := NewNotificationPurgeTask(30)
	require.NoError(t, err)
	assert.Equal(t, TypeNotificationPurge, task.Type())
	assert.JSONEq(t, `{"retention_days":30}`, string(task.Payload()))
}

func TestHandleNotificationPurge(t *testing.T) {
	handler, setup := newTestHandler(t)
	old := readNotification(t, setup.DB, setup.User, 40*24*time.Hour)
	recent := readNotification(t, setup.DB, setup.User, 2*24*time.Hour)
	unread := testutil.CreateTestNotification(t, setup.DB, setup.User, models.NotificationMeetingCanceled, nil)
	require.NoError(t, setup.DB.Model(unread).Update("created_at", time.Now().Add(-60*24*time.Hour)).Error)

	task, err := NewNotificationPurgeTask(30)
	require.NoError(t, err)
	require.NoError(t, handler.HandleNotificationPurge(context.Background(), task))

	assert.Zero(t, testutil.Count(t, setup.DB, &models.Notification{}, "id = ?", old.ID))
	assert.Equal(t, int64(1), testutil.Count(t, setup.DB, &models.Notification{}, "id = ?", recent.ID))
	assert.Equal(t, int64(1), testutil.Count(t, setup.DB, &models.Notification{}, "id = ?", unread.ID))
}

func TestHandleNotificationPurge_Disabled(t *testing.T) {
	handler, setup := newTestHandler(t)
	readNotification(t, setup.DB, setup.User, 400*24*time.Hour)

	task, err := NewNotificationPurgeTask(0)
	require.NoError(t, err)
	require.NoError(t, handler.HandleNotificationPurge(context.Background(), task))

	assert.Equal(t, int64(1), testutil.Count(t, setup.DB, &models.Notification{}, ""))
}

func TestHandleNotificationPurge_InvalidPayload(t *testing.T) {
	handler, _ := newTestHandler(t)

	err := handler.HandleNotificationPurge(context.Background(), asynq.NewTask(TypeNotificationPurge, []byte("invalid json")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshal payload")
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestRegisterHandlers(t *testing.T) {
	handler, _ := newTestHandler(t)
	handler.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	mux := asynq.NewServeMux()
	handler.RegisterHandlers(mux)

	task, err := NewNotificationPurgeTask(7)
	require.NoError(t, err)
	assert.NoError(t, mux.ProcessTask(context.Background(), task))
}
