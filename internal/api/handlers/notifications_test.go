package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/hugh/planit/internal/api/dto"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNotificationHandler(t *testing.T) {
	srv := newTestServer(t)
	first := testutil.CreateTestNotification(t, srv.DB, srv.User, models.NotificationTeamDeleted, nil)
	testutil.CreateTestNotification(t, srv.DB, srv.User, models.NotificationMeetingCanceled, nil)
	testutil.CreateTestNotification(t, srv.DB, srv.User, models.NotificationMemberLeftTeam, nil)

	rr := srv.do(t, http.MethodPut, "/api/notifications/"+first.ID.String()+"/read", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = srv.do(t, http.MethodPut, "/api/notifications/mark-all-read", map[string]string{"userId": srv.User.ID.String()})
	testutil.AssertStatus(t, rr, http.StatusOK)
	var marked dto.MarkAllReadResponse
	testutil.ParseJSONResponse(t, rr, &marked)
	assert.Equal(t, int64(2), marked.Updated)

	rr = srv.do(t, http.MethodDelete, "/api/notifications/"+first.ID.String(), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = srv.doAuth(t, http.MethodGet, "/api/notifications", nil, srv.Token)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var inbox dto.NotificationsResponse
	testutil.ParseJSONResponse(t, rr, &inbox)
	assert.Len(t, inbox.Notifications, 2)
	assert.Zero(t, inbox.UnreadCount)

	testutil.AssertStatus(t, srv.do(t, http.MethodPut, "/api/notifications/"+uuid.New().String()+"/read", nil), http.StatusNotFound)
	testutil.AssertStatus(t, srv.do(t, http.MethodGet, "/api/notifications", nil), http.StatusBadRequest)
}
