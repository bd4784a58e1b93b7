package handlers_test

import (
	"net/http"
	"testing"

	"github.com/hugh/planit/internal/api/dto"
	"github.com/hugh/planit/internal/database/models"
	"github.com/hugh/planit/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerHandler_Activities(t *testing.T) {
	srv := newTestServer(t)
	userID := srv.User.ID.String()

	rr := srv.do(t, http.MethodPost, "/api/activities", map[string]string{
		"userId":            userID,
		"activityTitle":     "Gym",
		"activityDate":      "2026-10-20",
		"activityStartTime": "18:00",
	})
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var created dto.CreateActivityResponse
	testutil.ParseJSONResponse(t, rr, &created)
	require.NotEmpty(t, created.ActivityID)

	rr = srv.do(t, http.MethodPost, "/api/activities", map[string]string{
		"userId":       userID,
		"activityDate": "2026-10-20",
	})
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	rr = srv.do(t, http.MethodPut, "/api/activities/"+created.ActivityID, map[string]string{
		"activityTitle": "Swim",
		"activityDate":  "2026-10-21",
	})
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = srv.do(t, http.MethodGet, "/api/activities?userId="+userID, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var list dto.ActivitiesResponse
	testutil.ParseJSONResponse(t, rr, &list)
	require.Len(t, list.Activities, 1)
	assert.Equal(t, "Swim", list.Activities[0].Title)
	assert.Nil(t, list.Activities[0].StartTime)

	rr = srv.do(t, http.MethodDelete, "/api/activities/"+created.ActivityID, nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	rr = srv.do(t, http.MethodDelete, "/api/activities/"+created.ActivityID, nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestPlannerHandler_Goals(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.doAuth(t, http.MethodPost, "/api/goals", map[string]interface{}{
		"goalTitle":    "Ship v1",
		"goalProgress": 10,
		"timelines": []map[string]string{
			{"timelineTitle": "Design", "timelineStartDate": "2026-11-01"},
			{"timelineTitle": "Build", "timelineStartDate": "2026-11-15"},
		},
	}, srv.Token)
	testutil.AssertStatus(t, rr, http.StatusCreated)

	var saved dto.SaveGoalResponse
	testutil.ParseJSONResponse(t, rr, &saved)
	require.NotNil(t, saved.Saved)
	require.Len(t, saved.TimelineIDs, 2)

	rr = srv.do(t, http.MethodGet, "/api/goals?userId="+srv.User.ID.String(), nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var goals dto.GoalsResponse
	testutil.ParseJSONResponse(t, rr, &goals)
	require.Len(t, goals.Goals, 1)
	require.Len(t, goals.Goals[0].Timelines, 2)
	assert.Equal(t, "Design", goals.Goals[0].Timelines[0].Title)

	t.Run("progress out of range", func(t *testing.T) {
		rr := srv.do(t, http.MethodPut, "/api/goals/"+saved.GoalID.String(), map[string]interface{}{
			"goalTitle":    "Ship v1",
			"goalProgress": 150,
			"timelines":    []map[string]string{{"timelineTitle": "Only"}},
		})
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("last timeline survives", func(t *testing.T) {
		rr := srv.do(t, http.MethodDelete, "/api/timelines/"+saved.TimelineIDs[0].String(), nil)
		testutil.AssertStatus(t, rr, http.StatusOK)

		rr = srv.do(t, http.MethodDelete, "/api/timelines/"+saved.TimelineIDs[1].String(), nil)
		testutil.AssertStatus(t, rr, http.StatusConflict)
		assert.Equal(t, int64(1), testutil.Count(t, srv.DB, &models.Timeline{}, "id = ?", saved.TimelineIDs[1]))
	})

	t.Run("delete goal", func(t *testing.T) {
		rr := srv.do(t, http.MethodDelete, "/api/goals/"+saved.GoalID.String(), nil)
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.Zero(t, testutil.Count(t, srv.DB, &models.Timeline{}, ""))
	})
}
