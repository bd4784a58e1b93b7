package handlers

import (
	"net/http"

	"github.com/hugh/planit/internal/api/dto"
	"github.com/hugh/planit/internal/planner"
	"gorm.io/gorm"
)

// PlannerHandler serves a user's personal activities and goals.
type PlannerHandler struct {
	db      *gorm.DB
	planner *planner.Service
}

func NewPlannerHandler(db *gorm.DB, plannerService *planner.Service) *PlannerHandler {
	return &PlannerHandler{db: db, planner: plannerService}
}

func (h *PlannerHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req dto.ActivityRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	userID, err := resolveCaller(r, h.db, req.UserID)
	if err != nil {
		writeError(w, r, "Failed to create activity", err)
		return
	}

	id, err := h.planner.CreateActivity(r.Context(), userID, req.Input())
	if err != nil {
		writeError(w, r, "Failed to create activity", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.CreateActivityResponse{
		Response:   dto.OK("Activity created successfully"),
		ActivityID: id.String(),
	})
}

func (h *PlannerHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	userID, err := resolveCaller(r, h.db, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, "Failed to fetch activities", err)
		return
	}

	activities, err := h.planner.ListActivities(r.Context(), userID)
	if err != nil {
		writeError(w, r, "Failed to fetch activities", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ActivitiesResponse{
		Response:   dto.OK("Activities fetched successfully"),
		Activities: activities,
	})
}

func (h *PlannerHandler) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "activity")
	if err != nil {
		writeError(w, r, "Failed to update activity", err)
		return
	}

	var req dto.ActivityRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	if err := h.planner.UpdateActivity(r.Context(), id, req.Input()); err != nil {
		writeError(w, r, "Failed to update activity", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Activity updated successfully"))
}

func (h *PlannerHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "activity")
	if err != nil {
		writeError(w, r, "Failed to delete activity", err)
		return
	}

	if err := h.planner.DeleteActivity(r.Context(), id); err != nil {
		writeError(w, r, "Failed to delete activity", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Activity deleted successfully"))
}

func (h *PlannerHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var req dto.GoalRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	userID, err := resolveCaller(r, h.db, req.UserID)
	if err != nil {
		writeError(w, r, "Failed to create goal", err)
		return
	}

	saved, err := h.planner.CreateGoal(r.Context(), userID, req.Input())
	if err != nil {
		writeError(w, r, "Failed to create goal", err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.SaveGoalResponse{
		Response: dto.OK("Goal and timelines created successfully"),
		Saved:    saved,
	})
}

func (h *PlannerHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, err := resolveCaller(r, h.db, r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, "Failed to fetch goals", err)
		return
	}

	goals, err := h.planner.ListGoals(r.Context(), userID)
	if err != nil {
		writeError(w, r, "Failed to fetch goals", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.GoalsResponse{Response: dto.OK("Goals fetched successfully"), Goals: goals})
}

// UpdateGoal replaces the goal fields and all of its timelines.
func (h *PlannerHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "goal")
	if err != nil {
		writeError(w, r, "Failed to update goal", err)
		return
	}

	var req dto.GoalRequest
	if !decode(w, r, &req) {
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeValidation(w, errors)
		return
	}

	saved, err := h.planner.UpdateGoal(r.Context(), id, req.Input())
	if err != nil {
		writeError(w, r, "Failed to update goal", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.SaveGoalResponse{
		Response: dto.OK("Goal and timelines updated successfully"),
		Saved:    saved,
	})
}

func (h *PlannerHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "goal")
	if err != nil {
		writeError(w, r, "Failed to delete goal", err)
		return
	}

	if err := h.planner.DeleteGoal(r.Context(), id); err != nil {
		writeError(w, r, "Failed to delete goal", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Goal and associated timelines deleted successfully"))
}

func (h *PlannerHandler) DeleteTimeline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "timeline")
	if err != nil {
		writeError(w, r, "Failed to delete timeline", err)
		return
	}

	if err := h.planner.DeleteTimeline(r.Context(), id); err != nil {
		writeError(w, r, "Failed to delete timeline", err)
		return
	}
	writeJSON(w, http.StatusOK, dto.OK("Timeline deleted successfully"))
}
