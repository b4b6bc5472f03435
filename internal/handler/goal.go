package handler

import (
	"net/http"

	"github.com/dreamtask/dreamtask/internal/ctxkeys"
	"github.com/dreamtask/dreamtask/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.Goals(userID)
	if err != nil {
		respondError(w, err, "get goals", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.GoalInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, err, "decode goal")
		return
	}

	goal, err := h.goalService.Create(userID, in)
	if err != nil {
		respondError(w, err, "create goal", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	goal, err := h.goalService.ByID(userID, goalID)
	if err != nil {
		respondError(w, err, "get goal", "user_id", userID, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	var patch service.GoalPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondError(w, err, "decode goal")
		return
	}

	goal, err := h.goalService.Update(userID, goalID, patch)
	if err != nil {
		respondError(w, err, "update goal", "user_id", userID, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("id")

	err := h.goalService.Delete(userID, goalID)
	if err != nil {
		respondError(w, err, "delete goal", "user_id", userID, "goal_id", goalID)
		return
	}

	writeSuccess(w)
}
