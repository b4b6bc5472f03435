package handler

import (
	"net/http"

	"github.com/dreamtask/dreamtask/internal/ctxkeys"
	"github.com/dreamtask/dreamtask/internal/service"
)

type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req struct {
		Tasks []service.ScheduleTask `json:"tasks"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode schedule")
		return
	}

	schedule, err := h.scheduleService.Generate(userID, req.Tasks)
	if err != nil {
		respondError(w, err, "generate schedule", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"schedule": schedule,
	})
}
