package handler

import (
	"net/http"

	"github.com/dreamtask/dreamtask/internal/ctxkeys"
	"github.com/dreamtask/dreamtask/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.URL.Query().Get("goalId")

	tasks, err := h.taskService.Tasks(userID, goalID)
	if err != nil {
		respondError(w, err, "get tasks", "user_id", userID, "goal_id", goalID)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.TaskInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, err, "decode task")
		return
	}

	task, err := h.taskService.Create(userID, in)
	if err != nil {
		respondError(w, err, "create task", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// UpdateProgress handles PATCH /api/tasks {taskId, status, progress}.
func (h *TaskHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req struct {
		TaskID   string  `json:"taskId"`
		Status   *string `json:"status"`
		Progress *int    `json:"progress"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode task progress")
		return
	}

	task, err := h.taskService.UpdateProgress(userID, req.TaskID, req.Status, req.Progress)
	if err != nil {
		respondError(w, err, "update task progress", "user_id", userID, "task_id", req.TaskID)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	taskID := r.PathValue("id")

	task, err := h.taskService.ByID(userID, taskID)
	if err != nil {
		respondError(w, err, "get task", "user_id", userID, "task_id", taskID)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	taskID := r.PathValue("id")

	var patch service.TaskPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondError(w, err, "decode task")
		return
	}

	task, err := h.taskService.Update(userID, taskID, patch)
	if err != nil {
		respondError(w, err, "update task", "user_id", userID, "task_id", taskID)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	taskID := r.PathValue("id")

	err := h.taskService.Delete(userID, taskID)
	if err != nil {
		respondError(w, err, "delete task", "user_id", userID, "task_id", taskID)
		return
	}

	writeSuccess(w)
}
