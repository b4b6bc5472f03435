package handler

import (
	"encoding/json"
	"net/http"

	"github.com/dreamtask/dreamtask/internal/ctxkeys"
	"github.com/dreamtask/dreamtask/internal/service"
)

// AgentHandler serves goal decomposition and the records it leaves behind.
type AgentHandler struct {
	decompositionService *service.DecompositionService
	planService          *service.PlanService
	workflowService      *service.WorkflowService
}

func NewAgentHandler(
	decompositionService *service.DecompositionService,
	planService *service.PlanService,
	workflowService *service.WorkflowService,
) *AgentHandler {
	return &AgentHandler{
		decompositionService: decompositionService,
		planService:          planService,
		workflowService:      workflowService,
	}
}

type decomposeRequest struct {
	Goal        string          `json:"goal"`
	Timeframe   string          `json:"timeframe"`
	UserContext json.RawMessage `json:"userContext"`
}

// ProcessGoalPublic handles the unauthenticated decomposition endpoint. A
// decomposer failure still answers 200 with the fallback plan.
func (h *AgentHandler) ProcessGoalPublic(w http.ResponseWriter, r *http.Request) {
	var req decomposeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode goal")
		return
	}

	plan, err := h.decompositionService.Decompose(r.Context(), req.Goal, req.Timeframe, req.UserContext)
	if err != nil {
		respondError(w, err, "process goal")
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (h *AgentHandler) ProcessGoal(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var req decomposeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, err, "decode goal")
		return
	}

	plan, err := h.decompositionService.DecomposeForUser(r.Context(), userID, req.Goal, req.Timeframe)
	if err != nil {
		respondError(w, err, "process goal", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

func (h *AgentHandler) ApplyPlan(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var in service.ApplyPlanInput
	if err := decodeJSON(w, r, &in); err != nil {
		respondError(w, err, "decode plan")
		return
	}

	goal, tasks, err := h.planService.Apply(userID, in)
	if err != nil {
		respondError(w, err, "apply plan", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"goal":    goal,
		"tasks":   tasks,
	})
}

func (h *AgentHandler) Workflows(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	workflows, err := h.workflowService.Workflows(userID)
	if err != nil {
		respondError(w, err, "get workflows", "user_id", userID)
		return
	}

	writeJSON(w, http.StatusOK, workflows)
}
