package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/dreamtask/dreamtask/internal/agent"
	"github.com/dreamtask/dreamtask/internal/model"
)

// DefaultAgentUserID is sent to the decomposer for anonymous requests.
const DefaultAgentUserID = "default-user"

type DecompositionService struct {
	orchestrator *agent.Orchestrator
	workflows    *WorkflowService
	cloudLogging bool
}

func NewDecompositionService(orchestrator *agent.Orchestrator, workflows *WorkflowService, cloudLogging bool) *DecompositionService {
	return &DecompositionService{
		orchestrator: orchestrator,
		workflows:    workflows,
		cloudLogging: cloudLogging,
	}
}

// Decompose runs the orchestrator for an anonymous caller. The user id comes
// from userContext.userId or userContext.user_id.
func (s *DecompositionService) Decompose(ctx context.Context, goal, timeframe string, userContext json.RawMessage) (*agent.Plan, error) {
	req, err := s.request(goal, timeframe, contextUserID(userContext), userContext)
	if err != nil {
		return nil, err
	}

	return s.orchestrator.Decompose(ctx, req).Plan, nil
}

// DecomposeForUser runs the orchestrator and records a goal_analysis workflow.
// A fallback plan marks the workflow failed but still reaches the caller.
func (s *DecompositionService) DecomposeForUser(ctx context.Context, userID, goal, timeframe string) (*agent.Plan, error) {
	req, err := s.request(goal, timeframe, userID, nil)
	if err != nil {
		return nil, err
	}

	workflow, err := s.workflows.Start(userID, model.WorkflowTypeGoalAnalysis, nil,
		map[string]string{"goal": req.Goal, "timeframe": req.Timeframe})
	if err != nil {
		slog.Error("failed to start goal analysis workflow", "error", err, "user_id", userID)
	}

	outcome := s.orchestrator.Decompose(ctx, req)

	if workflow != nil {
		if outcome.Err != nil {
			err = s.workflows.Fail(workflow, outcome.Err, outcome.Plan)
		} else {
			err = s.workflows.Complete(workflow, outcome.Plan)
		}
		if err != nil {
			slog.Error("failed to finish goal analysis workflow", "error", err, "workflow_id", workflow.ID)
		}
	}

	return outcome.Plan, nil
}

func (s *DecompositionService) request(goal, timeframe, userID string, userContext json.RawMessage) (agent.Request, error) {
	goal = strings.TrimSpace(goal)
	timeframe = strings.TrimSpace(timeframe)
	if goal == "" || timeframe == "" {
		return agent.Request{}, invalid("Goal and timeframe are required")
	}

	return agent.Request{
		Goal:         goal,
		Timeframe:    timeframe,
		UserID:       stringOr(userID, DefaultAgentUserID),
		UserContext:  userContext,
		CloudLogging: s.cloudLogging,
	}, nil
}

func contextUserID(userContext json.RawMessage) string {
	if len(userContext) == 0 {
		return ""
	}

	var ids struct {
		UserID      string `json:"userId"`
		UserIDSnake string `json:"user_id"`
	}
	if err := json.Unmarshal(userContext, &ids); err != nil {
		return ""
	}

	return stringOr(ids.UserID, ids.UserIDSnake)
}
