package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dreamtask/dreamtask/internal/agent"
	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDecomposition(env *testEnv, runner agent.Runner) *DecompositionService {
	orchestrator := agent.NewOrchestrator(runner, agent.Options{
		Timeout: time.Second,
		Now:     func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) },
	})
	return NewDecompositionService(orchestrator, env.workflows, false)
}

func TestDecompositionService_PublicUsesContextUserID(t *testing.T) {
	env := newTestEnv(t)

	var seen []agent.Request
	svc := newDecomposition(env, runnerFunc(func(ctx context.Context, req agent.Request) (*agent.Plan, error) {
		seen = append(seen, req)
		return &agent.Plan{Success: true, Tasks: []agent.Task{{Title: "Step one"}}}, nil
	}))

	plan, err := svc.Decompose(context.Background(), "Learn guitar", "6 months", json.RawMessage(`{"user_id":"u-42"}`))
	require.NoError(t, err)
	assert.Equal(t, "u-42", plan.UserID)

	_, err = svc.Decompose(context.Background(), "Learn guitar", "6 months", nil)
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "u-42", seen[0].UserID)
	assert.Equal(t, DefaultAgentUserID, seen[1].UserID)

	_, err = svc.Decompose(context.Background(), "Learn guitar", " ", nil)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Goal and timeframe are required", err.Error())
}

func TestDecompositionService_FallbackMarksWorkflowFailed(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	svc := newDecomposition(env, agent.NewScriptRunner("scripts/portia_agent.py", []string{"dreamtask-missing-python3"}))

	plan, err := svc.DecomposeForUser(context.Background(), user.ID, "Run a marathon", "3 months")
	require.NoError(t, err)
	assert.True(t, plan.Fallback)
	assert.Len(t, plan.Tasks, 5)
	assert.Equal(t, 90, plan.Timeline.TotalDurationDays)

	workflows, err := env.workflows.Workflows(user.ID)
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	w := workflows[0]
	assert.Equal(t, model.WorkflowTypeGoalAnalysis, w.WorkflowType)
	assert.Equal(t, model.WorkflowStatusFailed, w.Status)
	require.NotNil(t, w.ErrorMessage)
	assert.Contains(t, *w.ErrorMessage, agent.ErrNoInterpreter.Error())
	assert.NotNil(t, w.CompletedAt)

	var stored agent.Plan
	require.NoError(t, json.Unmarshal(w.OutputData, &stored))
	assert.True(t, stored.Fallback)
}

func TestDecompositionService_SuccessCompletesWorkflow(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	svc := newDecomposition(env, runnerFunc(func(ctx context.Context, req agent.Request) (*agent.Plan, error) {
		return &agent.Plan{Success: true, Tasks: []agent.Task{{Title: "Warm up"}}}, nil
	}))

	plan, err := svc.DecomposeForUser(context.Background(), user.ID, "Run a marathon", "3 months")
	require.NoError(t, err)
	assert.False(t, plan.Fallback)
	assert.Equal(t, user.ID, plan.UserID)

	workflows, err := env.workflows.Workflows(user.ID)
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	assert.Equal(t, model.WorkflowStatusCompleted, workflows[0].Status)
	assert.Nil(t, workflows[0].ErrorMessage)
}

func TestDecompositionService_RunnerErrorStillReturnsPlan(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	svc := newDecomposition(env, runnerFunc(func(ctx context.Context, req agent.Request) (*agent.Plan, error) {
		return nil, errors.New("model overloaded")
	}))

	plan, err := svc.DecomposeForUser(context.Background(), user.ID, "Write a novel", "1 year")
	require.NoError(t, err)
	assert.True(t, plan.Fallback)
	assert.Equal(t, user.ID, plan.UserID)
}

func TestContextUserID(t *testing.T) {
	assert.Equal(t, "a", contextUserID(json.RawMessage(`{"userId":"a","user_id":"b"}`)))
	assert.Equal(t, "b", contextUserID(json.RawMessage(`{"user_id":"b"}`)))
	assert.Equal(t, "", contextUserID(json.RawMessage(`[1,2]`)))
	assert.Equal(t, "", contextUserID(nil))
}
