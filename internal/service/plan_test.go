package service

import (
	"testing"
	"time"

	"github.com/dreamtask/dreamtask/internal/agent"
	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanService_ApplyFallbackPlan(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	now := time.Now().UTC()
	plan := agent.Fallback(agent.Request{Goal: "Run a marathon", Timeframe: "3 months", UserID: user.ID}, now)

	goal, tasks, err := env.plans.Apply(user.ID, ApplyPlanInput{Goal: "Run a marathon", Timeframe: "3 months", Plan: *plan})
	require.NoError(t, err)

	assert.Equal(t, "Run a marathon", goal.Title)
	assert.Equal(t, model.GoalStatusActive, goal.Status)
	require.NotNil(t, goal.TargetDate)
	assert.WithinDuration(t, now.AddDate(0, 0, 90), *goal.TargetDate, time.Minute)
	require.Len(t, tasks, 5)

	stored, err := env.tasks.Tasks(user.ID, goal.ID)
	require.NoError(t, err)
	require.Len(t, stored, 5)
	// newest-first listing keeps the plan order
	for i := range tasks {
		assert.Equal(t, tasks[i].ID, stored[i].ID)
		assert.Equal(t, model.TaskStatusPending, stored[i].Status)
	}

	workflows, err := env.workflows.Workflows(user.ID)
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	assert.Equal(t, model.WorkflowTypeTaskGeneration, workflows[0].WorkflowType)
	require.NotNil(t, workflows[0].GoalID)
	assert.Equal(t, goal.ID, *workflows[0].GoalID)
}

func TestPlanService_ApplyNormalizesTasks(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	plan := agent.Plan{
		Success:  true,
		Analysis: agent.Analysis{Summary: "Doable with steady practice"},
		Tasks: []agent.Task{
			{Title: "Practice scales", Priority: "critical", EstimatedHours: -2},
		},
	}

	goal, tasks, err := env.plans.Apply(user.ID, ApplyPlanInput{Goal: "Learn piano", Timeframe: "6 months", Plan: plan})
	require.NoError(t, err)

	assert.Equal(t, "Doable with steady practice", goal.AIAnalysis)
	assert.Nil(t, goal.TargetDate)
	require.Len(t, tasks, 1)
	assert.Equal(t, model.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, "Practice scales", tasks[0].Description)
	assert.Equal(t, "general", tasks[0].Category)
	assert.Zero(t, tasks[0].EstimatedHours)
}

func TestPlanService_ApplyValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	_, _, err := env.plans.Apply(user.ID, ApplyPlanInput{Timeframe: "3 months"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Goal and timeframe are required", err.Error())

	_, _, err = env.plans.Apply(user.ID, ApplyPlanInput{Goal: "x", Timeframe: "3 months"})
	assert.ErrorIs(t, err, ErrValidation)

	_, _, err = env.plans.Apply(user.ID, ApplyPlanInput{Goal: "x", Timeframe: "3 months", Plan: agent.Plan{Tasks: []agent.Task{{Title: " "}}}})
	assert.ErrorIs(t, err, ErrValidation)

	goals, err := env.goals.Goals(user.ID)
	require.NoError(t, err)
	assert.Empty(t, goals)
}
