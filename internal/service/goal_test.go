package service

import (
	"encoding/json"
	"testing"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalService_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	goal, err := env.goals.Create(user.ID, GoalInput{Title: "Learn Spanish", Description: "Conversational level"})
	require.NoError(t, err)

	assert.Equal(t, model.GoalStatusActive, goal.Status)
	assert.Equal(t, model.PriorityMedium, goal.Priority)
	assert.Equal(t, "3-months", goal.Timeframe)
	assert.Equal(t, "personal", goal.Category)
	assert.Equal(t, 0, goal.Progress)
	assert.Nil(t, goal.TargetDate)

	stored, err := env.goals.ByID(user.ID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.Title, stored.Title)
}

func TestGoalService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	_, err := env.goals.Create(user.ID, GoalInput{Title: "  ", Description: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.goals.Create(user.ID, GoalInput{Title: "x", Description: "x", Priority: "urgent"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "priority")

	tooMuch := 120
	_, err = env.goals.Create(user.ID, GoalInput{Title: "x", Description: "x", Progress: &tooMuch})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGoalService_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "ada@example.com")
	grace := env.register(t, "grace@example.com")

	goal, err := env.goals.Create(ada.ID, GoalInput{Title: "Run a marathon", Description: "Sub four hours"})
	require.NoError(t, err)

	_, err = env.goals.ByID(grace.ID, goal.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.goals.ByID(grace.ID, "missing")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	title := "Stolen"
	_, err = env.goals.Update(grace.ID, goal.ID, GoalPatch{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)

	assert.ErrorIs(t, env.goals.Delete(grace.ID, goal.ID), ErrForbidden)
	assert.ErrorIs(t, env.goals.Delete(grace.ID, "missing"), repository.ErrGoalNotFound)

	require.NoError(t, env.goals.Delete(ada.ID, goal.ID))
	_, err = env.goals.ByID(ada.ID, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalService_UpdatePartial(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	var in GoalInput
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Ship v1","description":"Launch","targetDate":"2025-12-31"}`), &in))
	goal, err := env.goals.Create(user.ID, in)
	require.NoError(t, err)
	require.NotNil(t, goal.TargetDate)

	var patch GoalPatch
	require.NoError(t, json.Unmarshal([]byte(`{"progress":40}`), &patch))
	goal, err = env.goals.Update(user.ID, goal.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, 40, goal.Progress)
	assert.Equal(t, "Ship v1", goal.Title)
	assert.NotNil(t, goal.TargetDate)

	patch = GoalPatch{}
	require.NoError(t, json.Unmarshal([]byte(`{"targetDate":null,"status":"paused"}`), &patch))
	goal, err = env.goals.Update(user.ID, goal.ID, patch)
	require.NoError(t, err)
	assert.Nil(t, goal.TargetDate)
	assert.Equal(t, model.GoalStatusPaused, goal.Status)

	stored, err := env.goals.ByID(user.ID, goal.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.TargetDate)
	assert.Equal(t, 40, stored.Progress)
}
