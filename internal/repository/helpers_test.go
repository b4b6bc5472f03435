package repository

import (
	"testing"
	"time"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func seedUserShape(email string) *model.User {
	return &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hash",
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
}

func seedUser(t *testing.T, db *sqlx.DB, email string) *model.User {
	t.Helper()
	u := seedUserShape(email)
	require.NoError(t, NewUserRepository(db).Create(u))
	return u
}

func newGoal(userID, title string, createdAt time.Time) *model.Goal {
	return &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: "desc",
		Category:    model.DefaultGoalCategory,
		Priority:    model.PriorityMedium,
		Status:      model.GoalStatusActive,
		Timeframe:   model.DefaultGoalTimeframe,
		AIAnalysis:  model.DefaultGoalAIAnalysis,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func newTask(userID string, goalID *string, title string, createdAt time.Time) *model.Task {
	return &model.Task{
		ID:           uuid.New().String(),
		UserID:       userID,
		GoalID:       goalID,
		Title:        title,
		Description:  "desc",
		Category:     "planning",
		Priority:     model.PriorityMedium,
		Status:       model.TaskStatusPending,
		Dependencies: model.StringList{},
		Tags:         model.StringList{"a"},
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}
