package model

import (
	"time"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

type Task struct {
	ID             string     `db:"id" json:"id"`
	UserID         string     `db:"user_id" json:"userId"`
	GoalID         *string    `db:"goal_id" json:"goalId"`
	Title          string     `db:"title" json:"title"`
	Description    string     `db:"description" json:"description"`
	Category       string     `db:"category" json:"category"`
	Priority       string     `db:"priority" json:"priority"`
	Status         string     `db:"status" json:"status"`
	Progress       int        `db:"progress" json:"progress"`
	EstimatedHours float64    `db:"estimated_hours" json:"estimatedHours"`
	DueDate        *time.Time `db:"due_date" json:"dueDate"`
	CompletedAt    *time.Time `db:"completed_at" json:"completedAt"`
	// Dependencies reference other tasks by title; they are not checked.
	Dependencies StringList `db:"dependencies" json:"dependencies"`
	Tags         StringList `db:"tags" json:"tags"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

func ValidTaskStatus(s string) bool {
	return s == TaskStatusPending || s == TaskStatusInProgress || s == TaskStatusCompleted
}
