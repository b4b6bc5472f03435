package model

import (
	"time"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusPaused    = "paused"
)

const (
	DefaultGoalCategory   = "personal"
	DefaultGoalTimeframe  = "3-months"
	DefaultGoalAIAnalysis = "AI analysis will be generated when processed"
)

type Goal struct {
	ID          string     `db:"id" json:"id"`
	UserID      string     `db:"user_id" json:"userId"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Category    string     `db:"category" json:"category"`
	Priority    string     `db:"priority" json:"priority"`
	Status      string     `db:"status" json:"status"`
	Progress    int        `db:"progress" json:"progress"`
	Timeframe   string     `db:"timeframe" json:"timeframe"`
	TargetDate  *time.Time `db:"target_date" json:"targetDate"`
	AIAnalysis  string     `db:"ai_analysis" json:"aiAnalysis"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updatedAt"`
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidGoalStatus(s string) bool {
	return s == GoalStatusActive || s == GoalStatusCompleted || s == GoalStatusPaused
}
