package model

import (
	"time"
)

type UserStats struct {
	UserID           string     `db:"user_id" json:"userId"`
	GoalsCreated     int        `db:"goals_created" json:"goalsCreated"`
	GoalsCompleted   int        `db:"goals_completed" json:"goalsCompleted"`
	TasksCreated     int        `db:"tasks_created" json:"tasksCreated"`
	TasksCompleted   int        `db:"tasks_completed" json:"tasksCompleted"`
	TotalHoursLogged float64    `db:"total_hours_logged" json:"totalHoursLogged"`
	StreakDays       int        `db:"streak_days" json:"streakDays"`
	LastActiveDate   *time.Time `db:"last_active_date" json:"lastActiveDate"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`

	// Computed fields (not in database)
	ActiveGoals    int     `db:"-" json:"activeGoals"`
	CompletionRate float64 `db:"-" json:"completionRate"`
}
