package repository

import (
	"database/sql"
	"errors"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(goalID string) (*model.Goal, error)
	Goals(userID string) ([]*model.Goal, error)
	Update(goal *model.Goal) error
	Delete(goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, category, priority, status, progress, timeframe, target_date, ai_analysis, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.Priority,
		goal.Status,
		goal.Progress,
		goal.Timeframe,
		goal.TargetDate,
		goal.AIAnalysis,
		goal.CreatedAt,
		goal.UpdatedAt,
	)

	return err
}

// ByID looks a goal up regardless of owner so callers can tell
// "absent" from "owned by someone else".
func (r *goalRepository) ByID(goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.Get(goal, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// Goals lists a user's goals, most recently created first.
func (r *goalRepository) Goals(userID string) ([]*model.Goal, error) {
	goals := []*model.Goal{}
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) Update(goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = $1, description = $2, category = $3, priority = $4, status = $5, progress = $6,
	              timeframe = $7, target_date = $8, ai_analysis = $9, updated_at = $10
	          WHERE id = $11`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.Priority,
		goal.Status,
		goal.Progress,
		goal.Timeframe,
		goal.TargetDate,
		goal.AIAnalysis,
		goal.UpdatedAt,
		goal.ID,
	)
	if err != nil {
		return err
	}

	return expectAffected(result, ErrGoalNotFound)
}

func (r *goalRepository) Delete(goalID string) error {
	query := `DELETE FROM goals WHERE id = $1`

	result, err := r.db.Exec(query, goalID)
	if err != nil {
		return err
	}

	return expectAffected(result, ErrGoalNotFound)
}
