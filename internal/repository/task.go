package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrTaskNotFound = errors.New("task not found")
)

type TaskRepository interface {
	Create(task *model.Task) error
	CreateBatch(tasks []*model.Task) error
	ByID(taskID string) (*model.Task, error)
	Tasks(userID string) ([]*model.Task, error)
	TasksByGoal(userID, goalID string) ([]*model.Task, error)
	Update(task *model.Task) error
	Delete(taskID string) error
}

type taskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) TaskRepository {
	return &taskRepository{db: db}
}

const insertTaskQuery = `INSERT INTO tasks (id, user_id, goal_id, title, description, category, priority, status, progress,
	estimated_hours, due_date, completed_at, dependencies, tags, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

func taskArgs(task *model.Task) []any {
	return []any{
		task.ID,
		task.UserID,
		task.GoalID,
		task.Title,
		task.Description,
		task.Category,
		task.Priority,
		task.Status,
		task.Progress,
		task.EstimatedHours,
		task.DueDate,
		task.CompletedAt,
		task.Dependencies,
		task.Tags,
		task.CreatedAt,
		task.UpdatedAt,
	}
}

func (r *taskRepository) Create(task *model.Task) error {
	_, err := r.db.Exec(insertTaskQuery, taskArgs(task)...)
	return err
}

// CreateBatch inserts all tasks or none.
func (r *taskRepository) CreateBatch(tasks []*model.Task) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, task := range tasks {
		_, err := tx.Exec(insertTaskQuery, taskArgs(task)...)
		if err != nil {
			return fmt.Errorf("insert task %q: %w", task.Title, err)
		}
	}

	return tx.Commit()
}

func (r *taskRepository) ByID(taskID string) (*model.Task, error) {
	task := &model.Task{}
	query := `SELECT * FROM tasks WHERE id = $1`

	err := r.db.Get(task, query, taskID)
	if err == sql.ErrNoRows {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	return task, nil
}

func (r *taskRepository) Tasks(userID string) ([]*model.Task, error) {
	tasks := []*model.Task{}
	query := `SELECT * FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&tasks, query, userID)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) TasksByGoal(userID, goalID string) ([]*model.Task, error) {
	tasks := []*model.Task{}
	query := `SELECT * FROM tasks WHERE user_id = $1 AND goal_id = $2 ORDER BY created_at DESC`

	err := r.db.Select(&tasks, query, userID, goalID)
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

func (r *taskRepository) Update(task *model.Task) error {
	query := `UPDATE tasks
	          SET goal_id = $1, title = $2, description = $3, category = $4, priority = $5, status = $6, progress = $7,
	              estimated_hours = $8, due_date = $9, completed_at = $10, dependencies = $11, tags = $12, updated_at = $13
	          WHERE id = $14`

	result, err := r.db.Exec(query,
		task.GoalID,
		task.Title,
		task.Description,
		task.Category,
		task.Priority,
		task.Status,
		task.Progress,
		task.EstimatedHours,
		task.DueDate,
		task.CompletedAt,
		task.Dependencies,
		task.Tags,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return err
	}

	return expectAffected(result, ErrTaskNotFound)
}

func (r *taskRepository) Delete(taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.Exec(query, taskID)
	if err != nil {
		return err
	}

	return expectAffected(result, ErrTaskNotFound)
}
