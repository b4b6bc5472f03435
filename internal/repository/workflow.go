package repository

import (
	"database/sql"
	"errors"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrWorkflowNotFound = errors.New("workflow not found")
)

type WorkflowRepository interface {
	Create(workflow *model.AgentWorkflow) error
	ByID(workflowID string) (*model.AgentWorkflow, error)
	Workflows(userID string, limit int) ([]*model.AgentWorkflow, error)
	Finish(workflow *model.AgentWorkflow) error
}

type workflowRepository struct {
	db *sqlx.DB
}

func NewWorkflowRepository(db *sqlx.DB) WorkflowRepository {
	return &workflowRepository{db: db}
}

func (r *workflowRepository) Create(workflow *model.AgentWorkflow) error {
	query := `INSERT INTO agent_workflows (id, user_id, goal_id, task_id, workflow_type, status, input_data, output_data, error_message, started_at, completed_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(query,
		workflow.ID,
		workflow.UserID,
		workflow.GoalID,
		workflow.TaskID,
		workflow.WorkflowType,
		workflow.Status,
		workflow.InputData,
		workflow.OutputData,
		workflow.ErrorMessage,
		workflow.StartedAt,
		workflow.CompletedAt,
	)

	return err
}

func (r *workflowRepository) ByID(workflowID string) (*model.AgentWorkflow, error) {
	workflow := &model.AgentWorkflow{}
	query := `SELECT * FROM agent_workflows WHERE id = $1`

	err := r.db.Get(workflow, query, workflowID)
	if err == sql.ErrNoRows {
		return nil, ErrWorkflowNotFound
	}
	if err != nil {
		return nil, err
	}

	return workflow, nil
}

func (r *workflowRepository) Workflows(userID string, limit int) ([]*model.AgentWorkflow, error) {
	workflows := []*model.AgentWorkflow{}
	query := `SELECT * FROM agent_workflows WHERE user_id = $1 ORDER BY started_at DESC LIMIT $2`

	err := r.db.Select(&workflows, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return workflows, nil
}

// Finish moves a pending workflow to its terminal state. A workflow that is
// already terminal is left untouched and reported as not found.
func (r *workflowRepository) Finish(workflow *model.AgentWorkflow) error {
	query := `UPDATE agent_workflows
	          SET status = $1, goal_id = $2, task_id = $3, output_data = $4, error_message = $5, completed_at = $6
	          WHERE id = $7 AND status = $8`

	result, err := r.db.Exec(query,
		workflow.Status,
		workflow.GoalID,
		workflow.TaskID,
		workflow.OutputData,
		workflow.ErrorMessage,
		workflow.CompletedAt,
		workflow.ID,
		model.WorkflowStatusPending,
	)
	if err != nil {
		return err
	}

	return expectAffected(result, ErrWorkflowNotFound)
}
