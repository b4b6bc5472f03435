package service

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/google/uuid"
)

const defaultWorkflowLimit = 50

// WorkflowService keeps the AgentWorkflow audit trail. Each record is written
// pending and finished exactly once.
type WorkflowService struct {
	repo repository.WorkflowRepository
}

func NewWorkflowService(repo repository.WorkflowRepository) *WorkflowService {
	return &WorkflowService{repo: repo}
}

func (s *WorkflowService) Start(userID, workflowType string, goalID *string, input any) (*model.AgentWorkflow, error) {
	data, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode workflow input: %w", err)
	}

	workflow := &model.AgentWorkflow{
		ID:           uuid.New().String(),
		UserID:       userID,
		GoalID:       goalID,
		WorkflowType: workflowType,
		Status:       model.WorkflowStatusPending,
		InputData:    model.RawJSON(data),
		StartedAt:    nowUTC(),
	}

	err = s.repo.Create(workflow)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	return workflow, nil
}

func (s *WorkflowService) Complete(workflow *model.AgentWorkflow, output any) error {
	return s.finish(workflow, model.WorkflowStatusCompleted, output, "")
}

// Fail records the failure cause; output holds whatever was returned instead.
func (s *WorkflowService) Fail(workflow *model.AgentWorkflow, cause error, output any) error {
	return s.finish(workflow, model.WorkflowStatusFailed, output, cause.Error())
}

func (s *WorkflowService) finish(workflow *model.AgentWorkflow, status string, output any, message string) error {
	if workflow.IsTerminal() {
		return fmt.Errorf("workflow %s already %s", workflow.ID, workflow.Status)
	}

	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("failed to encode workflow output: %w", err)
	}

	now := nowUTC()
	workflow.Status = status
	workflow.OutputData = model.RawJSON(data)
	workflow.CompletedAt = &now
	if message != "" {
		workflow.ErrorMessage = &message
	}

	return s.repo.Finish(workflow)
}

// Record writes a workflow that is already complete.
func (s *WorkflowService) Record(userID, workflowType string, goalID *string, input, output any) {
	workflow, err := s.Start(userID, workflowType, goalID, input)
	if err == nil {
		err = s.Complete(workflow, output)
	}
	if err != nil {
		slog.Error("failed to record workflow", "error", err, "user_id", userID, "type", workflowType)
	}
}

func (s *WorkflowService) Workflows(userID string) ([]*model.AgentWorkflow, error) {
	return s.repo.Workflows(userID, defaultWorkflowLimit)
}
