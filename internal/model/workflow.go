package model

import (
	"time"
)

const (
	WorkflowTypeGoalAnalysis         = "goal_analysis"
	WorkflowTypeTaskGeneration       = "task_generation"
	WorkflowTypeScheduleOptimization = "schedule_optimization"
	WorkflowTypeProgressTracking     = "progress_tracking"
	WorkflowTypeIntegrationSync      = "integration_sync"
	WorkflowTypeSmartRecommendations = "smart_recommendations"
)

const (
	WorkflowStatusPending   = "pending"
	WorkflowStatusCompleted = "completed"
	WorkflowStatusFailed    = "failed"
)

// AgentWorkflow audits one orchestration invocation. It is written pending
// and updated once to a terminal status.
type AgentWorkflow struct {
	ID           string     `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"userId"`
	GoalID       *string    `db:"goal_id" json:"goalId,omitempty"`
	TaskID       *string    `db:"task_id" json:"taskId,omitempty"`
	WorkflowType string     `db:"workflow_type" json:"workflowType"`
	Status       string     `db:"status" json:"status"`
	InputData    RawJSON    `db:"input_data" json:"inputData"`
	OutputData   RawJSON    `db:"output_data" json:"outputData"`
	ErrorMessage *string    `db:"error_message" json:"errorMessage,omitempty"`
	StartedAt    time.Time  `db:"started_at" json:"startedAt"`
	CompletedAt  *time.Time `db:"completed_at" json:"completedAt,omitempty"`
}

func (w *AgentWorkflow) IsTerminal() bool {
	return w.Status == WorkflowStatusCompleted || w.Status == WorkflowStatusFailed
}
