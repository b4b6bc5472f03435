package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dreamtask/dreamtask/internal/agent"
	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/google/uuid"
)

const defaultTaskCategory = "general"

type ApplyPlanInput struct {
	Goal       string       `json:"goal"`
	Timeframe  string       `json:"timeframe"`
	TargetDate OptionalTime `json:"targetDate"`
	Plan       agent.Plan   `json:"plan"`
}

// PlanService persists an accepted decomposition plan as a goal and its tasks.
type PlanService struct {
	goalRepository repository.GoalRepository
	taskRepository repository.TaskRepository
	workflows      *WorkflowService
}

func NewPlanService(goalRepository repository.GoalRepository, taskRepository repository.TaskRepository, workflows *WorkflowService) *PlanService {
	return &PlanService{
		goalRepository: goalRepository,
		taskRepository: taskRepository,
		workflows:      workflows,
	}
}

func (s *PlanService) Apply(userID string, in ApplyPlanInput) (*model.Goal, []*model.Task, error) {
	in.Goal = strings.TrimSpace(in.Goal)
	in.Timeframe = strings.TrimSpace(in.Timeframe)
	if in.Goal == "" || in.Timeframe == "" {
		return nil, nil, invalid("Goal and timeframe are required")
	}
	if len(in.Plan.Tasks) == 0 {
		return nil, nil, invalid("Plan has no tasks")
	}

	now := nowUTC()

	targetDate := in.TargetDate.Time
	if !in.TargetDate.Set {
		targetDate = targetDateFor(now, in.Plan.Timeline.TotalDurationDays)
	}

	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Goal,
		Description: in.Goal,
		Category:    model.DefaultGoalCategory,
		Priority:    model.PriorityMedium,
		Status:      model.GoalStatusActive,
		Timeframe:   in.Timeframe,
		TargetDate:  targetDate,
		AIAnalysis:  planSummary(&in.Plan),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tasks := make([]*model.Task, 0, len(in.Plan.Tasks))
	for i, pt := range in.Plan.Tasks {
		title := strings.TrimSpace(pt.Title)
		if title == "" {
			return nil, nil, invalid("plan task %d has no title", i+1)
		}

		priority := pt.Priority
		if !model.ValidPriority(priority) {
			priority = model.PriorityMedium
		}

		// Keep list order visible under newest-first listing.
		created := now.Add(-time.Duration(i) * time.Millisecond)

		tasks = append(tasks, &model.Task{
			ID:             uuid.New().String(),
			UserID:         userID,
			GoalID:         &goal.ID,
			Title:          title,
			Description:    stringOr(pt.Description, title),
			Category:       stringOr(pt.Category, defaultTaskCategory),
			Priority:       priority,
			Status:         model.TaskStatusPending,
			EstimatedHours: max(pt.EstimatedHours, 0),
			Dependencies:   stringList(pt.Dependencies),
			Tags:           stringList(pt.Tags),
			CreatedAt:      created,
			UpdatedAt:      created,
		})
	}

	err := s.goalRepository.Create(goal)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create goal: %w", err)
	}

	err = s.taskRepository.CreateBatch(tasks)
	if err != nil {
		delErr := s.goalRepository.Delete(goal.ID)
		if delErr != nil {
			slog.Error("failed to delete goal during rollback", "error", delErr, "goal_id", goal.ID)
		}
		return nil, nil, fmt.Errorf("failed to create plan tasks: %w", err)
	}

	s.workflows.Record(userID, model.WorkflowTypeTaskGeneration, &goal.ID,
		map[string]any{"goal": in.Goal, "timeframe": in.Timeframe, "fallback": in.Plan.Fallback, "planId": in.Plan.PlanID},
		map[string]any{"goalId": goal.ID, "taskCount": len(tasks)})

	slog.Info("plan applied", "user_id", userID, "goal_id", goal.ID, "tasks", len(tasks))
	return goal, tasks, nil
}

func planSummary(plan *agent.Plan) string {
	if plan.Analysis.Summary != "" {
		return plan.Analysis.Summary
	}
	if plan.Analysis.ComplexityLevel == "" {
		return model.DefaultGoalAIAnalysis
	}
	return fmt.Sprintf("Complexity: %s. Feasibility: %.0f%%. Key challenges: %s.",
		plan.Analysis.ComplexityLevel,
		plan.Analysis.FeasibilityScore*100,
		strings.Join(plan.Analysis.KeyChallenges, ", "))
}

func targetDateFor(now time.Time, days int) *time.Time {
	if days <= 0 {
		return nil
	}
	t := now.AddDate(0, 0, days)
	return &t
}
