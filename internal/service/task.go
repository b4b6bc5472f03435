package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/dreamtask/dreamtask/internal/validation"
	"github.com/google/uuid"
)

type TaskInput struct {
	GoalID         string       `json:"goalId"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	Priority       string       `json:"priority"`
	Status         string       `json:"status"`
	Progress       *int         `json:"progress"`
	EstimatedHours float64      `json:"estimatedHours"`
	DueDate        OptionalTime `json:"dueDate"`
	Dependencies   []string     `json:"dependencies"`
	Tags           []string     `json:"tags"`
}

type TaskPatch struct {
	// GoalID relinks the task; an empty string unlinks it.
	GoalID         *string      `json:"goalId"`
	Title          *string      `json:"title"`
	Description    *string      `json:"description"`
	Category       *string      `json:"category"`
	Priority       *string      `json:"priority"`
	Status         *string      `json:"status"`
	Progress       *int         `json:"progress"`
	EstimatedHours *float64     `json:"estimatedHours"`
	DueDate        OptionalTime `json:"dueDate"`
	Dependencies   *[]string    `json:"dependencies"`
	Tags           *[]string    `json:"tags"`
}

type TaskService struct {
	repo  repository.TaskRepository
	goals *GoalService
}

func NewTaskService(repo repository.TaskRepository, goals *GoalService) *TaskService {
	return &TaskService{repo: repo, goals: goals}
}

func (s *TaskService) Create(userID string, in TaskInput) (*model.Task, error) {
	if err := validation.Required(
		validation.Field{Name: "title", Value: in.Title},
		validation.Field{Name: "description", Value: in.Description},
		validation.Field{Name: "category", Value: in.Category},
	); err != nil {
		return nil, invalid("Title, description, and category are required")
	}

	now := nowUTC()
	task := &model.Task{
		ID:             uuid.New().String(),
		UserID:         userID,
		Title:          strings.TrimSpace(in.Title),
		Description:    in.Description,
		Category:       in.Category,
		Priority:       stringOr(in.Priority, model.PriorityMedium),
		Status:         model.TaskStatusPending,
		EstimatedHours: in.EstimatedHours,
		DueDate:        in.DueDate.Time,
		Dependencies:   stringList(in.Dependencies),
		Tags:           stringList(in.Tags),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Progress != nil {
		task.Progress = *in.Progress
	}
	setTaskStatus(task, stringOr(in.Status, model.TaskStatusPending), now)

	if in.GoalID != "" {
		if _, err := s.goals.ByID(userID, in.GoalID); err != nil {
			return nil, err
		}
		task.GoalID = &in.GoalID
	}

	if err := validateTask(task); err != nil {
		return nil, err
	}

	err := s.repo.Create(task)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// Tasks lists the user's tasks, optionally only those linked to goalID.
func (s *TaskService) Tasks(userID, goalID string) ([]*model.Task, error) {
	if goalID != "" {
		return s.repo.TasksByGoal(userID, goalID)
	}
	return s.repo.Tasks(userID)
}

func (s *TaskService) ByID(userID, taskID string) (*model.Task, error) {
	task, err := s.repo.ByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, ErrForbidden
	}
	return task, nil
}

func (s *TaskService) Update(userID, taskID string, patch TaskPatch) (*model.Task, error) {
	task, err := s.ByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	now := nowUTC()

	if patch.GoalID != nil {
		if *patch.GoalID == "" {
			task.GoalID = nil
		} else {
			if _, err := s.goals.ByID(userID, *patch.GoalID); err != nil {
				return nil, err
			}
			goalID := *patch.GoalID
			task.GoalID = &goalID
		}
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, invalid("title cannot be empty")
		}
		task.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Category != nil {
		if strings.TrimSpace(*patch.Category) == "" {
			return nil, invalid("category cannot be empty")
		}
		task.Category = *patch.Category
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Status != nil {
		setTaskStatus(task, *patch.Status, now)
	}
	if patch.Progress != nil {
		task.Progress = *patch.Progress
	}
	if patch.EstimatedHours != nil {
		task.EstimatedHours = *patch.EstimatedHours
	}
	if patch.DueDate.Set {
		task.DueDate = patch.DueDate.Time
	}
	if patch.Dependencies != nil {
		task.Dependencies = stringList(*patch.Dependencies)
	}
	if patch.Tags != nil {
		task.Tags = stringList(*patch.Tags)
	}

	return s.save(task, now)
}

// UpdateProgress is the quick status/progress update used by task lists.
func (s *TaskService) UpdateProgress(userID, taskID string, status *string, progress *int) (*model.Task, error) {
	if taskID == "" {
		return nil, invalid("Task ID is required")
	}
	return s.Update(userID, taskID, TaskPatch{Status: status, Progress: progress})
}

func (s *TaskService) Delete(userID, taskID string) error {
	if _, err := s.ByID(userID, taskID); err != nil {
		return err
	}
	return s.repo.Delete(taskID)
}

func (s *TaskService) save(task *model.Task, now time.Time) (*model.Task, error) {
	if err := validateTask(task); err != nil {
		return nil, err
	}

	task.UpdatedAt = now
	err := s.repo.Update(task)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// setTaskStatus stamps completedAt on entering completed and clears it on leaving.
func setTaskStatus(task *model.Task, status string, now time.Time) {
	switch {
	case status != model.TaskStatusCompleted:
		task.CompletedAt = nil
	case task.Status != model.TaskStatusCompleted || task.CompletedAt == nil:
		task.CompletedAt = &now
	}
	task.Status = status
}

func validateTask(task *model.Task) error {
	if err := validation.OneOf("priority", task.Priority, model.PriorityLow, model.PriorityMedium, model.PriorityHigh); err != nil {
		return invalidErr(err)
	}
	if err := validation.OneOf("status", task.Status, model.TaskStatusPending, model.TaskStatusInProgress, model.TaskStatusCompleted); err != nil {
		return invalidErr(err)
	}
	if err := validation.Percent("progress", task.Progress); err != nil {
		return invalidErr(err)
	}
	if task.EstimatedHours < 0 {
		return invalid("estimatedHours cannot be negative")
	}
	return nil
}

func stringList(items []string) model.StringList {
	if items == nil {
		return model.StringList{}
	}
	return model.StringList(items)
}
