package service

import (
	"fmt"
	"strings"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/dreamtask/dreamtask/internal/validation"
	"github.com/google/uuid"
)

type GoalInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Priority    string       `json:"priority"`
	Status      string       `json:"status"`
	Timeframe   string       `json:"timeframe"`
	Progress    *int         `json:"progress"`
	TargetDate  OptionalTime `json:"targetDate"`
	AIAnalysis  string       `json:"aiAnalysis"`
}

// GoalPatch updates only the fields present in the request.
type GoalPatch struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Category    *string      `json:"category"`
	Priority    *string      `json:"priority"`
	Status      *string      `json:"status"`
	Timeframe   *string      `json:"timeframe"`
	Progress    *int         `json:"progress"`
	TargetDate  OptionalTime `json:"targetDate"`
	AIAnalysis  *string      `json:"aiAnalysis"`
}

type GoalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

func (s *GoalService) Create(userID string, in GoalInput) (*model.Goal, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || strings.TrimSpace(in.Description) == "" {
		return nil, invalid("Title and description are required")
	}

	now := nowUTC()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Category:    stringOr(in.Category, model.DefaultGoalCategory),
		Priority:    stringOr(in.Priority, model.PriorityMedium),
		Status:      stringOr(in.Status, model.GoalStatusActive),
		Timeframe:   stringOr(in.Timeframe, model.DefaultGoalTimeframe),
		TargetDate:  in.TargetDate.Time,
		AIAnalysis:  stringOr(in.AIAnalysis, model.DefaultGoalAIAnalysis),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Progress != nil {
		goal.Progress = *in.Progress
	}

	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) Goals(userID string) ([]*model.Goal, error) {
	return s.repo.Goals(userID)
}

// ByID returns the goal if the user owns it. A missing goal is
// ErrGoalNotFound for every caller; someone else's goal is ErrForbidden.
func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, ErrForbidden
	}
	return goal, nil
}

func (s *GoalService) Update(userID, goalID string, patch GoalPatch) (*model.Goal, error) {
	goal, err := s.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, invalid("title cannot be empty")
		}
		goal.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		goal.Description = *patch.Description
	}
	if patch.Category != nil {
		goal.Category = stringOr(*patch.Category, model.DefaultGoalCategory)
	}
	if patch.Priority != nil {
		goal.Priority = *patch.Priority
	}
	if patch.Status != nil {
		goal.Status = *patch.Status
	}
	if patch.Timeframe != nil {
		goal.Timeframe = stringOr(*patch.Timeframe, model.DefaultGoalTimeframe)
	}
	if patch.Progress != nil {
		goal.Progress = *patch.Progress
	}
	if patch.TargetDate.Set {
		goal.TargetDate = patch.TargetDate.Time
	}
	if patch.AIAnalysis != nil {
		goal.AIAnalysis = *patch.AIAnalysis
	}

	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	goal.UpdatedAt = nowUTC()
	err = s.repo.Update(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return goal, nil
}

func (s *GoalService) Delete(userID, goalID string) error {
	if _, err := s.ByID(userID, goalID); err != nil {
		return err
	}
	return s.repo.Delete(goalID)
}

func validateGoal(goal *model.Goal) error {
	if err := validation.OneOf("priority", goal.Priority, model.PriorityLow, model.PriorityMedium, model.PriorityHigh); err != nil {
		return invalidErr(err)
	}
	if err := validation.OneOf("status", goal.Status, model.GoalStatusActive, model.GoalStatusCompleted, model.GoalStatusPaused); err != nil {
		return invalidErr(err)
	}
	if err := validation.Percent("progress", goal.Progress); err != nil {
		return invalidErr(err)
	}
	return nil
}

