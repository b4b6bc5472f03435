package service

import (
	"fmt"
	"time"

	"github.com/dreamtask/dreamtask/internal/model"
)

type ScheduleTask struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	EstimatedHours float64 `json:"estimatedHours"`
	Priority       string  `json:"priority"`
	Category       string  `json:"category"`
}

type ScheduleSlot struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	Duration  float64   `json:"duration"`
	Priority  string    `json:"priority"`
	Category  string    `json:"category"`
}

// GenerateSchedule gives each task a slot, one hour apart from now.
func GenerateSchedule(tasks []ScheduleTask, now time.Time) []ScheduleSlot {
	slots := make([]ScheduleSlot, 0, len(tasks))
	for i, task := range tasks {
		duration := task.EstimatedHours
		if duration <= 0 {
			duration = 1
		}
		id := task.ID
		if id == "" {
			id = fmt.Sprintf("task-%d", i)
		}
		slots = append(slots, ScheduleSlot{
			ID:        id,
			Title:     task.Title,
			StartTime: now.Add(time.Duration(i) * time.Hour),
			Duration:  duration,
			Priority:  stringOr(task.Priority, model.PriorityMedium),
			Category:  stringOr(task.Category, defaultTaskCategory),
		})
	}
	return slots
}

type ScheduleService struct {
	workflows *WorkflowService
}

func NewScheduleService(workflows *WorkflowService) *ScheduleService {
	return &ScheduleService{workflows: workflows}
}

// Generate builds the schedule and records a schedule_optimization workflow.
func (s *ScheduleService) Generate(userID string, tasks []ScheduleTask) ([]ScheduleSlot, error) {
	if tasks == nil {
		return nil, invalid("Tasks array is required")
	}

	slots := GenerateSchedule(tasks, nowUTC())
	s.workflows.Record(userID, model.WorkflowTypeScheduleOptimization, nil,
		map[string]any{"tasks": len(tasks)}, slots)

	return slots, nil
}
