package service

import (
	"fmt"
	"math"
	"time"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"golang.org/x/sync/errgroup"
)

// StatsService recomputes aggregates on read by scanning the user's goals
// and tasks; nothing is maintained incrementally.
type StatsService struct {
	statsRepository repository.StatsRepository
	goalRepository  repository.GoalRepository
	taskRepository  repository.TaskRepository
}

func NewStatsService(
	statsRepository repository.StatsRepository,
	goalRepository repository.GoalRepository,
	taskRepository repository.TaskRepository,
) *StatsService {
	return &StatsService{
		statsRepository: statsRepository,
		goalRepository:  goalRepository,
		taskRepository:  taskRepository,
	}
}

func (s *StatsService) Stats(userID string) (*model.UserStats, error) {
	var goals []*model.Goal
	var tasks []*model.Task

	var g errgroup.Group
	g.Go(func() error {
		var err error
		goals, err = s.goalRepository.Goals(userID)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = s.taskRepository.Tasks(userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to scan goals and tasks: %w", err)
	}

	now := nowUTC()
	stats := computeStats(userID, goals, tasks, now)

	err := s.statsRepository.Upsert(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to save stats: %w", err)
	}

	return stats, nil
}

func computeStats(userID string, goals []*model.Goal, tasks []*model.Task, now time.Time) *model.UserStats {
	stats := &model.UserStats{
		UserID:       userID,
		GoalsCreated: len(goals),
		TasksCreated: len(tasks),
		UpdatedAt:    now,
	}

	var lastActive time.Time
	completedDays := map[string]bool{}

	for _, goal := range goals {
		switch goal.Status {
		case model.GoalStatusCompleted:
			stats.GoalsCompleted++
		case model.GoalStatusActive:
			stats.ActiveGoals++
		}
		if goal.UpdatedAt.After(lastActive) {
			lastActive = goal.UpdatedAt
		}
	}

	for _, task := range tasks {
		if task.Status == model.TaskStatusCompleted {
			stats.TasksCompleted++
			stats.TotalHoursLogged += task.EstimatedHours
			if task.CompletedAt != nil {
				completedDays[task.CompletedAt.UTC().Format(time.DateOnly)] = true
			}
		}
		if task.UpdatedAt.After(lastActive) {
			lastActive = task.UpdatedAt
		}
	}

	if stats.TasksCreated > 0 {
		rate := float64(stats.TasksCompleted) / float64(stats.TasksCreated) * 100
		stats.CompletionRate = math.Round(rate*10) / 10
	}
	if !lastActive.IsZero() {
		stats.LastActiveDate = &lastActive
	}
	stats.StreakDays = streak(completedDays, now)

	return stats
}

// streak counts consecutive days with a completed task, ending today or
// yesterday.
func streak(days map[string]bool, now time.Time) int {
	day := now.UTC()
	if !days[day.Format(time.DateOnly)] {
		day = day.AddDate(0, 0, -1)
	}

	n := 0
	for days[day.Format(time.DateOnly)] {
		n++
		day = day.AddDate(0, 0, -1)
	}
	return n
}
