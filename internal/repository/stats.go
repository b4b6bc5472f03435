package repository

import (
	"database/sql"
	"errors"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrStatsNotFound = errors.New("stats not found")
)

type StatsRepository interface {
	ByUserID(userID string) (*model.UserStats, error)
	Upsert(stats *model.UserStats) error
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) ByUserID(userID string) (*model.UserStats, error) {
	stats := &model.UserStats{}
	query := `SELECT * FROM user_stats WHERE user_id = $1`

	err := r.db.Get(stats, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrStatsNotFound
	}
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *statsRepository) Upsert(stats *model.UserStats) error {
	query := `
		INSERT INTO user_stats (user_id, goals_created, goals_completed, tasks_created, tasks_completed,
			total_hours_logged, streak_days, last_active_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			goals_created = excluded.goals_created,
			goals_completed = excluded.goals_completed,
			tasks_created = excluded.tasks_created,
			tasks_completed = excluded.tasks_completed,
			total_hours_logged = excluded.total_hours_logged,
			streak_days = excluded.streak_days,
			last_active_date = excluded.last_active_date,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query,
		stats.UserID,
		stats.GoalsCreated,
		stats.GoalsCompleted,
		stats.TasksCreated,
		stats.TasksCompleted,
		stats.TotalHoursLogged,
		stats.StreakDays,
		stats.LastActiveDate,
		stats.UpdatedAt,
	)

	return err
}
