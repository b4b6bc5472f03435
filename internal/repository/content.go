package repository

import (
	"time"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/jmoiron/sqlx"
)

type ContentRepository interface {
	Active() ([]*model.AppContent, error)
	Upsert(key, value, contentType string, now time.Time) error
}

type contentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Active() ([]*model.AppContent, error) {
	items := []*model.AppContent{}
	query := `SELECT * FROM app_content WHERE is_active = $1 ORDER BY key`

	err := r.db.Select(&items, query, true)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Upsert writes one key. Repeating it with the same value changes nothing
// but updated_at and never creates a second row.
func (r *contentRepository) Upsert(key, value, contentType string, now time.Time) error {
	query := `
		INSERT INTO app_content (key, value, type, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			type = excluded.type,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Exec(query, key, value, contentType, true, now, now)
	return err
}
