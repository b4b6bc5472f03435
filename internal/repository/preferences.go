package repository

import (
	"database/sql"
	"errors"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrPreferencesNotFound = errors.New("preferences not found")
)

type PreferencesRepository interface {
	ByUserID(userID string) (*model.UserPreferences, error)
	Upsert(prefs *model.UserPreferences) error
}

type preferencesRepository struct {
	db *sqlx.DB
}

func NewPreferencesRepository(db *sqlx.DB) PreferencesRepository {
	return &preferencesRepository{db: db}
}

func (r *preferencesRepository) ByUserID(userID string) (*model.UserPreferences, error) {
	var prefs model.UserPreferences
	err := r.db.Get(&prefs, `SELECT * FROM user_preferences WHERE user_id = $1`, userID)

	if err == sql.ErrNoRows {
		return nil, ErrPreferencesNotFound
	}
	if err != nil {
		return nil, err
	}

	return &prefs, nil
}

// Upsert keeps one document per user; created_at survives updates.
func (r *preferencesRepository) Upsert(prefs *model.UserPreferences) error {
	_, err := r.db.Exec(`
		INSERT INTO user_preferences (user_id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, prefs.UserID, prefs.Data, prefs.CreatedAt, prefs.UpdatedAt)

	return err
}
