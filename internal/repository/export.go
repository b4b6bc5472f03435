package repository

import (
	"database/sql"
	"errors"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrExportNotFound = errors.New("export not found")
)

type ExportRepository interface {
	Create(export *model.Export) error
	ByID(id string) (*model.Export, error)
	Exports(userID string) ([]*model.Export, error)
	Delete(id string) error
}

type exportRepository struct {
	db *sqlx.DB
}

func NewExportRepository(db *sqlx.DB) ExportRepository {
	return &exportRepository{db: db}
}

func (r *exportRepository) Create(export *model.Export) error {
	query := `INSERT INTO exports (id, user_id, storage_path, size, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(query, export.ID, export.UserID, export.StoragePath, export.Size, export.CreatedAt)
	return err
}

func (r *exportRepository) ByID(id string) (*model.Export, error) {
	export := &model.Export{}

	err := r.db.Get(export, `SELECT * FROM exports WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrExportNotFound
	}
	if err != nil {
		return nil, err
	}

	return export, nil
}

func (r *exportRepository) Exports(userID string) ([]*model.Export, error) {
	exports := []*model.Export{}

	err := r.db.Select(&exports, `SELECT * FROM exports WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}

	return exports, nil
}

func (r *exportRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM exports WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectAffected(result, ErrExportNotFound)
}
