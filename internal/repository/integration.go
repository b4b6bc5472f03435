package repository

import (
	"database/sql"
	"errors"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrIntegrationNotFound  = errors.New("integration not found")
	ErrDuplicateIntegration = errors.New("integration already exists")
)

type IntegrationRepository interface {
	Create(integration *model.Integration) error
	ByID(integrationID string) (*model.Integration, error)
	ByPlatform(userID, platformID string) (*model.Integration, error)
	Integrations(userID string) ([]*model.Integration, error)
	Update(integration *model.Integration) error
}

type integrationRepository struct {
	db *sqlx.DB
}

func NewIntegrationRepository(db *sqlx.DB) IntegrationRepository {
	return &integrationRepository{db: db}
}

func (r *integrationRepository) Create(integration *model.Integration) error {
	query := `INSERT INTO integrations (id, user_id, platform_id, platform_name, category, status, last_sync, settings, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		integration.ID,
		integration.UserID,
		integration.PlatformID,
		integration.PlatformName,
		integration.Category,
		integration.Status,
		integration.LastSync,
		integration.Settings,
		integration.CreatedAt,
		integration.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateIntegration
		}
		return err
	}

	return nil
}

func (r *integrationRepository) ByID(integrationID string) (*model.Integration, error) {
	integration := &model.Integration{}
	query := `SELECT * FROM integrations WHERE id = $1`

	err := r.db.Get(integration, query, integrationID)
	if err == sql.ErrNoRows {
		return nil, ErrIntegrationNotFound
	}
	if err != nil {
		return nil, err
	}

	return integration, nil
}

func (r *integrationRepository) ByPlatform(userID, platformID string) (*model.Integration, error) {
	integration := &model.Integration{}
	query := `SELECT * FROM integrations WHERE user_id = $1 AND platform_id = $2`

	err := r.db.Get(integration, query, userID, platformID)
	if err == sql.ErrNoRows {
		return nil, ErrIntegrationNotFound
	}
	if err != nil {
		return nil, err
	}

	return integration, nil
}

func (r *integrationRepository) Integrations(userID string) ([]*model.Integration, error) {
	integrations := []*model.Integration{}
	query := `SELECT * FROM integrations WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&integrations, query, userID)
	if err != nil {
		return nil, err
	}

	return integrations, nil
}

func (r *integrationRepository) Update(integration *model.Integration) error {
	query := `UPDATE integrations
	          SET platform_name = $1, category = $2, status = $3, last_sync = $4, settings = $5, updated_at = $6
	          WHERE id = $7`

	result, err := r.db.Exec(query,
		integration.PlatformName,
		integration.Category,
		integration.Status,
		integration.LastSync,
		integration.Settings,
		integration.UpdatedAt,
		integration.ID,
	)
	if err != nil {
		return err
	}

	return expectAffected(result, ErrIntegrationNotFound)
}
