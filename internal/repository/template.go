package repository

import (
	"database/sql"
	"errors"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrDuplicateTemplate = errors.New("template already exists")
)

type TemplateRepository interface {
	Create(tmpl *model.ContentTemplate) error
	ByID(id string) (*model.ContentTemplate, error)
	ByName(name string) (*model.ContentTemplate, error)
	Templates(category string) ([]*model.ContentTemplate, error)
	IncrementUsage(id string) error
}

type templateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(tmpl *model.ContentTemplate) error {
	query := `INSERT INTO content_templates (id, name, category, template, variables, is_default, usage_count, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		tmpl.ID,
		tmpl.Name,
		tmpl.Category,
		tmpl.Template,
		tmpl.Variables,
		tmpl.IsDefault,
		tmpl.UsageCount,
		tmpl.CreatedAt,
		tmpl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateTemplate
		}
		return err
	}

	return nil
}

func (r *templateRepository) ByID(id string) (*model.ContentTemplate, error) {
	tmpl := &model.ContentTemplate{}

	err := r.db.Get(tmpl, `SELECT * FROM content_templates WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	return tmpl, nil
}

func (r *templateRepository) ByName(name string) (*model.ContentTemplate, error) {
	tmpl := &model.ContentTemplate{}

	err := r.db.Get(tmpl, `SELECT * FROM content_templates WHERE name = $1`, name)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}

	return tmpl, nil
}

// Templates lists templates, defaults first. An empty category lists all.
func (r *templateRepository) Templates(category string) ([]*model.ContentTemplate, error) {
	templates := []*model.ContentTemplate{}

	var err error
	if category == "" {
		err = r.db.Select(&templates, `SELECT * FROM content_templates ORDER BY is_default DESC, name ASC`)
	} else {
		err = r.db.Select(&templates, `SELECT * FROM content_templates WHERE category = $1 ORDER BY is_default DESC, name ASC`, category)
	}
	if err != nil {
		return nil, err
	}

	return templates, nil
}

func (r *templateRepository) IncrementUsage(id string) error {
	result, err := r.db.Exec(`UPDATE content_templates SET usage_count = usage_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}

	return expectAffected(result, ErrTemplateNotFound)
}
