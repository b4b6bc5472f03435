package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dreamtask/dreamtask/internal/markdown"
	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/google/uuid"
)

type ContentService struct {
	contentRepository  repository.ContentRepository
	templateRepository repository.TemplateRepository
	parser             *markdown.Parser
	appName            string
}

func NewContentService(
	contentRepository repository.ContentRepository,
	templateRepository repository.TemplateRepository,
	parser *markdown.Parser,
	appName string,
) *ContentService {
	return &ContentService{
		contentRepository:  contentRepository,
		templateRepository: templateRepository,
		parser:             parser,
		appName:            appName,
	}
}

// Content returns the default display strings overlaid with stored active keys.
func (s *ContentService) Content() (map[string]string, error) {
	content := model.DefaultAppContent(s.appName)

	stored, err := s.contentRepository.Active()
	if err != nil {
		return nil, fmt.Errorf("failed to get content: %w", err)
	}
	for _, item := range stored {
		content[item.Key] = item.Value
	}

	return content, nil
}

// Update upserts every key; repeating a call changes nothing.
func (s *ContentService) Update(values map[string]string) error {
	if len(values) == 0 {
		return invalid("Content object is required")
	}
	for key := range values {
		if strings.TrimSpace(key) == "" {
			return invalid("content keys cannot be empty")
		}
	}

	now := nowUTC()
	for key, value := range values {
		err := s.contentRepository.Upsert(key, value, model.ContentTypeText, now)
		if err != nil {
			return fmt.Errorf("failed to update content %q: %w", key, err)
		}
	}

	return nil
}

// SeedTemplates stores every template file in dir whose name is not yet
// known. Invalid files are logged and skipped.
func (s *ContentService) SeedTemplates(dir string) (int, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return 0, err
	}

	seeded := 0
	for _, file := range files {
		source, err := os.ReadFile(file)
		if err != nil {
			return seeded, fmt.Errorf("failed to read template %s: %w", file, err)
		}

		tmpl, err := s.parser.ParseTemplate(source)
		if err != nil {
			slog.Warn("skipping content template", "file", file, "error", err)
			continue
		}

		_, err = s.templateRepository.ByName(tmpl.Meta.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrTemplateNotFound) {
			return seeded, fmt.Errorf("failed to get template: %w", err)
		}

		now := nowUTC()
		err = s.templateRepository.Create(&model.ContentTemplate{
			ID:        uuid.New().String(),
			Name:      tmpl.Meta.Name,
			Category:  stringOr(tmpl.Meta.Category, "general"),
			Template:  tmpl.Body,
			Variables: stringList(tmpl.Meta.Variables),
			IsDefault: tmpl.Meta.Default,
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil && !errors.Is(err, repository.ErrDuplicateTemplate) {
			return seeded, fmt.Errorf("failed to store template %s: %w", tmpl.Meta.Name, err)
		}
		if err == nil {
			seeded++
		}
	}

	return seeded, nil
}

func (s *ContentService) Templates(category string) ([]*model.ContentTemplate, error) {
	return s.templateRepository.Templates(strings.TrimSpace(category))
}

type RenderedTemplate struct {
	Content string `json:"content"`
	HTML    string `json:"html"`
}

// Render fills a template's {name} placeholders and renders the result as HTML.
func (s *ContentService) Render(templateID string, values map[string]string) (*RenderedTemplate, error) {
	tmpl, err := s.templateRepository.ByID(templateID)
	if err != nil {
		return nil, err
	}

	content := markdown.Fill(tmpl.Template, values)
	html, err := s.parser.Render(content)
	if err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	err = s.templateRepository.IncrementUsage(tmpl.ID)
	if err != nil {
		slog.Warn("failed to count template usage", "error", err, "template_id", tmpl.ID)
	}

	return &RenderedTemplate{Content: content, HTML: html}, nil
}
