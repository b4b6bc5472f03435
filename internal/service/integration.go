package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type platform struct {
	Name     string
	Category string
}

var platforms = map[string]platform{
	"youtube":         {"YouTube", "content"},
	"google-calendar": {"Google Calendar", "productivity"},
	"notion":          {"Notion", "productivity"},
	"github":          {"GitHub", "development"},
	"slack":           {"Slack", "communication"},
	"trello":          {"Trello", "productivity"},
}

const maxSyncIntervalMinutes = 7 * 24 * 60

var titleCaser = cases.Title(language.English)

// PlatformName is the catalog name for a platform id, or the id title-cased.
func PlatformName(platformID string) string {
	if p, ok := platforms[platformID]; ok {
		return p.Name
	}
	words := strings.NewReplacer("-", " ", "_", " ").Replace(platformID)
	return titleCaser.String(words)
}

func platformCategory(platformID string) string {
	if p, ok := platforms[platformID]; ok {
		return p.Category
	}
	return "other"
}

type IntegrationService struct {
	repo      repository.IntegrationRepository
	workflows *WorkflowService
}

func NewIntegrationService(repo repository.IntegrationRepository, workflows *WorkflowService) *IntegrationService {
	return &IntegrationService{repo: repo, workflows: workflows}
}

func (s *IntegrationService) Integrations(userID string) ([]*model.Integration, error) {
	return s.repo.Integrations(userID)
}

// Create registers a platform as disconnected. Registering it again returns
// the stored record.
func (s *IntegrationService) Create(userID, platformID, platformName string) (*model.Integration, error) {
	platformID = strings.TrimSpace(platformID)
	platformName = strings.TrimSpace(platformName)
	if platformID == "" || platformName == "" {
		return nil, invalid("Platform ID and name are required")
	}

	existing, err := s.repo.ByPlatform(userID, platformID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrIntegrationNotFound) {
		return nil, fmt.Errorf("failed to get integration: %w", err)
	}

	integration := s.newIntegration(userID, platformID, platformName, model.IntegrationStatusDisconnected)
	err = s.repo.Create(integration)
	if errors.Is(err, repository.ErrDuplicateIntegration) {
		return s.repo.ByPlatform(userID, platformID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create integration: %w", err)
	}

	return integration, nil
}

// Connect marks the platform connected, creating the record if needed.
func (s *IntegrationService) Connect(userID, platformID string) (*model.Integration, error) {
	platformID = strings.TrimSpace(platformID)
	if platformID == "" {
		return nil, invalid("Platform ID is required")
	}

	now := nowUTC()

	integration, err := s.repo.ByPlatform(userID, platformID)
	if errors.Is(err, repository.ErrIntegrationNotFound) {
		integration = s.newIntegration(userID, platformID, PlatformName(platformID), model.IntegrationStatusConnected)
		integration.LastSync = &now
		err = s.repo.Create(integration)
		if err == nil {
			return integration, nil
		}
		if !errors.Is(err, repository.ErrDuplicateIntegration) {
			return nil, fmt.Errorf("failed to create integration: %w", err)
		}
		// A concurrent connect created it first; update that row instead.
		integration, err = s.repo.ByPlatform(userID, platformID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get integration: %w", err)
	}

	integration.Status = model.IntegrationStatusConnected
	integration.LastSync = &now
	integration.UpdatedAt = now

	err = s.repo.Update(integration)
	if err != nil {
		return nil, fmt.Errorf("failed to update integration: %w", err)
	}

	return integration, nil
}

// Sync stamps lastSync. The integration is found by id, or by platform id
// when no id is given.
func (s *IntegrationService) Sync(userID, integrationID, platformID string) (*model.Integration, error) {
	var integration *model.Integration
	var err error

	switch {
	case integrationID != "":
		integration, err = s.ByID(userID, integrationID)
	case platformID != "":
		integration, err = s.repo.ByPlatform(userID, platformID)
	default:
		return nil, invalid("Integration ID is required")
	}
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	integration.LastSync = &now
	integration.UpdatedAt = now

	err = s.repo.Update(integration)
	if err != nil {
		return nil, fmt.Errorf("failed to update integration: %w", err)
	}

	s.workflows.Record(userID, model.WorkflowTypeIntegrationSync, nil,
		map[string]string{"integrationId": integration.ID, "platformId": integration.PlatformID},
		map[string]any{"lastSync": now, "status": integration.Status})

	return integration, nil
}

// Disconnect is a soft disable: the record stays with status disconnected
// and no lastSync.
func (s *IntegrationService) Disconnect(userID, integrationID string) (*model.Integration, error) {
	integration, err := s.ByID(userID, integrationID)
	if err != nil {
		return nil, err
	}

	integration.Status = model.IntegrationStatusDisconnected
	integration.LastSync = nil
	integration.UpdatedAt = nowUTC()

	err = s.repo.Update(integration)
	if err != nil {
		return nil, fmt.Errorf("failed to update integration: %w", err)
	}

	return integration, nil
}

func (s *IntegrationService) UpdateSettings(userID, integrationID string, settings model.IntegrationSettings) (*model.Integration, error) {
	if settings.SyncIntervalMinutes < 1 || settings.SyncIntervalMinutes > maxSyncIntervalMinutes {
		return nil, invalid("syncIntervalMinutes must be between 1 and %d", maxSyncIntervalMinutes)
	}
	if settings.Scopes == nil {
		settings.Scopes = []string{}
	}

	integration, err := s.ByID(userID, integrationID)
	if err != nil {
		return nil, err
	}

	integration.Settings = settings
	integration.UpdatedAt = nowUTC()

	err = s.repo.Update(integration)
	if err != nil {
		return nil, fmt.Errorf("failed to update integration: %w", err)
	}

	return integration, nil
}

func (s *IntegrationService) ByID(userID, integrationID string) (*model.Integration, error) {
	integration, err := s.repo.ByID(integrationID)
	if err != nil {
		return nil, err
	}
	if integration.UserID != userID {
		return nil, ErrForbidden
	}
	return integration, nil
}

func (s *IntegrationService) newIntegration(userID, platformID, platformName, status string) *model.Integration {
	now := nowUTC()
	return &model.Integration{
		ID:           uuid.New().String(),
		UserID:       userID,
		PlatformID:   platformID,
		PlatformName: platformName,
		Category:     platformCategory(platformID),
		Status:       status,
		Settings:     model.DefaultIntegrationSettings(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
