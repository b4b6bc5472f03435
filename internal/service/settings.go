package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
)

type SettingsService struct {
	repo repository.PreferencesRepository
}

func NewSettingsService(repo repository.PreferencesRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// Preferences returns the stored record, writing the defaults on first access.
func (s *SettingsService) Preferences(userID string) (*model.UserPreferences, error) {
	prefs, err := s.repo.ByUserID(userID)
	if err == nil {
		return prefs, nil
	}
	if !errors.Is(err, repository.ErrPreferencesNotFound) {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	now := nowUTC()
	prefs = &model.UserPreferences{
		UserID:    userID,
		Data:      model.DefaultPreferences(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.repo.Upsert(prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to create preferences: %w", err)
	}

	return prefs, nil
}

// Update overlays the supplied keys on the stored record. Nested groups
// merge key by key; omitted keys keep their value.
func (s *SettingsService) Update(userID string, patch json.RawMessage) (*model.UserPreferences, error) {
	if len(patch) == 0 || string(patch) == "null" {
		return nil, invalid("Preferences data is required")
	}

	prefs, err := s.Preferences(userID)
	if err != nil {
		return nil, err
	}

	data := prefs.Data
	if err := json.Unmarshal(patch, &data); err != nil {
		return nil, invalid("invalid preferences: %s", err.Error())
	}
	data.Version = model.PreferencesVersion

	if err := data.Validate(); err != nil {
		return nil, invalidErr(err)
	}

	prefs.Data = data
	prefs.UpdatedAt = nowUTC()

	err = s.repo.Upsert(prefs)
	if err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	return prefs, nil
}
