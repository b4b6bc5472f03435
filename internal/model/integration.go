package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	IntegrationStatusConnected    = "connected"
	IntegrationStatusDisconnected = "disconnected"
	IntegrationStatusError        = "error"
)

type Integration struct {
	ID           string              `db:"id" json:"id"`
	UserID       string              `db:"user_id" json:"userId"`
	PlatformID   string              `db:"platform_id" json:"platformId"`
	PlatformName string              `db:"platform_name" json:"platformName"`
	Category     string              `db:"category" json:"category"`
	Status       string              `db:"status" json:"status"`
	LastSync     *time.Time          `db:"last_sync" json:"lastSync"`
	Settings     IntegrationSettings `db:"settings" json:"settings"`
	CreatedAt    time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updatedAt"`
}

// IntegrationSettings is the per-platform sync configuration, stored as JSON.
type IntegrationSettings struct {
	SyncEnabled         bool     `json:"syncEnabled"`
	SyncIntervalMinutes int      `json:"syncIntervalMinutes"`
	Scopes              []string `json:"scopes"`
}

func DefaultIntegrationSettings() IntegrationSettings {
	return IntegrationSettings{
		SyncEnabled:         true,
		SyncIntervalMinutes: 60,
		Scopes:              []string{},
	}
}

func (s IntegrationSettings) Value() (driver.Value, error) {
	if s.Scopes == nil {
		s.Scopes = []string{}
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *IntegrationSettings) Scan(src any) error {
	data, err := textBytes(src)
	if err != nil {
		return err
	}
	*s = DefaultIntegrationSettings()
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, s); err != nil {
		return fmt.Errorf("scan integration settings: %w", err)
	}
	if s.Scopes == nil {
		s.Scopes = []string{}
	}
	return nil
}
