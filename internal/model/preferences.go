package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PreferencesVersion is bumped whenever the stored preference shape changes.
const PreferencesVersion = 1

var ErrInvalidPreferences = errors.New("invalid preferences")

type UserPreferences struct {
	UserID    string      `db:"user_id" json:"userId"`
	Data      Preferences `db:"data" json:"preferences"`
	CreatedAt time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time   `db:"updated_at" json:"updatedAt"`
}

type Preferences struct {
	Version       int                     `json:"version"`
	Theme         string                  `json:"theme"`
	Language      string                  `json:"language"`
	Timezone      string                  `json:"timezone"`
	Notifications NotificationPreferences `json:"notifications"`
	Privacy       PrivacyPreferences      `json:"privacy"`
	AI            AIPreferences           `json:"ai"`
}

type NotificationPreferences struct {
	Email         bool `json:"email"`
	Push          bool `json:"push"`
	TaskReminders bool `json:"taskReminders"`
	GoalDeadlines bool `json:"goalDeadlines"`
	WeeklyReports bool `json:"weeklyReports"`
}

type PrivacyPreferences struct {
	ProfileVisibility string `json:"profileVisibility"`
	DataSharing       bool   `json:"dataSharing"`
	Analytics         bool   `json:"analytics"`
}

type AIPreferences struct {
	AutoGenerateTasks  bool    `json:"autoGenerateTasks"`
	ComplexityLevel    string  `json:"complexityLevel"`
	PreferredTimeframe string  `json:"preferredTimeframe"`
	Creativity         float64 `json:"creativity"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Version:  PreferencesVersion,
		Theme:    "system",
		Language: "en",
		Timezone: "UTC",
		Notifications: NotificationPreferences{
			Email:         true,
			Push:          true,
			TaskReminders: true,
			GoalDeadlines: true,
			WeeklyReports: false,
		},
		Privacy: PrivacyPreferences{
			ProfileVisibility: "private",
			DataSharing:       false,
			Analytics:         true,
		},
		AI: AIPreferences{
			AutoGenerateTasks:  true,
			ComplexityLevel:    "detailed",
			PreferredTimeframe: "medium",
			Creativity:         0.7,
		},
	}
}

func (p Preferences) Validate() error {
	switch p.Theme {
	case "light", "dark", "system":
	default:
		return fmt.Errorf("%w: theme must be light, dark or system", ErrInvalidPreferences)
	}
	switch p.Privacy.ProfileVisibility {
	case "public", "private":
	default:
		return fmt.Errorf("%w: profileVisibility must be public or private", ErrInvalidPreferences)
	}
	switch p.AI.ComplexityLevel {
	case "simple", "detailed", "comprehensive":
	default:
		return fmt.Errorf("%w: complexityLevel must be simple, detailed or comprehensive", ErrInvalidPreferences)
	}
	switch p.AI.PreferredTimeframe {
	case "short", "medium", "long":
	default:
		return fmt.Errorf("%w: preferredTimeframe must be short, medium or long", ErrInvalidPreferences)
	}
	if p.AI.Creativity < 0 || p.AI.Creativity > 1 {
		return fmt.Errorf("%w: creativity must be between 0 and 1", ErrInvalidPreferences)
	}
	if p.Language == "" {
		return fmt.Errorf("%w: language is required", ErrInvalidPreferences)
	}
	return nil
}

func (p Preferences) Value() (driver.Value, error) {
	p.Version = PreferencesVersion
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes a stored record over the defaults, so keys added in later
// versions pick up their default value.
func (p *Preferences) Scan(src any) error {
	data, err := textBytes(src)
	if err != nil {
		return err
	}
	*p = DefaultPreferences()
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, p); err != nil {
		return fmt.Errorf("scan preferences: %w", err)
	}
	p.Version = PreferencesVersion
	return nil
}
