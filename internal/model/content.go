package model

import (
	"time"
)

const (
	ContentTypeText     = "text"
	ContentTypeMarkdown = "markdown"
)

type AppContent struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	Type      string    `db:"type" json:"type"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// DefaultAppContent is served for keys that have no active stored value.
func DefaultAppContent(appName string) map[string]string {
	return map[string]string{
		"appName":           appName,
		"tagline":           "Transform your dreams into actionable tasks",
		"welcomeMessage":    "Welcome to your personal goal management system",
		"primaryColor":      "#0ea5e9",
		"accentColor":       "#ec4899",
		"dashboardTitle":    "Dashboard",
		"goalsTitle":        "Goals",
		"tasksTitle":        "Tasks",
		"settingsTitle":     "Settings",
		"integrationsTitle": "Integrations",
	}
}

type ContentTemplate struct {
	ID         string     `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Category   string     `db:"category" json:"category"`
	Template   string     `db:"template" json:"template"`
	Variables  StringList `db:"variables" json:"variables"`
	IsDefault  bool       `db:"is_default" json:"isDefault"`
	UsageCount int        `db:"usage_count" json:"usageCount"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updatedAt"`
}
