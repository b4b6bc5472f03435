package model

import (
	"time"
)

type Export struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"userId"`
	StoragePath string    `db:"storage_path" json:"storagePath"`
	Size        int64     `db:"size" json:"size"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`

	// Computed fields (not in database)
	URL string `db:"-" json:"url,omitempty"`
}

// Snapshot is the document written for one export.
type Snapshot struct {
	ExportedAt   time.Time      `json:"exportedAt"`
	User         *User          `json:"user"`
	Goals        []*Goal        `json:"goals"`
	Tasks        []*Task        `json:"tasks"`
	Integrations []*Integration `json:"integrations"`
}
