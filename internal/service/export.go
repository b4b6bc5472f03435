package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/dreamtask/dreamtask/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ExportResult is either a stored export with a download URL, or the
// snapshot itself when no storage is configured.
type ExportResult struct {
	Export   *model.Export
	Snapshot []byte
}

type ExportService struct {
	exportRepository      repository.ExportRepository
	userRepository        repository.UserRepository
	goalRepository        repository.GoalRepository
	taskRepository        repository.TaskRepository
	integrationRepository repository.IntegrationRepository
	storage               storage.Storage
}

// NewExportService accepts a nil store; exports are then returned inline.
func NewExportService(
	exportRepository repository.ExportRepository,
	userRepository repository.UserRepository,
	goalRepository repository.GoalRepository,
	taskRepository repository.TaskRepository,
	integrationRepository repository.IntegrationRepository,
	store storage.Storage,
) *ExportService {
	return &ExportService{
		exportRepository:      exportRepository,
		userRepository:        userRepository,
		goalRepository:        goalRepository,
		taskRepository:        taskRepository,
		integrationRepository: integrationRepository,
		storage:               store,
	}
}

func (s *ExportService) Export(userID string) (*ExportResult, error) {
	snapshot, err := s.snapshot(userID)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	if s.storage == nil {
		return &ExportResult{Snapshot: data}, nil
	}

	export := &model.Export{
		ID:        uuid.New().String(),
		UserID:    userID,
		Size:      int64(len(data)),
		CreatedAt: snapshot.ExportedAt,
	}
	export.StoragePath = fmt.Sprintf("exports/%s/%s.json", userID, export.ID)

	err = s.storage.Save(export.StoragePath, bytes.NewReader(data), "application/json")
	if err != nil {
		return nil, fmt.Errorf("failed to store export: %w", err)
	}

	err = s.exportRepository.Create(export)
	if err != nil {
		if delErr := s.storage.Delete(export.StoragePath); delErr != nil {
			slog.Error("failed to delete orphaned export", "error", delErr, "path", export.StoragePath)
		}
		return nil, fmt.Errorf("failed to record export: %w", err)
	}

	export.URL, err = s.storage.PresignedURL(export.StoragePath)
	if err != nil {
		return nil, err
	}

	slog.Info("export created", "user_id", userID, "export_id", export.ID, "size", export.Size)
	return &ExportResult{Export: export}, nil
}

// Exports lists earlier exports with fresh download URLs.
func (s *ExportService) Exports(userID string) ([]*model.Export, error) {
	exports, err := s.exportRepository.Exports(userID)
	if err != nil {
		return nil, err
	}
	if s.storage == nil {
		return exports, nil
	}

	for _, export := range exports {
		url, err := s.storage.PresignedURL(export.StoragePath)
		if err != nil {
			slog.Warn("failed to presign export", "error", err, "export_id", export.ID)
			continue
		}
		export.URL = url
	}

	return exports, nil
}

func (s *ExportService) snapshot(userID string) (*model.Snapshot, error) {
	snapshot := &model.Snapshot{ExportedAt: nowUTC()}

	var g errgroup.Group
	g.Go(func() error {
		var err error
		snapshot.User, err = s.userRepository.ByID(userID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Goals, err = s.goalRepository.Goals(userID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Tasks, err = s.taskRepository.Tasks(userID)
		return err
	})
	g.Go(func() error {
		var err error
		snapshot.Integrations, err = s.integrationRepository.Integrations(userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build export: %w", err)
	}

	return snapshot, nil
}
