package service

import (
	"encoding/json"
	"testing"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/dreamtask/dreamtask/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExportService(env *testEnv, store storage.Storage) *ExportService {
	return NewExportService(
		repository.NewExportRepository(env.db),
		env.users,
		env.goalRepo,
		env.taskRepo,
		repository.NewIntegrationRepository(env.db),
		store,
	)
}

func TestExportService_InlineWithoutStorage(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")
	_, err := env.goals.Create(user.ID, GoalInput{Title: "Marathon", Description: "x"})
	require.NoError(t, err)

	result, err := newExportService(env, nil).Export(user.ID)
	require.NoError(t, err)
	assert.Nil(t, result.Export)

	var snapshot model.Snapshot
	require.NoError(t, json.Unmarshal(result.Snapshot, &snapshot))
	assert.Equal(t, user.ID, snapshot.User.ID)
	assert.Len(t, snapshot.Goals, 1)
	assert.Empty(t, snapshot.Tasks)
	assert.NotContains(t, string(result.Snapshot), user.PasswordHash)
}

func TestExportService_StoresSnapshot(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")
	_, err := env.tasks.Create(user.ID, TaskInput{Title: "Run", Description: "5k", Category: "training"})
	require.NoError(t, err)

	store := storage.NewMemory()
	svc := newExportService(env, store)

	result, err := svc.Export(user.ID)
	require.NoError(t, err)
	require.NotNil(t, result.Export)
	assert.Nil(t, result.Snapshot)

	export := result.Export
	assert.Equal(t, "exports/"+user.ID+"/"+export.ID+".json", export.StoragePath)
	assert.Equal(t, "memory://"+export.StoragePath, export.URL)

	data, ok := store.Object(export.StoragePath)
	require.True(t, ok)
	assert.Equal(t, export.Size, int64(len(data)))

	var snapshot model.Snapshot
	require.NoError(t, json.Unmarshal(data, &snapshot))
	assert.Len(t, snapshot.Tasks, 1)

	exports, err := svc.Exports(user.ID)
	require.NoError(t, err)
	require.Len(t, exports, 1)
	assert.Equal(t, export.ID, exports[0].ID)
	assert.Equal(t, export.URL, exports[0].URL)
}

func TestExportService_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := newExportService(env, storage.NewMemory()).Export("missing")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
