package service

import (
	"testing"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformName(t *testing.T) {
	assert.Equal(t, "Google Calendar", PlatformName("google-calendar"))
	assert.Equal(t, "GitHub", PlatformName("github"))
	assert.Equal(t, "Apple Health", PlatformName("apple_health"))
	assert.Equal(t, "Strava", PlatformName("strava"))
}

func TestIntegrationService_CreateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	first, err := env.integrations.Create(user.ID, "notion", "Notion")
	require.NoError(t, err)
	assert.Equal(t, model.IntegrationStatusDisconnected, first.Status)
	assert.Equal(t, "productivity", first.Category)
	assert.Nil(t, first.LastSync)

	again, err := env.integrations.Create(user.ID, "notion", "Notion workspace")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = env.integrations.Create(user.ID, "notion", "")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Platform ID and name are required", err.Error())

	list, err := env.integrations.Integrations(user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestIntegrationService_ConnectAndDisconnect(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	connected, err := env.integrations.Connect(user.ID, "google-calendar")
	require.NoError(t, err)
	assert.Equal(t, model.IntegrationStatusConnected, connected.Status)
	assert.Equal(t, "Google Calendar", connected.PlatformName)
	require.NotNil(t, connected.LastSync)

	again, err := env.integrations.Connect(user.ID, "google-calendar")
	require.NoError(t, err)
	assert.Equal(t, connected.ID, again.ID)

	disconnected, err := env.integrations.Disconnect(user.ID, connected.ID)
	require.NoError(t, err)
	assert.Equal(t, model.IntegrationStatusDisconnected, disconnected.Status)
	assert.Nil(t, disconnected.LastSync)

	// the record is kept
	list, err := env.integrations.Integrations(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.IntegrationStatusDisconnected, list[0].Status)
	assert.Nil(t, list[0].LastSync)

	_, err = env.integrations.Connect(user.ID, " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestIntegrationService_SyncRecordsWorkflow(t *testing.T) {
	env := newTestEnv(t)
	ada := env.register(t, "ada@example.com")
	grace := env.register(t, "grace@example.com")

	created, err := env.integrations.Create(ada.ID, "github", "GitHub")
	require.NoError(t, err)

	synced, err := env.integrations.Sync(ada.ID, "", "github")
	require.NoError(t, err)
	assert.NotNil(t, synced.LastSync)
	assert.Equal(t, created.ID, synced.ID)

	_, err = env.integrations.Sync(grace.ID, created.ID, "")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.integrations.Sync(ada.ID, "", "")
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Integration ID is required", err.Error())

	_, err = env.integrations.Sync(ada.ID, "missing", "")
	assert.ErrorIs(t, err, repository.ErrIntegrationNotFound)

	workflows, err := env.workflows.Workflows(ada.ID)
	require.NoError(t, err)
	require.Len(t, workflows, 1)
	assert.Equal(t, model.WorkflowTypeIntegrationSync, workflows[0].WorkflowType)
	assert.Equal(t, model.WorkflowStatusCompleted, workflows[0].Status)
}

func TestIntegrationService_UpdateSettings(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	created, err := env.integrations.Create(user.ID, "slack", "Slack")
	require.NoError(t, err)

	updated, err := env.integrations.UpdateSettings(user.ID, created.ID, model.IntegrationSettings{
		SyncEnabled:         true,
		SyncIntervalMinutes: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, 15, updated.Settings.SyncIntervalMinutes)
	assert.NotNil(t, updated.Settings.Scopes)

	_, err = env.integrations.UpdateSettings(user.ID, created.ID, model.IntegrationSettings{SyncIntervalMinutes: 0})
	assert.ErrorIs(t, err, ErrValidation)
}

// staleLookup misses the first ByPlatform, as a connect racing another
// connect for the same platform would.
type staleLookup struct {
	repository.IntegrationRepository
	missed bool
}

func (r *staleLookup) ByPlatform(userID, platformID string) (*model.Integration, error) {
	if !r.missed {
		r.missed = true
		return nil, repository.ErrIntegrationNotFound
	}
	return r.IntegrationRepository.ByPlatform(userID, platformID)
}

func TestIntegrationService_ConnectLosingCreateRaceUpdatesRow(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	existing, err := env.integrations.Create(user.ID, "strava", "Strava")
	require.NoError(t, err)

	svc := NewIntegrationService(&staleLookup{IntegrationRepository: repository.NewIntegrationRepository(env.db)}, env.workflows)

	connected, err := svc.Connect(user.ID, "strava")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, connected.ID)
	assert.Equal(t, model.IntegrationStatusConnected, connected.Status)
	assert.NotNil(t, connected.LastSync)

	list, err := env.integrations.Integrations(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.IntegrationStatusConnected, list[0].Status)
}
