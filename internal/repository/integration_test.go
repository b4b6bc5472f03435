package repository

import (
	"testing"
	"time"

	"github.com/dreamtask/dreamtask/internal/db/dbtest"
	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIntegration(userID, platformID string) *model.Integration {
	return &model.Integration{
		ID:           uuid.New().String(),
		UserID:       userID,
		PlatformID:   platformID,
		PlatformName: platformID,
		Category:     "productivity",
		Status:       model.IntegrationStatusDisconnected,
		Settings:     model.DefaultIntegrationSettings(),
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
}

func TestIntegrationRepository_UniquePerUserPlatform(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewIntegrationRepository(db)
	u := seedUser(t, db, "ada@example.com")
	other := seedUser(t, db, "grace@example.com")

	require.NoError(t, repo.Create(newIntegration(u.ID, "notion")))
	assert.ErrorIs(t, repo.Create(newIntegration(u.ID, "notion")), ErrDuplicateIntegration)
	require.NoError(t, repo.Create(newIntegration(other.ID, "notion")))
}

func TestIntegrationRepository_SettingsAndNullableSync(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewIntegrationRepository(db)
	u := seedUser(t, db, "ada@example.com")

	i := newIntegration(u.ID, "github")
	require.NoError(t, repo.Create(i))

	sync := baseTime.Add(time.Hour)
	i.Status = model.IntegrationStatusConnected
	i.LastSync = &sync
	i.Settings.Scopes = []string{"repo"}
	i.UpdatedAt = sync
	require.NoError(t, repo.Update(i))

	got, err := repo.ByPlatform(u.ID, "github")
	require.NoError(t, err)
	assert.Equal(t, model.IntegrationStatusConnected, got.Status)
	require.NotNil(t, got.LastSync)
	assert.True(t, sync.Equal(*got.LastSync))
	assert.Equal(t, []string{"repo"}, got.Settings.Scopes)

	got.LastSync = nil
	require.NoError(t, repo.Update(got))
	again, err := repo.ByID(i.ID)
	require.NoError(t, err)
	assert.Nil(t, again.LastSync)
}
