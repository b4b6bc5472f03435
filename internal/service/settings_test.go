package service

import (
	"encoding/json"
	"testing"

	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsService_DefaultsOnFirstAccess(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	prefs, err := env.settings.Preferences(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPreferences(), prefs.Data)

	var n int
	require.NoError(t, env.db.Get(&n, `SELECT COUNT(*) FROM user_preferences WHERE user_id = $1`, user.ID))
	assert.Equal(t, 1, n)
}

func TestSettingsService_UpdateMergesNestedGroups(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	prefs, err := env.settings.Update(user.ID, json.RawMessage(`{"theme":"dark","notifications":{"push":false}}`))
	require.NoError(t, err)
	assert.Equal(t, "dark", prefs.Data.Theme)
	assert.False(t, prefs.Data.Notifications.Push)
	assert.True(t, prefs.Data.Notifications.Email)
	assert.Equal(t, "detailed", prefs.Data.AI.ComplexityLevel)

	prefs, err = env.settings.Update(user.ID, json.RawMessage(`{"ai":{"creativity":0.2}}`))
	require.NoError(t, err)
	assert.Equal(t, "dark", prefs.Data.Theme)
	assert.False(t, prefs.Data.Notifications.Push)
	assert.InDelta(t, 0.2, prefs.Data.AI.Creativity, 1e-9)

	stored, err := env.settings.Preferences(user.ID)
	require.NoError(t, err)
	assert.Equal(t, prefs.Data, stored.Data)
}

func TestSettingsService_UpdateRejectsInvalid(t *testing.T) {
	env := newTestEnv(t)
	user := env.register(t, "ada@example.com")

	_, err := env.settings.Update(user.ID, json.RawMessage(`{"theme":"neon"}`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.settings.Update(user.ID, json.RawMessage(`{"ai":{"creativity":3}}`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.settings.Update(user.ID, json.RawMessage(`null`))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.settings.Update(user.ID, json.RawMessage(`{"theme":`))
	assert.ErrorIs(t, err, ErrValidation)

	// rejected updates leave the stored record alone
	prefs, err := env.settings.Preferences(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "system", prefs.Data.Theme)
}
