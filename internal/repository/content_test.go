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

func TestContentRepository_UpsertIsIdempotent(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewContentRepository(db)

	require.NoError(t, repo.Upsert("tagline", "Dream big", model.ContentTypeText, baseTime))
	require.NoError(t, repo.Upsert("tagline", "Dream big", model.ContentTypeText, baseTime.Add(time.Minute)))

	items, err := repo.Active()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dream big", items[0].Value)
	assert.True(t, baseTime.Equal(items[0].CreatedAt))
}

func TestContentRepository_UpsertOverwrites(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewContentRepository(db)

	require.NoError(t, repo.Upsert("tagline", "one", model.ContentTypeText, baseTime))
	require.NoError(t, repo.Upsert("tagline", "two", model.ContentTypeText, baseTime))

	items, err := repo.Active()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "two", items[0].Value)
}

func TestTemplateRepository_UsageAndCategoryFilter(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewTemplateRepository(db)

	weekly := &model.ContentTemplate{
		ID: uuid.New().String(), Name: "weekly-review", Category: "review",
		Template: "Week of {date}", Variables: model.StringList{"date"}, IsDefault: true,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	}
	kickoff := &model.ContentTemplate{
		ID: uuid.New().String(), Name: "goal-kickoff", Category: "goal",
		Template: "Starting {goal}", Variables: model.StringList{"goal"},
		CreatedAt: baseTime, UpdatedAt: baseTime,
	}
	require.NoError(t, repo.Create(weekly))
	require.NoError(t, repo.Create(kickoff))
	assert.ErrorIs(t, repo.Create(weekly), ErrDuplicateTemplate)

	reviews, err := repo.Templates("review")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "weekly-review", reviews[0].Name)

	all, err := repo.Templates("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, all[0].IsDefault)

	require.NoError(t, repo.IncrementUsage(kickoff.ID))
	require.NoError(t, repo.IncrementUsage(kickoff.ID))
	got, err := repo.ByName("goal-kickoff")
	require.NoError(t, err)
	assert.Equal(t, 2, got.UsageCount)

	assert.ErrorIs(t, repo.IncrementUsage("missing"), ErrTemplateNotFound)
}
