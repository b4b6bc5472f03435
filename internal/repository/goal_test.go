package repository

import (
	"testing"
	"time"

	"github.com/dreamtask/dreamtask/internal/db/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalRepository_ListsNewestFirst(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewGoalRepository(db)
	u := seedUser(t, db, "ada@example.com")
	other := seedUser(t, db, "grace@example.com")

	require.NoError(t, repo.Create(newGoal(u.ID, "first", baseTime)))
	require.NoError(t, repo.Create(newGoal(u.ID, "third", baseTime.Add(2*time.Hour))))
	require.NoError(t, repo.Create(newGoal(u.ID, "second", baseTime.Add(time.Hour))))
	require.NoError(t, repo.Create(newGoal(other.ID, "not mine", baseTime.Add(3*time.Hour))))

	goals, err := repo.Goals(u.ID)
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, "third", goals[0].Title)
	assert.Equal(t, "second", goals[1].Title)
	assert.Equal(t, "first", goals[2].Title)
}

func TestGoalRepository_EmptyListIsNotNil(t *testing.T) {
	db := dbtest.Open(t)
	u := seedUser(t, db, "ada@example.com")

	goals, err := NewGoalRepository(db).Goals(u.ID)
	require.NoError(t, err)
	assert.NotNil(t, goals)
	assert.Empty(t, goals)
}

func TestGoalRepository_UpdateAndClearTargetDate(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewGoalRepository(db)
	u := seedUser(t, db, "ada@example.com")

	g := newGoal(u.ID, "Learn guitar", baseTime)
	target := baseTime.Add(90 * 24 * time.Hour)
	g.TargetDate = &target
	require.NoError(t, repo.Create(g))

	g.Progress = 40
	g.TargetDate = nil
	g.UpdatedAt = baseTime.Add(time.Minute)
	require.NoError(t, repo.Update(g))

	got, err := repo.ByID(g.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, got.Progress)
	assert.Nil(t, got.TargetDate)
}

func TestGoalRepository_MissingGoal(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewGoalRepository(db)

	_, err := repo.ByID("nope")
	assert.ErrorIs(t, err, ErrGoalNotFound)
	assert.ErrorIs(t, repo.Update(newGoal("u", "x", baseTime)), ErrGoalNotFound)
	assert.ErrorIs(t, repo.Delete("nope"), ErrGoalNotFound)
}
