package agent

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeframeDays(t *testing.T) {
	tests := map[string]int{
		"3-months": 90,
		"1-month":  30,
		"month":    30,
		"6 weeks":  42,
		"1-week":   7,
		"2-years":  730,
		"Year":     365,
		"someday":  90,
		"":         90,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseTimeframeDays(in), in)
	}
}

func TestFallback_Deterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	req := Request{Goal: "Learn guitar", Timeframe: "3-months", UserID: "u-1"}

	a, err := json.Marshal(Fallback(req, now))
	require.NoError(t, err)
	b, err := json.Marshal(Fallback(req, now))
	require.NoError(t, err)

	assert.Equal(t, string(a), string(b))
}

func TestFallback_Shape(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	plan := Fallback(Request{Goal: "Learn guitar", Timeframe: "3-months", UserID: "u-1"}, now)

	assert.True(t, plan.Success)
	assert.True(t, plan.Fallback)
	assert.Equal(t, "u-1", plan.UserID)
	require.Len(t, plan.Tasks, 5)
	assert.Equal(t, "Define specific objectives", plan.Tasks[0].Title)
	assert.Equal(t, "Monitor and adjust", plan.Tasks[4].Title)

	var hours float64
	for _, task := range plan.Tasks {
		hours += task.EstimatedHours
		assert.NotNil(t, task.Dependencies)
	}
	assert.Equal(t, plan.Timeline.TotalEstimatedHours, hours)

	assert.Equal(t, 90, plan.Timeline.TotalDurationDays)
	assert.Equal(t, 5.0, plan.Timeline.HoursPerWeek)
	assert.Equal(t, 0.75, plan.Analysis.FeasibilityScore)
	assert.Len(t, plan.SuccessTips, 5)
	assert.Len(t, plan.PotentialObstacles, 3)

	offsets := []int{7, 14, 21, 30}
	require.Len(t, plan.Timeline.Milestones, len(offsets))
	for i, days := range offsets {
		want := now.UTC().AddDate(0, 0, days).Format("2006-01-02T15:04:05.000Z")
		assert.Equal(t, want, plan.Timeline.Milestones[i].Date)
	}
	assert.Equal(t, "2025-06-08T07:00:00.000Z", plan.Timeline.Milestones[0].Date)
}
