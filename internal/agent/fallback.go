package agent

import (
	"strconv"
	"strings"
	"time"
)

// DefaultDurationDays is used when a timeframe names no known unit.
const DefaultDurationDays = 90

// milestoneLayout matches JavaScript's Date.toISOString output.
const milestoneLayout = "2006-01-02T15:04:05.000Z07:00"

// ParseTimeframeDays converts tokens like "3-months", "2 weeks" or "1-year"
// into days. A missing count means 1.
func ParseTimeframeDays(timeframe string) int {
	tf := strings.ToLower(strings.TrimSpace(timeframe))

	var unit int
	switch {
	case strings.Contains(tf, "week"):
		unit = 7
	case strings.Contains(tf, "month"):
		unit = 30
	case strings.Contains(tf, "year"):
		unit = 365
	default:
		return DefaultDurationDays
	}

	digits := 0
	for digits < len(tf) && tf[digits] >= '0' && tf[digits] <= '9' {
		digits++
	}
	n, err := strconv.Atoi(tf[:digits])
	if err != nil || n <= 0 {
		n = 1
	}

	return n * unit
}

// Fallback builds the fixed plan returned when decomposition fails. For a
// given request and instant the result is always identical; only milestone
// dates and processed_at depend on now.
func Fallback(req Request, now time.Time) *Plan {
	now = now.UTC()
	day := 24 * time.Hour

	plan := &Plan{
		Success:  true,
		Fallback: true,
		UserID:   req.UserID,
		Analysis: Analysis{
			ComplexityLevel:   "intermediate",
			FeasibilityScore:  0.75,
			KeyChallenges:     []string{"planning", "time management", "consistency"},
			RequiredResources: []string{"time", "effort", "learning materials"},
		},
		Tasks: []Task{
			{Title: "Define specific objectives", Description: "Break down the goal into specific, measurable objectives", Priority: "high", Category: "planning", EstimatedHours: 2},
			{Title: "Research and gather resources", Description: "Identify and collect necessary resources and information", Priority: "high", Category: "research", EstimatedHours: 4},
			{Title: "Create detailed action plan", Description: "Develop step-by-step action plan with deadlines", Priority: "high", Category: "planning", EstimatedHours: 3},
			{Title: "Begin execution", Description: "Start working on the first actionable steps", Priority: "medium", Category: "execution", EstimatedHours: 8},
			{Title: "Monitor and adjust", Description: "Track progress and make necessary adjustments", Priority: "medium", Category: "monitoring", EstimatedHours: 2},
		},
		Timeline: Timeline{
			TotalDurationDays:   ParseTimeframeDays(req.Timeframe),
			TotalEstimatedHours: 19,
			HoursPerWeek:        5,
			Milestones: []Milestone{
				{Date: now.Add(7 * day).Format(milestoneLayout), Title: "Week 1 Review", Description: "Review initial progress and adjust plan"},
				{Date: now.Add(14 * day).Format(milestoneLayout), Title: "Week 2 Review", Description: "Mid-point evaluation and course correction"},
				{Date: now.Add(21 * day).Format(milestoneLayout), Title: "Week 3 Review", Description: "Final sprint preparation"},
				{Date: now.Add(30 * day).Format(milestoneLayout), Title: "Final Review", Description: "Goal completion assessment"},
			},
		},
		SuccessTips: []string{
			"Break large tasks into smaller, manageable chunks",
			"Set up regular progress check-ins and reviews",
			"Celebrate small wins along the way",
			"Build accountability through sharing progress with others",
			"Prepare for setbacks and have contingency plans",
		},
		PotentialObstacles: []Obstacle{
			{Obstacle: "Lack of motivation over time", Mitigation: "Set up reward systems and track visible progress"},
			{Obstacle: "Time constraints", Mitigation: "Schedule dedicated time blocks and protect them"},
			{Obstacle: "Skill gaps", Mitigation: "Identify learning resources early and allocate time for skill building"},
		},
		ProcessedAt: now.Format(milestoneLayout),
	}

	plan.normalize()
	return plan
}
