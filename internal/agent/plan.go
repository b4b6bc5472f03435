// Package agent turns a free-text goal into a structured plan by calling an
// external decomposer, substituting a fixed plan whenever that call fails.
package agent

import (
	"encoding/json"
)

// Request is one decomposition call.
type Request struct {
	Goal         string          `json:"goal"`
	Timeframe    string          `json:"timeframe"`
	UserID       string          `json:"userId"`
	UserContext  json.RawMessage `json:"userContext,omitempty"`
	CloudLogging bool            `json:"cloudLogging"`
}

// Plan is the canonical decomposition result. Field names follow the
// decomposer's wire format.
type Plan struct {
	Success            bool       `json:"success"`
	Fallback           bool       `json:"fallback"`
	PlanID             string     `json:"plan_id,omitempty"`
	RunID              string     `json:"run_id,omitempty"`
	UserID             string     `json:"user_id,omitempty"`
	Analysis           Analysis   `json:"analysis"`
	Tasks              []Task     `json:"tasks"`
	Timeline           Timeline   `json:"timeline"`
	SuccessTips        []string   `json:"success_tips"`
	PotentialObstacles []Obstacle `json:"potential_obstacles"`
	ProcessedAt        string     `json:"processed_at,omitempty"`
	Error              string     `json:"error,omitempty"`
}

type Analysis struct {
	ComplexityLevel   string   `json:"complexity_level"`
	FeasibilityScore  float64  `json:"feasibility_score"`
	KeyChallenges     []string `json:"key_challenges"`
	RequiredResources []string `json:"required_resources"`
	Summary           string   `json:"summary,omitempty"`
}

type Task struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	Category       string   `json:"category"`
	EstimatedHours float64  `json:"estimated_hours"`
	Dependencies   []string `json:"dependencies"`
	Tags           []string `json:"tags"`
}

type Timeline struct {
	TotalDurationDays   int            `json:"total_duration_days"`
	TotalEstimatedHours float64        `json:"total_estimated_hours"`
	HoursPerWeek        float64        `json:"hours_per_week"`
	Milestones          []Milestone    `json:"milestones"`
	WeeklySchedule      []WeekSchedule `json:"weekly_schedule"`
}

// Milestone dates are kept as sent; decomposers emit ISO 8601 with or
// without a zone designator.
type Milestone struct {
	Date        string `json:"date"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type WeekSchedule struct {
	Week      int      `json:"week"`
	StartDate string   `json:"start_date"`
	Tasks     []string `json:"tasks"`
	FocusArea string   `json:"focus_area"`
}

type Obstacle struct {
	Obstacle   string `json:"obstacle"`
	Mitigation string `json:"mitigation"`
}

// normalize replaces nil lists so clients always see arrays.
func (p *Plan) normalize() {
	if p.Tasks == nil {
		p.Tasks = []Task{}
	}
	for i := range p.Tasks {
		if p.Tasks[i].Dependencies == nil {
			p.Tasks[i].Dependencies = []string{}
		}
		if p.Tasks[i].Tags == nil {
			p.Tasks[i].Tags = []string{}
		}
	}
	if p.Analysis.KeyChallenges == nil {
		p.Analysis.KeyChallenges = []string{}
	}
	if p.Analysis.RequiredResources == nil {
		p.Analysis.RequiredResources = []string{}
	}
	if p.Timeline.Milestones == nil {
		p.Timeline.Milestones = []Milestone{}
	}
	if p.Timeline.WeeklySchedule == nil {
		p.Timeline.WeeklySchedule = []WeekSchedule{}
	}
	if p.SuccessTips == nil {
		p.SuccessTips = []string{}
	}
	if p.PotentialObstacles == nil {
		p.PotentialObstacles = []Obstacle{}
	}
}
