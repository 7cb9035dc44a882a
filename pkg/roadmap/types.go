// Package roadmap turns an ESG score into a prioritised, quarter-by-quarter
// improvement plan drawn from a fixed catalog of actions.
package roadmap

import "github.com/esgcopilot/esgcore/pkg/scoring"

// Priority of an action. High priority actions are always surfaced.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Effort needed to implement an action.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// Quarters of the twelve month roadmap.
var Quarters = []string{"Q1", "Q2", "Q3", "Q4"}

// Action is a catalog entry. Catalog actions are never modified; reports carry
// copies.
type Action struct {
	ID                       string           `json:"id"`
	Category                 scoring.Category `json:"category"`
	Priority                 Priority         `json:"priority"`
	Effort                   Effort           `json:"effort"`
	Timeline                 string           `json:"timeline"`
	Title                    string           `json:"title"`
	Description              string           `json:"description"`
	SmartGoal                string           `json:"smart_goal"`
	Steps                    []string         `json:"steps"`
	KPIs                     []string         `json:"kpis"`
	EstimatedCO2ReductionPct float64          `json:"estimated_co2_reduction_pct"`
	ScoreImprovementPts      float64          `json:"score_improvement_pts"`
}

// IsQuickWin reports whether the action is low effort and high priority.
func (a Action) IsQuickWin() bool {
	return a.Effort == EffortLow && a.Priority == PriorityHigh
}

func (a Action) clone() Action {
	a.Steps = append([]string(nil), a.Steps...)
	a.KPIs = append([]string(nil), a.KPIs...)
	return a
}

// GapReport is the analyzer output. RoadmapByQuarter always holds Q1 to Q4.
type GapReport struct {
	TotalGaps               int                 `json:"total_gaps"`
	HighPriorityCount       int                 `json:"high_priority_count"`
	Actions                 []Action            `json:"actions"`
	QuickWins               []Action            `json:"quick_wins"`
	RoadmapByQuarter        map[string][]Action `json:"roadmap_by_quarter"`
	TotalPotentialScoreGain float64             `json:"total_potential_score_gain"`
}
