package roadmap

import (
	"math"
	"sort"

	"github.com/esgcopilot/esgcore/pkg/scoring"
)

// SelectionThreshold is the category score below which every action of that
// category is selected.
const SelectionThreshold = 75

// Analyzer selects and schedules catalog actions for an ESG score. The
// catalog is copied at construction and never modified.
type Analyzer struct {
	catalog []Action
}

// NewAnalyzer creates an analyzer over the given catalog.
func NewAnalyzer(actions []Action) (*Analyzer, error) {
	if err := ValidateCatalog(actions); err != nil {
		return nil, err
	}
	owned := make([]Action, len(actions))
	for i, a := range actions {
		owned[i] = a.clone()
	}
	return &Analyzer{catalog: owned}, nil
}

// DefaultAnalyzer returns an analyzer over the built-in catalog.
func DefaultAnalyzer() *Analyzer {
	return &Analyzer{catalog: DefaultCatalog()}
}

// Catalog returns a copy of the analyzer's catalog.
func (a *Analyzer) Catalog() []Action {
	out := make([]Action, len(a.catalog))
	for i, act := range a.catalog {
		out[i] = act.clone()
	}
	return out
}

// Analyze produces a prioritised roadmap. An action is selected when its
// category scores below SelectionThreshold or its priority is high.
func (a *Analyzer) Analyze(score *scoring.ESGScore) *GapReport {
	if score == nil {
		score = &scoring.ESGScore{}
	}

	selected := a.selectActions(score)
	sort.SliceStable(selected, func(i, j int) bool {
		pi, pj := selected[i].Priority.rank(), selected[j].Priority.rank()
		if pi != pj {
			return pi < pj
		}
		return selected[i].ScoreImprovementPts > selected[j].ScoreImprovementPts
	})

	report := &GapReport{
		TotalGaps:        score.GapCount(),
		Actions:          selected,
		QuickWins:        []Action{},
		RoadmapByQuarter: make(map[string][]Action, len(Quarters)),
	}
	for _, q := range Quarters {
		report.RoadmapByQuarter[q] = []Action{}
	}

	var gain float64
	for _, act := range selected {
		if act.Priority == PriorityHigh {
			report.HighPriorityCount++
		}
		if act.IsQuickWin() {
			report.QuickWins = append(report.QuickWins, act.clone())
		}
		report.RoadmapByQuarter[act.Timeline] = append(report.RoadmapByQuarter[act.Timeline], act.clone())
		gain += act.ScoreImprovementPts
	}

	headroom := math.Max(0, 100-score.Total)
	report.TotalPotentialScoreGain = math.Min(math.Round(gain*10)/10, headroom)
	return report
}

func (a *Analyzer) selectActions(score *scoring.ESGScore) []Action {
	seen := make(map[string]bool, len(a.catalog))
	selected := []Action{}
	for _, act := range a.catalog {
		include := act.Priority == PriorityHigh || score.Category(act.Category).Score < SelectionThreshold
		if !include || seen[act.ID] {
			continue
		}
		seen[act.ID] = true
		selected = append(selected, act.clone())
	}
	return selected
}
