package scoring

import (
	"fmt"
	"math"
)

// Criterion is the interface that all scoring criteria implement.
type Criterion interface {
	// Key returns the machine-readable criterion identifier.
	Key() string
	// Name returns the human-readable criterion name.
	Name() string
	// Category returns the pillar the criterion contributes to.
	Category() Category
	// Max returns the maximum points the criterion can award.
	Max() float64
	// Evaluate scores the criterion for a company profile.
	Evaluate(in *Input) CriterionResult
}

// Engine runs the configured criteria and produces an ESGScore. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	weights  Weights
	criteria []Criterion
}

// NewEngine creates a scoring engine with the default criteria and the given
// weights. The weights must pass Validate.
func NewEngine(w Weights) (*Engine, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	w = w.Merge(nil)
	return &Engine{weights: w, criteria: DefaultCriteria(w)}, nil
}

// DefaultEngine returns an engine using the default weights.
func DefaultEngine() *Engine {
	e, err := NewEngine(Defaults())
	if err != nil {
		panic(fmt.Sprintf("default scoring weights are invalid: %v", err))
	}
	return e
}

// Weights returns a copy of the engine's weight table.
func (e *Engine) Weights() Weights {
	return e.weights.Merge(nil)
}

// Evaluate runs every criterion and returns the raw per-criterion results in
// table order.
func (e *Engine) Evaluate(in *Input) []CriterionResult {
	if in == nil {
		in = &Input{}
	}
	results := make([]CriterionResult, 0, len(e.criteria))
	for _, c := range e.criteria {
		results = append(results, c.Evaluate(in))
	}
	return results
}

// Score evaluates all criteria and produces a complete ESGScore. Score never
// fails: a nil input scores as an empty profile.
func (e *Engine) Score(in *Input) *ESGScore {
	if in == nil {
		in = &Input{}
	}

	pillars := make(map[Category]*CategoryScore, len(Categories))
	sums := make(map[Category]float64, len(Categories))
	for _, c := range Categories {
		pillars[c] = &CategoryScore{
			Breakdown: make(map[string]BreakdownEntry),
			Gaps:      []string{},
		}
	}

	for _, r := range e.Evaluate(in) {
		p := pillars[r.Category]
		p.Breakdown[r.Key] = BreakdownEntry{Score: r.Score, Max: r.Max, Detail: r.Detail}
		if r.Gap != "" {
			p.Gaps = append(p.Gaps, r.Gap)
		}
		sums[r.Category] += r.Score
	}

	for _, c := range Categories {
		p := pillars[c]
		p.Score = clamp(round1(sums[c]), 0, 100)
		p.Rating = RatingFromScore(p.Score)
	}

	result := &ESGScore{
		Environmental: *pillars[Environmental],
		Social:        *pillars[Social],
		Governance:    *pillars[Governance],
	}
	result.Total = Blend(result.Environmental.Score, result.Social.Score, result.Governance.Score)
	result.Rating = RatingFromScore(result.Total)
	result.IndustryPercentile = Percentile(result.Total, in.IndustryCode)
	return result
}

// newResult builds a CriterionResult from the fraction of max points earned.
// The gap is kept only when the criterion falls short of its maximum.
func newResult(c Criterion, frac float64, detail, gap string) CriterionResult {
	maxPts := c.Max()
	score := round1(clamp(finiteOr(frac, 0), 0, 1) * maxPts)
	r := CriterionResult{
		Key:      c.Key(),
		Name:     c.Name(),
		Category: c.Category(),
		Score:    score,
		Max:      maxPts,
		Detail:   detail,
	}
	if score < round1(maxPts) {
		r.Gap = gap
	}
	return r
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOr(v, fallback float64) float64 {
	if !finite(v) {
		return fallback
	}
	return v
}
